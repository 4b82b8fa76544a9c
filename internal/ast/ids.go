package ast

type (
	// top-level entities
	FileID    uint32
	DeclID    uint32
	ExprID    uint32
	PatternID uint32
	TypeID    uint32
)

const (
	NoFileID    FileID    = 0
	NoDeclID    DeclID    = 0
	NoExprID    ExprID    = 0
	NoPatternID PatternID = 0
	NoTypeID    TypeID    = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PatternID) IsValid() bool { return id != NoPatternID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
