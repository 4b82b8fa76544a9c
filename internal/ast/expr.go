package ast

import (
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// ExprKind discriminates expression nodes.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprLit
	ExprIdent
	ExprCall
	ExprUnary
	ExprBinary
	ExprIf
	ExprMatch
	ExprLambda
	ExprList
	ExprArray
	ExprRecord
	ExprTuple
	ExprParen
	ExprField
	ExprBlock
	ExprLetBind // `let x = e` as a block item
)

// Expr is the header shared by all expressions.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload uint32
}

// LitExpr keeps the literal's token kind plus its interned spelling.
// The spelling is authoritative: the formatter emits it verbatim.
type LitExpr struct {
	TokKind token.Kind
	Text    source.StringID
}

// IdentExpr is a possibly qualified name: `x`, `List.map`.
type IdentExpr struct {
	Segments []source.StringID
}

// CallExpr is `callee(a, b)`.
type CallExpr struct {
	Callee ExprID
	Args   []ExprID
	LParen source.Span
	RParen source.Span
}

// UnaryExpr is `-e` or `not e`.
type UnaryExpr struct {
	Op      token.Kind
	OpSpan  source.Span
	Operand ExprID
}

// BinaryExpr is one infix application; chains nest left.
type BinaryExpr struct {
	Op     token.Kind
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

// IfBranch is the `if c then e` / `elif c then e` arm.
type IfBranch struct {
	KwSpan   source.Span // 'if' or 'elif'
	Cond     ExprID
	ThenSpan source.Span // the 'then' keyword; trivia may anchor After it
	Body     ExprID
}

// IfExpr is `if .. then .. [elif .. then ..]* [else ..]`.
type IfExpr struct {
	Branches []IfBranch
	ElseSpan source.Span // empty when there is no else
	ElseBody ExprID
}

// MatchClause is `| pat -> expr`.
type MatchClause struct {
	PipeSpan  source.Span
	Pat       PatternID
	ArrowSpan source.Span
	Body      ExprID
	Span      source.Span
}

// MatchExpr is `match e with | p -> e ...`.
type MatchExpr struct {
	KwSpan    source.Span
	Scrutinee ExprID
	WithSpan  source.Span // the 'with' keyword
	Clauses   []MatchClause
}

// LambdaExpr is `fun p1 p2 -> body`.
type LambdaExpr struct {
	KwSpan    source.Span
	Params    []PatternID
	ArrowSpan source.Span
	Body      ExprID
}

// SeqExpr is the payload of list and array literals.
type SeqExpr struct {
	Elems []ExprID
	LSpan source.Span
	RSpan source.Span
}

// RecordFieldInit is `name = expr` inside a record literal.
type RecordFieldInit struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
	Span     source.Span
}

// RecordExpr is `{ a = 1; b = 2 }`.
type RecordExpr struct {
	Fields []RecordFieldInit
	LSpan  source.Span
	RSpan  source.Span
}

// TupleExpr is a parenthesized comma tuple `(a, b)`.
type TupleExpr struct {
	Elems []ExprID
}

// ParenExpr is `(e)`.
type ParenExpr struct {
	Inner ExprID
}

// FieldExpr is `recv.name`.
type FieldExpr struct {
	Recv     ExprID
	Name     source.StringID
	NameSpan source.Span
}

// BlockExpr is an offside-rule sequence of block items ending in the
// block's value expression.
type BlockExpr struct {
	Items []ExprID
}

// LetBindExpr is a `let [rec] name[(params)] = value` binding inside a block.
type LetBindExpr struct {
	Name      source.StringID
	NameSpan  source.Span
	Rec       bool
	HasParens bool
	Params    []Param
	EqSpan    source.Span
	Value     ExprID
}

// ExprStore owns the expression arenas.
type ExprStore struct {
	Arena    *Arena[Expr]
	lits     *Arena[LitExpr]
	idents   *Arena[IdentExpr]
	calls    *Arena[CallExpr]
	unaries  *Arena[UnaryExpr]
	binaries *Arena[BinaryExpr]
	ifs      *Arena[IfExpr]
	matches  *Arena[MatchExpr]
	lambdas  *Arena[LambdaExpr]
	seqs     *Arena[SeqExpr]
	records  *Arena[RecordExpr]
	tuples   *Arena[TupleExpr]
	parens   *Arena[ParenExpr]
	fields   *Arena[FieldExpr]
	blocks   *Arena[BlockExpr]
	letBinds *Arena[LetBindExpr]
}

func newExprStore(hint uint) *ExprStore {
	return &ExprStore{
		Arena:    NewArena[Expr](hint),
		lits:     NewArena[LitExpr](hint / 2),
		idents:   NewArena[IdentExpr](hint / 2),
		calls:    NewArena[CallExpr](hint / 4),
		unaries:  NewArena[UnaryExpr](hint / 8),
		binaries: NewArena[BinaryExpr](hint / 4),
		ifs:      NewArena[IfExpr](hint / 8),
		matches:  NewArena[MatchExpr](hint / 8),
		lambdas:  NewArena[LambdaExpr](hint / 8),
		seqs:     NewArena[SeqExpr](hint / 8),
		records:  NewArena[RecordExpr](hint / 8),
		tuples:   NewArena[TupleExpr](hint / 8),
		parens:   NewArena[ParenExpr](hint / 8),
		fields:   NewArena[FieldExpr](hint / 8),
		blocks:   NewArena[BlockExpr](hint / 8),
		letBinds: NewArena[LetBindExpr](hint / 8),
	}
}

// Get returns the expression header, or nil for an invalid ID.
func (s *ExprStore) Get(id ExprID) *Expr {
	return s.Arena.Get(uint32(id))
}

func (s *ExprStore) alloc(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(s.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

func (s *ExprStore) NewLit(span source.Span, p LitExpr) ExprID {
	return s.alloc(ExprLit, span, s.lits.Allocate(p))
}

func (s *ExprStore) NewIdent(span source.Span, p IdentExpr) ExprID {
	return s.alloc(ExprIdent, span, s.idents.Allocate(p))
}

func (s *ExprStore) NewCall(span source.Span, p CallExpr) ExprID {
	return s.alloc(ExprCall, span, s.calls.Allocate(p))
}

func (s *ExprStore) NewUnary(span source.Span, p UnaryExpr) ExprID {
	return s.alloc(ExprUnary, span, s.unaries.Allocate(p))
}

func (s *ExprStore) NewBinary(span source.Span, p BinaryExpr) ExprID {
	return s.alloc(ExprBinary, span, s.binaries.Allocate(p))
}

func (s *ExprStore) NewIf(span source.Span, p IfExpr) ExprID {
	return s.alloc(ExprIf, span, s.ifs.Allocate(p))
}

func (s *ExprStore) NewMatch(span source.Span, p MatchExpr) ExprID {
	return s.alloc(ExprMatch, span, s.matches.Allocate(p))
}

func (s *ExprStore) NewLambda(span source.Span, p LambdaExpr) ExprID {
	return s.alloc(ExprLambda, span, s.lambdas.Allocate(p))
}

func (s *ExprStore) NewList(span source.Span, p SeqExpr) ExprID {
	return s.alloc(ExprList, span, s.seqs.Allocate(p))
}

func (s *ExprStore) NewArray(span source.Span, p SeqExpr) ExprID {
	return s.alloc(ExprArray, span, s.seqs.Allocate(p))
}

func (s *ExprStore) NewRecord(span source.Span, p RecordExpr) ExprID {
	return s.alloc(ExprRecord, span, s.records.Allocate(p))
}

func (s *ExprStore) NewTuple(span source.Span, p TupleExpr) ExprID {
	return s.alloc(ExprTuple, span, s.tuples.Allocate(p))
}

func (s *ExprStore) NewParen(span source.Span, p ParenExpr) ExprID {
	return s.alloc(ExprParen, span, s.parens.Allocate(p))
}

func (s *ExprStore) NewField(span source.Span, p FieldExpr) ExprID {
	return s.alloc(ExprField, span, s.fields.Allocate(p))
}

func (s *ExprStore) NewBlock(span source.Span, p BlockExpr) ExprID {
	return s.alloc(ExprBlock, span, s.blocks.Allocate(p))
}

func (s *ExprStore) NewLetBind(span source.Span, p LetBindExpr) ExprID {
	return s.alloc(ExprLetBind, span, s.letBinds.Allocate(p))
}

func (s *ExprStore) Lit(id ExprID) (*LitExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprLit {
		return nil, false
	}
	return s.lits.Get(e.Payload), true
}

func (s *ExprStore) Ident(id ExprID) (*IdentExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprIdent {
		return nil, false
	}
	return s.idents.Get(e.Payload), true
}

func (s *ExprStore) Call(id ExprID) (*CallExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprCall {
		return nil, false
	}
	return s.calls.Get(e.Payload), true
}

func (s *ExprStore) Unary(id ExprID) (*UnaryExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprUnary {
		return nil, false
	}
	return s.unaries.Get(e.Payload), true
}

func (s *ExprStore) Binary(id ExprID) (*BinaryExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprBinary {
		return nil, false
	}
	return s.binaries.Get(e.Payload), true
}

func (s *ExprStore) If(id ExprID) (*IfExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprIf {
		return nil, false
	}
	return s.ifs.Get(e.Payload), true
}

func (s *ExprStore) Match(id ExprID) (*MatchExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprMatch {
		return nil, false
	}
	return s.matches.Get(e.Payload), true
}

func (s *ExprStore) Lambda(id ExprID) (*LambdaExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprLambda {
		return nil, false
	}
	return s.lambdas.Get(e.Payload), true
}

// Seq returns the payload of a list or array literal.
func (s *ExprStore) Seq(id ExprID) (*SeqExpr, bool) {
	e := s.Get(id)
	if e == nil || (e.Kind != ExprList && e.Kind != ExprArray) {
		return nil, false
	}
	return s.seqs.Get(e.Payload), true
}

func (s *ExprStore) Record(id ExprID) (*RecordExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprRecord {
		return nil, false
	}
	return s.records.Get(e.Payload), true
}

func (s *ExprStore) Tuple(id ExprID) (*TupleExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprTuple {
		return nil, false
	}
	return s.tuples.Get(e.Payload), true
}

func (s *ExprStore) Paren(id ExprID) (*ParenExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprParen {
		return nil, false
	}
	return s.parens.Get(e.Payload), true
}

func (s *ExprStore) Field(id ExprID) (*FieldExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprField {
		return nil, false
	}
	return s.fields.Get(e.Payload), true
}

func (s *ExprStore) Block(id ExprID) (*BlockExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprBlock {
		return nil, false
	}
	return s.blocks.Get(e.Payload), true
}

func (s *ExprStore) LetBind(id ExprID) (*LetBindExpr, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != ExprLetBind {
		return nil, false
	}
	return s.letBinds.Get(e.Payload), true
}
