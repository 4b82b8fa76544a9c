package trivia

import (
	"lumefmt/internal/source"
)

// Placement is everything anchored to one span: runs emitted before it,
// runs emitted after it, and the verbatim spelling of the anchor itself.
type Placement struct {
	Before []Run
	After  []Run
	Itself PieceID
}

// Index maps anchors to their attached trivia. Built once per file and
// read-only afterwards; safe for concurrent reads.
type Index struct {
	pieces []Piece
	slots  map[Anchor]*Placement
}

func newIndex() *Index {
	return &Index{slots: make(map[Anchor]*Placement)}
}

func (x *Index) addPiece(p Piece) PieceID {
	x.pieces = append(x.pieces, p)
	return PieceID(len(x.pieces))
}

func (x *Index) slot(a Anchor) *Placement {
	if s, ok := x.slots[a]; ok {
		return s
	}
	s := &Placement{}
	x.slots[a] = s
	return s
}

// Piece resolves a piece ID. Panics on an invalid ID; IDs only come from
// this index's own runs.
func (x *Index) Piece(id PieceID) Piece {
	return x.pieces[id-1]
}

// PieceCount is the total number of pieces collected, emitted or not.
// The renderer checks every piece against this count after a render.
func (x *Index) PieceCount() int {
	return len(x.pieces)
}

// Before returns the runs anchored before the given anchor, in source order.
func (x *Index) Before(a Anchor) []Run {
	if s, ok := x.slots[a]; ok {
		return s.Before
	}
	return nil
}

// After returns the runs anchored after the given anchor.
func (x *Index) After(a Anchor) []Run {
	if s, ok := x.slots[a]; ok {
		return s.After
	}
	return nil
}

// Itself returns the verbatim spelling piece for an exact literal span.
func (x *Index) Itself(a Anchor) (PieceID, bool) {
	if s, ok := x.slots[a]; ok && s.Itself.IsValid() {
		return s.Itself, true
	}
	return NoPieceID, false
}

// NodeBefore is shorthand for Before(NodeAnchor(sp)).
func (x *Index) NodeBefore(sp source.Span) []Run { return x.Before(NodeAnchor(sp)) }

// NodeAfter is shorthand for After(NodeAnchor(sp)).
func (x *Index) NodeAfter(sp source.Span) []Run { return x.After(NodeAnchor(sp)) }

// TokenBefore is shorthand for Before(TokenAnchor(sp)).
func (x *Index) TokenBefore(sp source.Span) []Run { return x.Before(TokenAnchor(sp)) }

// TokenAfter is shorthand for After(TokenAnchor(sp)).
func (x *Index) TokenAfter(sp source.Span) []Run { return x.After(TokenAnchor(sp)) }
