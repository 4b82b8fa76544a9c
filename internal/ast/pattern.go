package ast

import (
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// PatternKind discriminates match patterns.
type PatternKind uint8

const (
	PatInvalid PatternKind = iota
	PatWildcard
	PatIdent
	PatLit
	PatTuple
	PatCtor
	PatList
	PatCons
)

// Pattern is the header shared by all patterns.
type Pattern struct {
	Kind    PatternKind
	Span    source.Span
	Payload uint32
}

// IdentPat binds a name.
type IdentPat struct {
	Name source.StringID
}

// LitPat matches a literal; spelling is kept verbatim.
type LitPat struct {
	TokKind token.Kind
	Text    source.StringID
}

// TuplePat is `(p, p)`.
type TuplePat struct {
	Elems []PatternID
}

// CtorPat is `Name` applied to optional arguments: `Some(x)`.
type CtorPat struct {
	Name     source.StringID
	NameSpan source.Span
	Args     []PatternID
}

// ListPat is `[p; p]`.
type ListPat struct {
	Elems []PatternID
}

// ConsPat is `head :: tail`.
type ConsPat struct {
	Head   PatternID
	Tail   PatternID
	OpSpan source.Span
}

// PatternStore owns the pattern arenas.
type PatternStore struct {
	Arena  *Arena[Pattern]
	idents *Arena[IdentPat]
	lits   *Arena[LitPat]
	tuples *Arena[TuplePat]
	ctors  *Arena[CtorPat]
	lists  *Arena[ListPat]
	conses *Arena[ConsPat]
}

func newPatternStore(hint uint) *PatternStore {
	return &PatternStore{
		Arena:  NewArena[Pattern](hint),
		idents: NewArena[IdentPat](hint / 2),
		lits:   NewArena[LitPat](hint / 4),
		tuples: NewArena[TuplePat](hint / 8),
		ctors:  NewArena[CtorPat](hint / 4),
		lists:  NewArena[ListPat](hint / 8),
		conses: NewArena[ConsPat](hint / 8),
	}
}

// Get returns the pattern header, or nil for an invalid ID.
func (s *PatternStore) Get(id PatternID) *Pattern {
	return s.Arena.Get(uint32(id))
}

func (s *PatternStore) alloc(kind PatternKind, span source.Span, payload uint32) PatternID {
	return PatternID(s.Arena.Allocate(Pattern{Kind: kind, Span: span, Payload: payload}))
}

func (s *PatternStore) NewWildcard(span source.Span) PatternID {
	return s.alloc(PatWildcard, span, 0)
}

func (s *PatternStore) NewIdent(span source.Span, p IdentPat) PatternID {
	return s.alloc(PatIdent, span, s.idents.Allocate(p))
}

func (s *PatternStore) NewLit(span source.Span, p LitPat) PatternID {
	return s.alloc(PatLit, span, s.lits.Allocate(p))
}

func (s *PatternStore) NewTuple(span source.Span, p TuplePat) PatternID {
	return s.alloc(PatTuple, span, s.tuples.Allocate(p))
}

func (s *PatternStore) NewCtor(span source.Span, p CtorPat) PatternID {
	return s.alloc(PatCtor, span, s.ctors.Allocate(p))
}

func (s *PatternStore) NewList(span source.Span, p ListPat) PatternID {
	return s.alloc(PatList, span, s.lists.Allocate(p))
}

func (s *PatternStore) NewCons(span source.Span, p ConsPat) PatternID {
	return s.alloc(PatCons, span, s.conses.Allocate(p))
}

func (s *PatternStore) Ident(id PatternID) (*IdentPat, bool) {
	p := s.Get(id)
	if p == nil || p.Kind != PatIdent {
		return nil, false
	}
	return s.idents.Get(p.Payload), true
}

func (s *PatternStore) Lit(id PatternID) (*LitPat, bool) {
	p := s.Get(id)
	if p == nil || p.Kind != PatLit {
		return nil, false
	}
	return s.lits.Get(p.Payload), true
}

func (s *PatternStore) Tuple(id PatternID) (*TuplePat, bool) {
	p := s.Get(id)
	if p == nil || p.Kind != PatTuple {
		return nil, false
	}
	return s.tuples.Get(p.Payload), true
}

func (s *PatternStore) Ctor(id PatternID) (*CtorPat, bool) {
	p := s.Get(id)
	if p == nil || p.Kind != PatCtor {
		return nil, false
	}
	return s.ctors.Get(p.Payload), true
}

func (s *PatternStore) List(id PatternID) (*ListPat, bool) {
	p := s.Get(id)
	if p == nil || p.Kind != PatList {
		return nil, false
	}
	return s.lists.Get(p.Payload), true
}

func (s *PatternStore) Cons(id PatternID) (*ConsPat, bool) {
	p := s.Get(id)
	if p == nil || p.Kind != PatCons {
		return nil, false
	}
	return s.conses.Get(p.Payload), true
}
