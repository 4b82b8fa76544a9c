package ast

import (
	"lumefmt/internal/source"
)

// TypeKind discriminates type-syntax nodes (annotations, declarations).
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeName
	TypeFun
	TypeTuple
	TypeParen
)

// TypeSyn is the header shared by type-syntax nodes.
type TypeSyn struct {
	Kind    TypeKind
	Span    source.Span
	Payload uint32
}

// NameType is `Seg.Seg<arg, arg>`.
type NameType struct {
	Segments []source.StringID
	Args     []TypeID
}

// FunType is `param -> result`.
type FunType struct {
	Param     TypeID
	Result    TypeID
	ArrowSpan source.Span
}

// TupleType is `a * b * c`.
type TupleType struct {
	Elems []TypeID
}

// ParenType is `(t)`.
type ParenType struct {
	Inner TypeID
}

// TypeStore owns the type-syntax arenas.
type TypeStore struct {
	Arena  *Arena[TypeSyn]
	names  *Arena[NameType]
	funs   *Arena[FunType]
	tuples *Arena[TupleType]
	parens *Arena[ParenType]
}

func newTypeStore(hint uint) *TypeStore {
	return &TypeStore{
		Arena:  NewArena[TypeSyn](hint),
		names:  NewArena[NameType](hint / 2),
		funs:   NewArena[FunType](hint / 4),
		tuples: NewArena[TupleType](hint / 8),
		parens: NewArena[ParenType](hint / 8),
	}
}

// Get returns the type header, or nil for an invalid ID.
func (s *TypeStore) Get(id TypeID) *TypeSyn {
	return s.Arena.Get(uint32(id))
}

func (s *TypeStore) alloc(kind TypeKind, span source.Span, payload uint32) TypeID {
	return TypeID(s.Arena.Allocate(TypeSyn{Kind: kind, Span: span, Payload: payload}))
}

func (s *TypeStore) NewName(span source.Span, p NameType) TypeID {
	return s.alloc(TypeName, span, s.names.Allocate(p))
}

func (s *TypeStore) NewFun(span source.Span, p FunType) TypeID {
	return s.alloc(TypeFun, span, s.funs.Allocate(p))
}

func (s *TypeStore) NewTuple(span source.Span, p TupleType) TypeID {
	return s.alloc(TypeTuple, span, s.tuples.Allocate(p))
}

func (s *TypeStore) NewParen(span source.Span, p ParenType) TypeID {
	return s.alloc(TypeParen, span, s.parens.Allocate(p))
}

func (s *TypeStore) Name(id TypeID) (*NameType, bool) {
	t := s.Get(id)
	if t == nil || t.Kind != TypeName {
		return nil, false
	}
	return s.names.Get(t.Payload), true
}

func (s *TypeStore) Fun(id TypeID) (*FunType, bool) {
	t := s.Get(id)
	if t == nil || t.Kind != TypeFun {
		return nil, false
	}
	return s.funs.Get(t.Payload), true
}

func (s *TypeStore) Tuple(id TypeID) (*TupleType, bool) {
	t := s.Get(id)
	if t == nil || t.Kind != TypeTuple {
		return nil, false
	}
	return s.tuples.Get(t.Payload), true
}

func (s *TypeStore) Paren(id TypeID) (*ParenType, bool) {
	t := s.Get(id)
	if t == nil || t.Kind != TypeParen {
		return nil, false
	}
	return s.parens.Get(t.Payload), true
}
