package ast

import (
	"lumefmt/internal/source"
)

// DeclKind discriminates top-level declarations.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclLet
	DeclType
	DeclOpen
)

// Decl is the header shared by every top-level declaration; the payload
// lives in a per-kind arena addressed by Payload.
type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload uint32
}

// Param is one function parameter: `x` or `(x: int)`.
type Param struct {
	Name     source.StringID
	Span     source.Span
	Ann      TypeID // NoTypeID when unannotated
	HasParen bool
}

// LetDecl is `let [rec] name = expr` or `let [rec] name(p, ...) = expr`.
type LetDecl struct {
	Name      source.StringID
	NameSpan  source.Span
	Rec       bool
	HasParens bool
	Params    []Param
	Ann       TypeID      // optional `: type` before '='
	EqSpan    source.Span // the '=' token; trivia may anchor After it
	Body      ExprID
}

// TypeDeclShape discriminates the right-hand side of a type declaration.
type TypeDeclShape uint8

const (
	TypeShapeAlias TypeDeclShape = iota
	TypeShapeRecord
	TypeShapeUnion
)

// FieldDef is one record-type field: `name: type`.
type FieldDef struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Span     source.Span
}

// CtorDef is one union constructor: `Name` or `Name of t1 * t2`.
type CtorDef struct {
	Name     source.StringID
	NameSpan source.Span
	Args     []TypeID
	Span     source.Span
}

// TypeDecl is `type Name = ...`.
type TypeDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Shape    TypeDeclShape
	EqSpan   source.Span
	Alias    TypeID
	Fields   []FieldDef
	Ctors    []CtorDef
}

// OpenDecl is `open Seg.Seg`.
type OpenDecl struct {
	Segments []source.StringID
}

// DeclStore owns the declaration arenas.
type DeclStore struct {
	Arena *Arena[Decl]
	lets  *Arena[LetDecl]
	types *Arena[TypeDecl]
	opens *Arena[OpenDecl]
}

func newDeclStore(hint uint) *DeclStore {
	return &DeclStore{
		Arena: NewArena[Decl](hint),
		lets:  NewArena[LetDecl](hint),
		types: NewArena[TypeDecl](hint / 4),
		opens: NewArena[OpenDecl](hint / 4),
	}
}

// Get returns the declaration header, or nil for an invalid ID.
func (s *DeclStore) Get(id DeclID) *Decl {
	return s.Arena.Get(uint32(id))
}

func (s *DeclStore) NewLet(span source.Span, payload LetDecl) DeclID {
	pid := s.lets.Allocate(payload)
	return DeclID(s.Arena.Allocate(Decl{Kind: DeclLet, Span: span, Payload: pid}))
}

func (s *DeclStore) NewType(span source.Span, payload TypeDecl) DeclID {
	pid := s.types.Allocate(payload)
	return DeclID(s.Arena.Allocate(Decl{Kind: DeclType, Span: span, Payload: pid}))
}

func (s *DeclStore) NewOpen(span source.Span, payload OpenDecl) DeclID {
	pid := s.opens.Allocate(payload)
	return DeclID(s.Arena.Allocate(Decl{Kind: DeclOpen, Span: span, Payload: pid}))
}

// Let returns the LetDecl payload when the declaration has kind DeclLet.
func (s *DeclStore) Let(id DeclID) (*LetDecl, bool) {
	d := s.Get(id)
	if d == nil || d.Kind != DeclLet {
		return nil, false
	}
	return s.lets.Get(d.Payload), true
}

// Type returns the TypeDecl payload when the declaration has kind DeclType.
func (s *DeclStore) Type(id DeclID) (*TypeDecl, bool) {
	d := s.Get(id)
	if d == nil || d.Kind != DeclType {
		return nil, false
	}
	return s.types.Get(d.Payload), true
}

// Open returns the OpenDecl payload when the declaration has kind DeclOpen.
func (s *DeclStore) Open(id DeclID) (*OpenDecl, bool) {
	d := s.Get(id)
	if d == nil || d.Kind != DeclOpen {
		return nil, false
	}
	return s.opens.Get(d.Payload), true
}
