package ast

import (
	"lumefmt/internal/source"
)

// Hints sizes the arenas up front for large inputs.
type Hints struct {
	Decls    uint
	Exprs    uint
	Patterns uint
	Types    uint
}

func (h Hints) withDefaults() Hints {
	if h.Decls == 0 {
		h.Decls = 64
	}
	if h.Exprs == 0 {
		h.Exprs = 512
	}
	if h.Patterns == 0 {
		h.Patterns = 128
	}
	if h.Types == 0 {
		h.Types = 64
	}
	return h
}

// Builder owns every arena produced by one parse. The tree is never mutated
// after parsing; the formatter only reads it.
type Builder struct {
	Files    *Arena[File]
	Decls    *DeclStore
	Exprs    *ExprStore
	Patterns *PatternStore
	Types    *TypeStore
	Strings  *source.Interner
}

// NewBuilder creates a builder; interner may be shared across files
// (it is safe as long as files are parsed sequentially per builder).
func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	hints = hints.withDefaults()
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:    NewArena[File](4),
		Decls:    newDeclStore(hints.Decls),
		Exprs:    newExprStore(hints.Exprs),
		Patterns: newPatternStore(hints.Patterns),
		Types:    newTypeStore(hints.Types),
		Strings:  interner,
	}
}

// NewFile allocates a file node and returns its ID.
func (b *Builder) NewFile(span source.Span, decls []DeclID) FileID {
	return FileID(b.Files.Allocate(File{Span: span, Decls: decls}))
}

// File returns a file node, or nil for an invalid ID.
func (b *Builder) File(id FileID) *File {
	return b.Files.Get(uint32(id))
}

// String resolves an interned string ID.
func (b *Builder) String(id source.StringID) string {
	return b.Strings.MustLookup(id)
}
