package ast

import (
	"lumefmt/internal/source"
)

// File is the root node of one parsed source file.
type File struct {
	Span  source.Span
	Decls []DeclID
}
