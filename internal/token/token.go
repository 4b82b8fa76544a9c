package token

import (
	"lumefmt/internal/source"
)

// Token represents a single significant source token with its location and
// the trivia run collected immediately before it.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, char, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, BoolLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwLet, KwRec, KwIn, KwIf, KwThen, KwElif, KwElse,
		KwMatch, KwWith, KwFun, KwType, KwOpen, KwOf, KwNot:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
