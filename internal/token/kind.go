package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwRec represents the 'rec' keyword.
	KwRec // rec
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwThen represents the 'then' keyword.
	KwThen // then
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwFun represents the 'fun' keyword.
	KwFun // fun
	// KwType represents the 'type' keyword.
	KwType // type
	// KwOpen represents the 'open' keyword.
	KwOpen // open
	// KwOf represents the 'of' keyword.
	KwOf // of
	// KwNot represents the 'not' keyword.
	KwNot // not

	// IntLit represents an integer literal (decimal, hex, octal, binary).
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit
	// CharLit represents a character literal.
	CharLit
	// BoolLit represents 'true' or 'false'.
	BoolLit

	// Plus represents '+'.
	Plus // +
	// Minus represents '-'.
	Minus // -
	// Star represents '*'.
	Star // *
	// Slash represents '/'.
	Slash // /
	// Percent represents '%'.
	Percent // %
	// Caret represents the string concatenation operator '^'.
	Caret // ^
	// Eq represents '='. Used both for bindings and equality.
	Eq // =
	// LtGt represents the inequality operator '<>'.
	LtGt // <>
	// Lt represents '<'.
	Lt // <
	// LtEq represents '<='.
	LtEq // <=
	// Gt represents '>'.
	Gt // >
	// GtEq represents '>='.
	GtEq // >=
	// AndAnd represents '&&'.
	AndAnd // &&
	// OrOr represents '||'.
	OrOr // ||
	// ColonColon represents the cons operator '::'.
	ColonColon // ::

	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
	// LArrayBracket represents '[|'.
	LArrayBracket // [|
	// RArrayBracket represents '|]'.
	RArrayBracket // |]
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// Comma represents ','.
	Comma // ,
	// Semicolon represents ';'.
	Semicolon // ;
	// Colon represents ':'.
	Colon // :
	// Dot represents '.'.
	Dot // .
	// Pipe represents '|'.
	Pipe // |
	// Arrow represents '->'.
	Arrow // ->
	// Underscore represents the wildcard '_'.
	Underscore // _

	kindCount
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwLet:         "let",
	KwRec:         "rec",
	KwIn:          "in",
	KwIf:          "if",
	KwThen:        "then",
	KwElif:        "elif",
	KwElse:        "else",
	KwMatch:       "match",
	KwWith:        "with",
	KwFun:         "fun",
	KwType:        "type",
	KwOpen:        "open",
	KwOf:          "of",
	KwNot:         "not",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	CharLit:       "CharLit",
	BoolLit:       "BoolLit",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Caret:         "^",
	Eq:            "=",
	LtGt:          "<>",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	ColonColon:    "::",
	LParen:        "(",
	RParen:        ")",
	LBracket:      "[",
	RBracket:      "]",
	LArrayBracket: "[|",
	RArrayBracket: "|]",
	LBrace:        "{",
	RBrace:        "}",
	Comma:         ",",
	Semicolon:     ";",
	Colon:         ":",
	Dot:           ".",
	Pipe:          "|",
	Arrow:         "->",
	Underscore:    "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
