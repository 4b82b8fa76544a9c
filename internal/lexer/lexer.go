package lexer

import (
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// Lexer turns the bytes of one file into significant tokens, each carrying
// the trivia run collected immediately before it.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
	conds  []condState    // open '#if' directives
}

type condState struct {
	openSpan source.Span
	elseSeen bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading trivia collected.
// After the end of input it always returns EOF; the EOF token carries any
// trailing trivia of the file so no comment is ever lost.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		if len(lx.conds) > 0 {
			open := lx.conds[len(lx.conds)-1]
			lx.errLex(diag.LexUnterminatedDirective, open.openSpan, "unterminated '#if' directive")
			lx.conds = lx.conds[:0]
		}
		tok := token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: lx.hold,
		}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '_':
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			tok = lx.scanIdentOrKeyword()
		} else {
			tok = lx.scanOperatorOrPunct()
		}

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '\'':
		tok = lx.scanChar()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokens drains the lexer and returns the full significant stream, EOF
// included. The stream plus the leading trivia of each token reconstructs
// the input exactly.
func Tokens(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
