package lexer

import (
	"lumefmt/internal/diag"
	"lumefmt/internal/token"
)

// scanString lexes a double-quoted string literal. Escapes are not decoded:
// the formatter only needs the verbatim spelling, which Token.Text keeps.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == '"' {
			return lx.textToken(start, token.StringLit)
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return lx.textToken(start, token.StringLit)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.textToken(start, token.StringLit)
}

// scanChar lexes a single-quoted character literal like 'a' or '\n'.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		lx.cursor.Bump()
	} else if !lx.cursor.EOF() && lx.cursor.Peek() != '\'' {
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated character literal")
	}
	return lx.textToken(start, token.CharLit)
}

func (lx *Lexer) textToken(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
