package lexer

import (
	"lumefmt/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: sp,
		Text: text,
	}
}
