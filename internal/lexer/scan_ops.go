package lexer

import (
	"lumefmt/internal/diag"
	"lumefmt/internal/token"
)

// scanOperatorOrPunct lexes operators and punctuation with maximal munch.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Invalid
	switch b {
	case '+':
		kind = token.Plus
	case '-':
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		} else {
			kind = token.Minus
		}
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '^':
		kind = token.Caret
	case '=':
		kind = token.Eq
	case '<':
		switch {
		case lx.cursor.Eat('='):
			kind = token.LtEq
		case lx.cursor.Eat('>'):
			kind = token.LtGt
		default:
			kind = token.Lt
		}
	case '>':
		if lx.cursor.Eat('=') {
			kind = token.GtEq
		} else {
			kind = token.Gt
		}
	case '&':
		if lx.cursor.Eat('&') {
			kind = token.AndAnd
		}
	case '|':
		switch {
		case lx.cursor.Eat('|'):
			kind = token.OrOr
		case lx.cursor.Eat(']'):
			kind = token.RArrayBracket
		default:
			kind = token.Pipe
		}
	case ':':
		if lx.cursor.Eat(':') {
			kind = token.ColonColon
		} else {
			kind = token.Colon
		}
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		if lx.cursor.Eat('|') {
			kind = token.LArrayBracket
		} else {
			kind = token.LBracket
		}
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '.':
		kind = token.Dot
	case '_':
		kind = token.Underscore
	}

	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
	}
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
