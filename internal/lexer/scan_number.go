package lexer

import (
	"lumefmt/internal/diag"
	"lumefmt/internal/token"
)

// scanNumber lexes integer and float literals. The original spelling is
// preserved in Token.Text; the formatter re-emits it verbatim, so hex casing,
// leading zeros, and digit separators survive formatting.
//
// Forms: 123, 1_000, 0x1A, 0o755, 0b1010, 1.5, 1e9, 1.5e-3.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			switch b1 {
			case 'x', 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.scanDigits(isHex)
				return lx.numberToken(start, token.IntLit)
			case 'o', 'O':
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.scanDigits(isOct)
				return lx.numberToken(start, token.IntLit)
			case 'b', 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.scanDigits(isBin)
				return lx.numberToken(start, token.IntLit)
			}
		}
	}

	lx.scanDigits(isDec)

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.scanDigits(isDec)
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b2 := lx.cursor.Peek(); b2 == '+' || b2 == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.FloatLit
			lx.scanDigits(isDec)
		} else {
			// 'e' belonged to a following identifier, not the number
			lx.cursor.Reset(mark)
		}
	}

	return lx.numberToken(start, kind)
}

func (lx *Lexer) scanDigits(accept func(byte) bool) {
	seen := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if accept(b) {
			seen = true
			lx.cursor.Bump()
			continue
		}
		if b == '_' && seen {
			lx.cursor.Bump()
			continue
		}
		break
	}
	if !seen {
		sp := lx.cursor.SpanFrom(lx.cursor.Mark())
		lx.errLex(diag.LexBadNumber, sp, "malformed numeric literal")
	}
}

func (lx *Lexer) numberToken(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
