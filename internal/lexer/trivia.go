package lexer

import (
	"lumefmt/internal/diag"
	"lumefmt/internal/token"
)

// collectLeadingTrivia gathers the run of trivia before the next significant
// token into lx.hold:
//   - ' ' and '\t' coalesce into one TriviaSpace;
//   - consecutive '\n' coalesce into one TriviaNewline (the text keeps the
//     count, which is how blank lines are detected later);
//   - "//..." up to '\n' -> TriviaLineComment, "///..." -> TriviaDocLine;
//   - "(* ... *)" -> TriviaBlockComment, nesting supported; when unterminated
//     the error is reported and the comment is cut at EOF;
//   - "#if"/"#else"/"#endif" at line start -> TriviaDirective; skipped
//     conditional branches are swallowed into the directive's text.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '/' {
			if lx.scanLineCommentIntoHold() {
				continue
			}
		}

		if b == '(' {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '*' {
				lx.scanBlockCommentIntoHold()
				continue
			}
		}

		if b == '#' && lx.cursor.AtLineStart() {
			if lx.scanDirectiveIntoHold() {
				continue
			}
		}

		break
	}
}

// "//..." and "///...". Returns false when the '/' starts an operator.
func (lx *Lexer) scanLineCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	if lx.cursor.Peek() != '/' {
		lx.cursor.Reset(start)
		return false
	}
	lx.cursor.Bump()
	kind := token.TriviaLineComment
	if lx.cursor.Peek() == '/' {
		lx.cursor.Bump()
		kind = token.TriviaDocLine
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
	return true
}

// "(* ... *)" with nesting.
func (lx *Lexer) scanBlockCommentIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // (
	lx.cursor.Bump() // *
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '(' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == ')' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaBlockComment,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
