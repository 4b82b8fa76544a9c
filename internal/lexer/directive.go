package lexer

import (
	"strings"

	"lumefmt/internal/diag"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// Directives are recognized only at column 1:
//
//	#if SYM
//	#else
//	#endif
//
// The branch chosen by Options.Defines is lexed normally; the other branch is
// swallowed verbatim into the directive trivia so the formatter can re-emit
// unreachable code byte for byte.
func (lx *Lexer) scanDirectiveIntoHold() bool {
	start := lx.cursor.Mark()
	lineText := lx.readLine()
	lineSp := lx.cursor.SpanFrom(start)

	fields := strings.Fields(lineText)
	word := strings.TrimPrefix(fields[0], "#")

	switch word {
	case "if":
		sym := ""
		if len(fields) > 1 {
			sym = fields[1]
		}
		if lx.opts.Defines[sym] {
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaDirective,
				Span: lineSp,
				Text: lineText,
			})
			lx.conds = append(lx.conds, condState{openSpan: lineSp})
			return true
		}
		// Inactive branch: swallow up to the matching '#else' or '#endif'.
		stop := lx.swallowRegion(start, true)
		if stop == stopElse {
			lx.conds = append(lx.conds, condState{openSpan: lineSp, elseSeen: true})
		}
		return true

	case "else":
		if len(lx.conds) == 0 {
			lx.errLex(diag.LexDanglingDirective, lineSp, "'#else' without matching '#if'")
			lx.holdDirective(lineSp, lineText)
			return true
		}
		top := &lx.conds[len(lx.conds)-1]
		if top.elseSeen {
			lx.errLex(diag.LexDanglingDirective, lineSp, "duplicate '#else' in conditional")
			lx.holdDirective(lineSp, lineText)
			return true
		}
		// The branch we were lexing was active, so the else branch is dead.
		top.elseSeen = true
		lx.swallowRegion(start, false)
		lx.conds = lx.conds[:len(lx.conds)-1]
		return true

	case "endif":
		if len(lx.conds) == 0 {
			lx.errLex(diag.LexDanglingDirective, lineSp, "'#endif' without matching '#if'")
		} else {
			lx.conds = lx.conds[:len(lx.conds)-1]
		}
		lx.holdDirective(lineSp, lineText)
		return true

	default:
		lx.errLex(diag.LexUnknownDirective, lineSp, "unknown directive '#"+word+"'")
		lx.holdDirective(lineSp, lineText)
		return true
	}
}

type regionStop uint8

const (
	stopEndif regionStop = iota
	stopElse
	stopEOF
)

// swallowRegion consumes full lines starting after the directive line at
// `start` until the matching closing directive, then records the whole region
// as one opaque directive trivia. When stopAtElse is set the region also ends
// at a same-depth '#else' (whose line is included, making the following
// branch the one that gets lexed).
func (lx *Lexer) swallowRegion(start Mark, stopAtElse bool) regionStop {
	depth := 0
	stop := stopEOF
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedDirective, sp, "unterminated '#if' directive")
			lx.holdDirective(sp, string(lx.file.Content[sp.Start:sp.End]))
			return stopEOF
		}
		lx.cursor.Bump() // the '\n' ending the previous line
		if lx.cursor.EOF() {
			continue
		}
		line := lx.readLine()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "#if":
			depth++
		case "#endif":
			if depth == 0 {
				stop = stopEndif
			} else {
				depth--
			}
		case "#else":
			if depth == 0 && stopAtElse {
				stop = stopElse
			}
		}
		if stop != stopEOF {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.holdDirective(sp, string(lx.file.Content[sp.Start:sp.End]))
	return stop
}

func (lx *Lexer) holdDirective(sp source.Span, text string) {
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaDirective,
		Span: sp,
		Text: text,
	})
}

// readLine consumes bytes up to (not including) the next '\n' or EOF and
// returns the consumed text.
func (lx *Lexer) readLine() string {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return string(lx.file.Content[sp.Start:sp.End])
}
