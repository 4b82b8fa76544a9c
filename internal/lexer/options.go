package lexer

import (
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
)

// Options configures one lexer instance.
type Options struct {
	// Reporter receives lexical diagnostics; nil drops them (lexing continues).
	Reporter diag.Reporter
	// Defines is the set of active conditional-compilation symbols.
	// Code under '#if SYM' with an unset SYM is swallowed into directive trivia.
	Defines map[string]bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg)
}
