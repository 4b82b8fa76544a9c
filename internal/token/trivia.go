package token

import "lumefmt/internal/source"

// TriviaKind classifies non-significant lexical content.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaDocLine
	TriviaBlockComment
	TriviaDirective
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaDocLine:
		return "DocLine"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDirective:
		return "Directive"
	}
	return "Trivia(?)"
}

// Trivia is one piece of non-significant content, as collected by the lexer.
// Directive trivia that covers a skipped conditional branch spans from the
// opening '#if' line through the matching closing token, text included.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is any comment form.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case TriviaLineComment, TriviaDocLine, TriviaBlockComment:
		return true
	default:
		return false
	}
}
