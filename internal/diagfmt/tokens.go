package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// TokenOutput is the JSON shape for one token.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// FormatTokensPretty writes one line per token with its position and the
// kinds of its leading trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		f := fs.Get(tok.Span.File)
		if f == nil {
			return fmt.Errorf("token %d references unknown file %d", i, tok.Span.File)
		}
		startPos := f.LineCol(tok.Span.Start)
		endPos := f.LineCol(tok.Span.End)

		var leading []string
		for _, tr := range tok.Leading {
			leading = append(leading, tr.Kind.String())
		}

		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		var leading []string
		for _, tr := range tok.Leading {
			leading = append(leading, tr.Kind.String())
		}
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: leading,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
