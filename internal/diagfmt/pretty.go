// Package diagfmt renders diagnostics and token dumps for the CLI.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lumefmt/internal/diag"
	"lumefmt/internal/source"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown around the primary span.
	Context int
}

// Pretty renders each diagnostic as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline, then notes in the
// same shape. Diagnostics come out in span order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Sorted() {
		writeHeading(w, fs, d.Primary, d.Severity, d.Code.String(), d.Message, opts)
		writeContext(w, fs, d.Primary, opts)
		for _, note := range d.Notes {
			writeHeading(w, fs, note.Span, diag.SevInfo, "note", note.Msg, opts)
			writeContext(w, fs, note.Span, opts)
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, sp source.Span, sev diag.Severity, code, msg string, opts PrettyOpts) {
	f := fs.Get(sp.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", sevText(sev, opts), code, msg)
		return
	}
	pos := f.LineCol(sp.Start)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", f.Path, pos.Line, pos.Col, sevText(sev, opts), code, msg)
}

func sevText(sev diag.Severity, opts PrettyOpts) string {
	if !opts.Color {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(sev.String())
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(sev.String())
	default:
		return color.New(color.FgCyan).Sprint(sev.String())
	}
}

// writeContext prints the source lines covering the span with an underline
// beneath the first of them.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	if opts.Context <= 0 {
		return
	}
	f := fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start := f.LineCol(sp.Start)
	lines := strings.Split(string(f.Content), "\n")
	first := int(start.Line) - opts.Context
	if first < 1 {
		first = 1
	}
	last := int(start.Line) + opts.Context - 1
	if last > len(lines) {
		last = len(lines)
	}
	for n := first; n <= last; n++ {
		fmt.Fprintf(w, "%5d | %s\n", n, lines[n-1])
		if n != int(start.Line) {
			continue
		}
		width := int(sp.End - sp.Start)
		if width < 1 {
			width = 1
		}
		if avail := len(lines[n-1]) - int(start.Col) + 1; width > avail && avail > 0 {
			width = avail
		}
		marker := "^" + strings.Repeat("~", width-1)
		if opts.Color {
			marker = color.New(color.FgRed, color.Bold).Sprint(marker)
		}
		fmt.Fprintf(w, "      | %s%s\n", strings.Repeat(" ", int(start.Col)-1), marker)
	}
}
