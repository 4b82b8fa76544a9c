package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"lumefmt/internal/trivia"
)

// Writer accumulates formatted output. It tracks the display column with
// rune widths, keeps an absolute-column indent stack, and records which
// trivia pieces have been spliced so a discarded trial render rolls its
// accounting back.
type Writer struct {
	opt Options
	buf []byte

	col         int
	maxCol      int
	indents     []int
	atLineStart bool
	lines       int

	lastByte byte
	newlines int // consecutive trailing newlines
	trailCol int // col before a line-ending trailing comment, -1 when unset

	emitted []uint64
}

// NewWriter creates a writer sized for pieceCount trivia pieces.
func NewWriter(opt Options, pieceCount, sizeHint int) *Writer {
	return &Writer{
		opt:         opt,
		buf:         make([]byte, 0, sizeHint),
		indents:     []int{0},
		atLineStart: true,
		trailCol:    -1,
		emitted:     make([]uint64, (pieceCount+63)/64),
	}
}

// Fork returns a writer that continues from the current position with an
// empty buffer. Adopt appends the fork's output back; a fork that is never
// adopted leaves the parent untouched.
func (w *Writer) Fork() *Writer {
	return &Writer{
		opt:         w.opt,
		col:         w.col,
		maxCol:      w.col,
		indents:     append([]int(nil), w.indents...),
		atLineStart: w.atLineStart,
		lastByte:    w.lastByte,
		newlines:    w.newlines,
		trailCol:    -1,
		emitted:     append([]uint64(nil), w.emitted...),
	}
}

// Adopt commits a fork's output into this writer.
func (w *Writer) Adopt(c *Writer) {
	w.buf = append(w.buf, c.buf...)
	w.col = c.col
	if c.maxCol > w.maxCol {
		w.maxCol = c.maxCol
	}
	w.indents = c.indents
	w.atLineStart = c.atLineStart
	w.lines += c.lines
	w.lastByte = c.lastByte
	w.newlines = c.newlines
	w.trailCol = c.trailCol
	w.emitted = c.emitted
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Col is the display column the next character will land on.
func (w *Writer) Col() int {
	if w.atLineStart {
		return w.indent()
	}
	return w.col
}

// Lines is the number of newlines written since creation (or fork).
func (w *Writer) Lines() int {
	return w.lines
}

// MaxCol is the widest display column reached since creation (or fork).
func (w *Writer) MaxCol() int {
	if w.col > w.maxCol {
		return w.col
	}
	return w.maxCol
}

// EndsWithNewline reports whether the last byte written is a line break.
func (w *Writer) EndsWithNewline() bool {
	return len(w.buf) > 0 && w.buf[len(w.buf)-1] == '\n'
}

// MarkTrailingComment records the current column as the start of a
// line-ending comment, so a trial render can measure the construct's
// width without the comment that closes its line.
func (w *Writer) MarkTrailingComment() {
	w.trailCol = w.Col()
}

// TrailingCommentCol returns the column recorded by MarkTrailingComment.
func (w *Writer) TrailingCommentCol() (int, bool) {
	return w.trailCol, w.trailCol >= 0
}

// AtLineStart reports whether the next write begins a fresh line.
func (w *Writer) AtLineStart() bool {
	return w.atLineStart
}

func (w *Writer) indent() int {
	return w.indents[len(w.indents)-1]
}

// IndentPush indents one level deeper.
func (w *Writer) IndentPush() {
	w.indents = append(w.indents, w.indent()+w.opt.IndentSize)
}

// IndentPushAt pins the indent to an absolute column; used to align
// continuation lines under the construct's first character.
func (w *Writer) IndentPushAt(col int) {
	w.indents = append(w.indents, col)
}

// IndentPop restores the previous indent level.
func (w *Writer) IndentPop() {
	if len(w.indents) > 1 {
		w.indents = w.indents[:len(w.indents)-1]
	}
}

func (w *Writer) push(b byte) {
	w.buf = append(w.buf, b)
	w.lastByte = b
	if b == '\n' {
		w.newlines++
	} else {
		w.newlines = 0
	}
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	w.atLineStart = false
	for i := 0; i < w.indent(); i++ {
		w.push(' ')
	}
	w.col = w.indent()
}

// WriteString writes single-line text, handling pending indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	for i := 0; i < len(s); i++ {
		w.push(s[i])
	}
	w.col += runewidth.StringWidth(s)
}

// WriteRaw appends text verbatim with no indent insertion; internal line
// breaks keep their original layout. Used for directives and multi-line
// block comments.
func (w *Writer) WriteRaw(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	for i := 0; i < len(s); i++ {
		w.push(s[i])
	}
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		first := strings.IndexByte(s, '\n')
		if c := w.col + runewidth.StringWidth(s[:first]); c > w.maxCol {
			w.maxCol = c
		}
		w.lines += strings.Count(s, "\n")
		w.col = runewidth.StringWidth(s[i+1:])
		w.atLineStart = s[len(s)-1] == '\n'
		if w.atLineStart {
			w.col = 0
		}
	} else {
		w.col += runewidth.StringWidth(s)
	}
}

// Space writes one space unless the output already ends in whitespace.
func (w *Writer) Space() {
	switch w.lastByte {
	case 0, ' ', '\n':
		return
	}
	w.push(' ')
	w.col++
}

// Newline ends the current line; collapses duplicate calls.
func (w *Writer) Newline() {
	if w.atLineStart {
		return
	}
	if w.col > w.maxCol {
		w.maxCol = w.col
	}
	if w.lastByte != 0 {
		w.push('\n')
		w.lines++
	}
	w.atLineStart = true
	w.col = 0
}

// BlankLine ensures exactly one empty line before the next output.
func (w *Writer) BlankLine() {
	w.Newline()
	if w.newlines < 2 && w.lastByte != 0 {
		w.push('\n')
		w.lines++
	}
}

// MarkEmitted records that a trivia piece has been spliced into the output.
func (w *Writer) MarkEmitted(id trivia.PieceID) {
	i := uint32(id) - 1
	w.emitted[i/64] |= 1 << (i % 64)
}

// IsEmitted reports whether a piece is already in the output.
func (w *Writer) IsEmitted(id trivia.PieceID) bool {
	i := uint32(id) - 1
	return w.emitted[i/64]&(1<<(i%64)) != 0
}
