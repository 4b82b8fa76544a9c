package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"lumefmt/internal/source"
)

// Cursor is a byte position inside one source file.
type Cursor struct {
	File *source.File
	Off  uint32
}

// NewCursor creates a new cursor at the start of the provided file.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Off: 0}
}

func (c *Cursor) limit() uint32 {
	return uint32(len(c.File.Content))
}

// EOF reports whether the cursor ran past the last byte.
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 returns the current and next byte when both exist.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump advances one byte and returns the byte read, or 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat advances past b when it is the current byte.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() != b {
		return false
	}
	c.Off++
	return true
}

// AtLineStart reports whether the cursor sits at the first byte of a line.
func (c *Cursor) AtLineStart() bool {
	return c.Off == 0 || c.File.Content[c.Off-1] == '\n'
}

// Mark remembers a position so a Span can be taken later.
type Mark uint32

// Mark saves the current cursor position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset rewinds the cursor to a previously taken mark.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// SpanFrom builds the span from a mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
