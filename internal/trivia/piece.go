// Package trivia collects comments, blank lines, directives, and verbatim
// literal spellings from a token stream and attaches them to syntax-tree
// anchors by source-position reasoning. The resulting index is read-only
// during rendering.
package trivia

import (
	"lumefmt/internal/source"
)

// PieceKind discriminates trivia pieces.
type PieceKind uint8

const (
	PieceInvalid PieceKind = iota
	PieceLineComment
	PieceDocLine
	PieceBlockComment
	PieceDirective
	PieceBlank
	PieceVerbatim
)

var pieceKindNames = [...]string{
	PieceInvalid:      "invalid",
	PieceLineComment:  "line_comment",
	PieceDocLine:      "doc_line",
	PieceBlockComment: "block_comment",
	PieceDirective:    "directive",
	PieceBlank:        "blank",
	PieceVerbatim:     "verbatim",
}

func (k PieceKind) String() string {
	if int(k) < len(pieceKindNames) {
		return pieceKindNames[k]
	}
	return "unknown"
}

// PieceID identifies a piece inside one Index. Zero is invalid.
type PieceID uint32

const NoPieceID PieceID = 0

func (id PieceID) IsValid() bool { return id != NoPieceID }

// Piece is one unit of non-significant source content. Text is verbatim,
// including comment markers. Inline marks a block comment that sat between
// two tokens on one line and must not force a newline when re-emitted.
type Piece struct {
	Kind   PieceKind
	Span   source.Span
	Text   string
	Inline bool

	// Block comments only: whether the original text had a line break
	// on the corresponding side.
	PrecededByNewline bool
	FollowedByNewline bool
}

// IsComment reports whether the piece carries comment text.
func (p Piece) IsComment() bool {
	switch p.Kind {
	case PieceLineComment, PieceDocLine, PieceBlockComment:
		return true
	default:
		return false
	}
}

// Run is an ordered group of pieces that stay adjacent in the output.
// BlankBefore records one blank line separating this run from whatever
// precedes it; consecutive source blank lines collapse to one.
type Run struct {
	Pieces      []PieceID
	BlankBefore bool
}
