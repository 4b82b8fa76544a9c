package trivia

import (
	"strings"

	"lumefmt/internal/token"
)

// rawPiece is a piece plus the number of newlines separating it from
// whatever came before it in the same gap.
type rawPiece struct {
	piece    Piece
	nlBefore int
}

// classifyGap converts one token's leading trivia into ordered pieces.
// Spaces vanish; newline runs become separation counts. Returns the pieces
// and the newline count trailing the last piece (or the whole gap when it
// held no pieces).
func classifyGap(leading []token.Trivia) (raws []rawPiece, trailingNL int) {
	pendingNL := 0
	for _, tr := range leading {
		switch tr.Kind {
		case token.TriviaSpace:
			// Horizontal whitespace carries no information.
		case token.TriviaNewline:
			pendingNL += strings.Count(tr.Text, "\n")
		case token.TriviaLineComment:
			raws = append(raws, rawPiece{
				piece:    Piece{Kind: PieceLineComment, Span: tr.Span, Text: tr.Text},
				nlBefore: pendingNL,
			})
			pendingNL = 0
		case token.TriviaDocLine:
			raws = append(raws, rawPiece{
				piece:    Piece{Kind: PieceDocLine, Span: tr.Span, Text: tr.Text},
				nlBefore: pendingNL,
			})
			pendingNL = 0
		case token.TriviaBlockComment:
			raws = append(raws, rawPiece{
				piece:    Piece{Kind: PieceBlockComment, Span: tr.Span, Text: tr.Text},
				nlBefore: pendingNL,
			})
			pendingNL = 0
		case token.TriviaDirective:
			raws = append(raws, rawPiece{
				piece:    Piece{Kind: PieceDirective, Span: tr.Span, Text: tr.Text},
				nlBefore: pendingNL,
			})
			pendingNL = 0
		}
	}

	// Block comments remember whether a line break bordered them, so the
	// renderer can tell an inline `(* x *)` from a standalone one.
	for i := range raws {
		if raws[i].piece.Kind != PieceBlockComment {
			continue
		}
		raws[i].piece.PrecededByNewline = raws[i].nlBefore > 0
		if i+1 < len(raws) {
			raws[i].piece.FollowedByNewline = raws[i+1].nlBefore > 0
		} else {
			raws[i].piece.FollowedByNewline = pendingNL > 0
		}
	}
	return raws, pendingNL
}

// isVerbatimKind reports whether a token's original spelling must survive
// formatting bit-for-bit.
func isVerbatimKind(k token.Kind) bool {
	switch k {
	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.BoolLit:
		return true
	default:
		return false
	}
}
