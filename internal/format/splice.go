package format

import (
	"lumefmt/internal/source"
	"lumefmt/internal/trivia"
)

// Trivia splicing. Before-runs go on their own lines at the current indent,
// except inline block comments, which stay in the line flow. After-runs stay
// on the current line; a line comment in an after-run necessarily ends it.

func (p *printer) emitNodeBefore(sp source.Span) {
	p.emitBeforeRuns(p.idx.NodeBefore(sp))
}

func (p *printer) emitNodeAfter(sp source.Span) {
	p.emitAfterRuns(p.idx.NodeAfter(sp))
}

func (p *printer) emitTokenBefore(sp source.Span) {
	p.emitBeforeRuns(p.idx.TokenBefore(sp))
}

func (p *printer) emitTokenAfter(sp source.Span) {
	p.emitAfterRuns(p.idx.TokenAfter(sp))
}

func (p *printer) hasTokenAfter(sp source.Span) bool {
	return len(p.idx.TokenAfter(sp)) > 0
}

func (p *printer) emitBeforeRuns(runs []trivia.Run) {
	for _, run := range runs {
		if run.BlankBefore {
			p.w.BlankLine()
		}
		for _, id := range run.Pieces {
			if p.w.IsEmitted(id) {
				continue
			}
			p.w.MarkEmitted(id)
			piece := p.idx.Piece(id)
			if piece.Inline {
				p.w.Space()
				p.w.WriteString(piece.Text)
				p.w.Space()
				continue
			}
			p.w.Newline()
			p.emitPieceLine(piece)
		}
	}
}

// emitPieceLine writes one standalone piece and ends its line. Directives
// always start in column one, whatever the current indent.
func (p *printer) emitPieceLine(piece trivia.Piece) {
	switch {
	case piece.Kind == trivia.PieceDirective:
		p.w.IndentPushAt(0)
		p.w.WriteRaw(piece.Text)
		p.w.IndentPop()
	case multiline(piece.Text):
		p.w.WriteRaw(piece.Text)
	default:
		p.w.WriteString(piece.Text)
	}
	p.w.Newline()
}

func (p *printer) emitAfterRuns(runs []trivia.Run) {
	for _, run := range runs {
		for _, id := range run.Pieces {
			if p.w.IsEmitted(id) {
				continue
			}
			p.w.MarkEmitted(id)
			piece := p.idx.Piece(id)
			switch piece.Kind {
			case trivia.PieceLineComment, trivia.PieceDocLine:
				p.w.MarkTrailingComment()
			}
			p.w.Space()
			if multiline(piece.Text) {
				p.w.WriteRaw(piece.Text)
			} else {
				p.w.WriteString(piece.Text)
			}
			switch piece.Kind {
			case trivia.PieceLineComment, trivia.PieceDocLine, trivia.PieceDirective:
				p.w.Newline()
			case trivia.PieceBlockComment:
				if piece.FollowedByNewline {
					p.w.Newline()
				}
			}
		}
	}
}
