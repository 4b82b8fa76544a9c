package trivia

import (
	"fmt"
	"strings"

	"lumefmt/internal/ast"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// Build classifies the trivia hiding in the token stream and attaches every
// piece to a node or token anchor. The stream must be the exact one the tree
// was parsed from, EOF included.
//
// Attachment rules, first match wins:
//  1. Trivia that ends on the same line as the next significant token sits
//     between two tokens on one line; it attaches Before the next token and
//     is re-emitted inline.
//  2. Trivia that starts on the same line as the previous token's end is a
//     sticky-right comment and attaches After the largest node ending there.
//  3. Everything else attaches Before the largest node starting at the next
//     token, or Before the token itself when no node starts there.
//
// Blank lines split runs and survive as run separators; blank lines at the
// start and end of the file are normalized away.
func Build(sf *source.File, b *ast.Builder, fileID ast.FileID, toks []token.Token) (*Index, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return nil, fmt.Errorf("trivia: token stream for %s does not end in EOF", sf.Path)
	}

	at := &attacher{
		sf:       sf,
		idx:      newIndex(),
		starts:   make(map[uint32]source.Span),
		ends:     make(map[uint32]source.Span),
		tokenSet: make(map[source.Span]struct{}),
		fileSpan: source.Span{File: sf.ID, Start: 0, End: uint32(len(sf.Content))},
	}
	ast.WalkSpans(b, fileID, func(sp source.Span) {
		at.spans = append(at.spans, sp)
		if cur, ok := at.starts[sp.Start]; !ok || sp.End > cur.End {
			at.starts[sp.Start] = sp
		}
		if cur, ok := at.ends[sp.End]; !ok || sp.Start < cur.Start {
			at.ends[sp.End] = sp
		}
	})
	ast.WalkTokenSpans(b, fileID, func(sp source.Span) {
		at.tokenSet[sp] = struct{}{}
	})

	var prev *token.Token
	for i := range toks {
		tok := toks[i]
		at.processGap(prev, tok)
		if isVerbatimKind(tok.Kind) {
			id := at.idx.addPiece(Piece{Kind: PieceVerbatim, Span: tok.Span, Text: tok.Text})
			at.idx.slot(NodeAnchor(tok.Span)).Itself = id
		}
		if tok.Kind != token.EOF {
			prev = &toks[i]
		}
	}
	return at.idx, nil
}

type attacher struct {
	sf       *source.File
	idx      *Index
	spans    []source.Span
	starts   map[uint32]source.Span
	ends     map[uint32]source.Span
	tokenSet map[source.Span]struct{}
	fileSpan source.Span
}

// anchorAfter resolves the sticky-right anchor for trivia trailing prev.
// Preference order: largest node ending at prev, then prev itself when the
// renderer re-emits it, then the innermost node containing prev.
func (at *attacher) anchorAfter(prev token.Token) Anchor {
	if sp, ok := at.ends[prev.Span.End]; ok {
		return NodeAnchor(sp)
	}
	if _, ok := at.tokenSet[prev.Span]; ok {
		return TokenAnchor(prev.Span)
	}
	return NodeAnchor(at.innermostContaining(prev.Span.Start))
}

// anchorBefore resolves the anchor for trivia preceding next.
func (at *attacher) anchorBefore(next token.Token) Anchor {
	if next.Kind == token.EOF {
		return TokenAnchor(next.Span)
	}
	if sp, ok := at.starts[next.Span.Start]; ok {
		return NodeAnchor(sp)
	}
	if _, ok := at.tokenSet[next.Span]; ok {
		return TokenAnchor(next.Span)
	}
	return NodeAnchor(at.innermostContaining(next.Span.Start))
}

// innermostContaining finds the smallest node span covering the offset.
// The file node spans the whole input, so there is always a candidate;
// attachment never fails.
func (at *attacher) innermostContaining(off uint32) source.Span {
	best := at.fileSpan
	for _, sp := range at.spans {
		if sp.Start <= off && off < sp.End && sp.Len() < best.Len() {
			best = sp
		}
	}
	return best
}

const (
	placeAfter = iota
	placeBefore
)

func (at *attacher) processGap(prev *token.Token, next token.Token) {
	raws, trailingNL := classifyGap(next.Leading)
	if len(raws) == 0 {
		// Gap with no comments: a double newline is still a blank line to keep.
		if trailingNL >= 2 && prev != nil && next.Kind != token.EOF {
			s := at.idx.slot(at.anchorBefore(next))
			s.Before = append(s.Before, Run{BlankBefore: true})
		}
		return
	}

	prevEndLine := uint32(0)
	if prev != nil {
		prevEndLine = at.sf.Line(prev.Span.End - 1)
	}
	nextStartLine := at.sf.Line(next.Span.Start)

	var (
		cur       Run
		curAnchor Anchor
		curPlace  int
		curKind   PieceKind
		open      bool
	)
	flush := func() {
		if !open {
			return
		}
		s := at.idx.slot(curAnchor)
		if curPlace == placeAfter {
			s.After = append(s.After, cur)
		} else {
			s.Before = append(s.Before, cur)
		}
		cur = Run{}
		open = false
	}

	for i, r := range raws {
		piece := r.piece
		startLine := at.sf.Line(piece.Span.Start)
		endLine := startLine
		if piece.Span.Len() > 0 {
			endLine = at.sf.Line(piece.Span.End - 1)
		}

		var anchor Anchor
		place := placeBefore
		switch {
		case next.Kind != token.EOF && endLine == nextStartLine:
			// Sits on the next token's line: re-emit inline before it.
			// A block comment with an embedded line break is never inline;
			// it goes through the standalone path, which re-emits its
			// original line layout verbatim.
			anchor = at.anchorBefore(next)
			piece.Inline = piece.Kind == PieceBlockComment &&
				!strings.ContainsRune(piece.Text, '\n')
		case prev != nil && startLine == prevEndLine:
			anchor = at.anchorAfter(*prev)
			place = placeAfter
		default:
			anchor = at.anchorBefore(next)
		}

		blank := r.nlBefore >= 2
		if i == 0 && prev == nil {
			blank = false // leading file blanks are dropped
		}
		if open && (anchor != curAnchor || place != curPlace || piece.Kind != curKind || blank) {
			flush()
		}
		if !open {
			open = true
			curAnchor = anchor
			curPlace = place
			curKind = piece.Kind
			cur.BlankBefore = blank && place == placeBefore
		}
		cur.Pieces = append(cur.Pieces, at.idx.addPiece(piece))
	}
	flush()

	// Blank line between the last piece and the code it precedes.
	if trailingNL >= 2 && next.Kind != token.EOF {
		s := at.idx.slot(at.anchorBefore(next))
		s.Before = append(s.Before, Run{BlankBefore: true})
	}
}
