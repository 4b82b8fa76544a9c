// Package format renders a parsed Lume file back to canonical source text.
// Layout is decided per construct: a compact single-line shape is trial
// rendered and committed only when it fits the construct's width budget,
// otherwise the expanded multi-line shape is used. All comments, blank
// lines, directives, and literal spellings from the trivia index are
// spliced back in; losing one aborts the whole operation.
package format

import (
	"bytes"
	"errors"

	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
	"lumefmt/internal/trivia"
)

type printer struct {
	sf   *source.File
	b    *ast.Builder
	file *ast.File
	idx  *trivia.Index
	opt  Options
	w    *Writer
}

// FormatFile renders one file. The builder, file ID, and trivia index must
// all come from the same parse of sf. Formatting is deterministic and pure;
// on any failure the output is nil and the error carries a span.
func FormatFile(sf *source.File, b *ast.Builder, fileID ast.FileID, idx *trivia.Index, opt Options) (out []byte, err error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if idx == nil {
		return nil, errors.New("format: nil trivia index")
	}
	file := b.File(fileID)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			out, err = nil, e
		}
	}()

	opt = opt.withDefaults()
	pr := &printer{
		sf:   sf,
		b:    b,
		file: file,
		idx:  idx,
		opt:  opt,
		w:    NewWriter(opt, idx.PieceCount(), len(sf.Content)+64),
	}
	pr.printFile()

	for i := 1; i <= idx.PieceCount(); i++ {
		id := trivia.PieceID(i)
		if !pr.w.IsEmitted(id) {
			piece := idx.Piece(id)
			return nil, errorf(diag.FmtTriviaInvariant, piece.Span,
				"%s trivia was not re-emitted", piece.Kind)
		}
	}

	out = bytes.TrimRight(pr.w.Bytes(), " \n")
	if opt.InsertFinalNewline {
		out = append(out, '\n')
	}
	return out, nil
}

func (p *printer) printFile() {
	p.emitNodeBefore(p.file.Span)
	for _, id := range p.file.Decls {
		p.printDecl(id)
	}
	p.emitNodeAfter(p.file.Span)
	p.w.Newline()

	// Comments past the last declaration anchor before the EOF token.
	n := uint32(len(p.sf.Content))
	p.emitTokenBefore(source.Span{File: p.sf.ID, Start: n, End: n})
	p.w.Newline()
}
