package format

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
)

// Type syntax always renders compactly; annotations are short in practice
// and a long one simply pushes the binding body onto its own line.
func (p *printer) printType(id ast.TypeID) {
	t := p.b.Types.Get(id)
	if t == nil {
		fatal(diag.FmtParseFailed, source.Span{File: p.sf.ID}, "type node missing; parse did not succeed")
	}
	p.emitBeforeRuns(p.idx.NodeBefore(t.Span))
	switch t.Kind {
	case ast.TypeName:
		nt, _ := p.b.Types.Name(id)
		for i, seg := range nt.Segments {
			if i > 0 {
				p.w.WriteString(".")
			}
			p.w.WriteString(p.b.String(seg))
		}
		if len(nt.Args) > 0 {
			p.w.WriteString("<")
			for i, arg := range nt.Args {
				if i > 0 {
					p.w.WriteString(", ")
				}
				p.printType(arg)
			}
			p.w.WriteString(">")
		}
	case ast.TypeFun:
		ft, _ := p.b.Types.Fun(id)
		p.printType(ft.Param)
		p.w.WriteString(" -> ")
		p.printType(ft.Result)
	case ast.TypeTuple:
		tt, _ := p.b.Types.Tuple(id)
		for i, el := range tt.Elems {
			if i > 0 {
				p.w.WriteString(" * ")
			}
			p.printType(el)
		}
	case ast.TypeParen:
		pt, _ := p.b.Types.Paren(id)
		p.w.WriteString("(")
		p.printType(pt.Inner)
		p.w.WriteString(")")
	default:
		fatal(diag.FmtUnsupportedConstruct, t.Span, "no renderer for type kind %d", t.Kind)
	}
	p.emitAfterRuns(p.idx.NodeAfter(t.Span))
}
