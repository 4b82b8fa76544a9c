package format

import (
	"lumefmt/internal/ast"
)

// Collection layout: empty pairs stay closed with no internal space; short
// contents go inline; otherwise one element per line, indented, with the
// separator trailing every element but the last.

func (p *printer) printSeq(id ast.ExprID, open, close string) {
	seq, _ := p.b.Exprs.Seq(id)
	p.w.WriteString(open)
	if len(seq.Elems) == 0 {
		p.emitTokenAfter(seq.LSpan)
		p.emitTokenBefore(seq.RSpan)
		p.w.WriteString(close)
		return
	}
	compact := func() {
		p.emitTokenAfter(seq.LSpan)
		for i, el := range seq.Elems {
			if i > 0 {
				p.w.WriteString("; ")
			}
			p.printExpr(el)
		}
		p.emitTokenBefore(seq.RSpan)
		p.w.WriteString(close)
	}
	expanded := func() {
		p.emitTokenAfter(seq.LSpan)
		p.w.Newline()
		p.w.IndentPush()
		for i, el := range seq.Elems {
			p.printExpr(el)
			if i < len(seq.Elems)-1 {
				p.w.WriteString(";")
			}
			p.w.Newline()
		}
		p.w.IndentPop()
		p.emitTokenBefore(seq.RSpan)
		p.w.WriteString(close)
	}
	p.tryCompact(p.opt.Widths.List, compact, expanded)
}

func (p *printer) printRecord(id ast.ExprID) {
	rec, _ := p.b.Exprs.Record(id)
	p.w.WriteString("{")
	if len(rec.Fields) == 0 {
		p.emitTokenAfter(rec.LSpan)
		p.emitTokenBefore(rec.RSpan)
		p.w.WriteString("}")
		return
	}
	compact := func() {
		p.emitTokenAfter(rec.LSpan)
		p.w.Space()
		for i, f := range rec.Fields {
			if i > 0 {
				p.w.WriteString("; ")
			}
			p.printFieldInit(f)
		}
		p.w.Space()
		p.emitTokenBefore(rec.RSpan)
		p.w.WriteString("}")
	}
	expanded := func() {
		p.emitTokenAfter(rec.LSpan)
		p.w.Newline()
		p.w.IndentPush()
		for i, f := range rec.Fields {
			p.printFieldInit(f)
			if i < len(rec.Fields)-1 {
				p.w.WriteString(";")
			}
			p.w.Newline()
		}
		p.w.IndentPop()
		p.emitTokenBefore(rec.RSpan)
		p.w.WriteString("}")
	}
	p.tryCompact(p.opt.Widths.Record, compact, expanded)
}

func (p *printer) printFieldInit(f ast.RecordFieldInit) {
	p.emitBeforeRuns(p.idx.NodeBefore(f.Span))
	p.w.WriteString(p.b.String(f.Name))
	p.w.WriteString(" = ")
	p.printExpr(f.Value)
	p.emitAfterRuns(p.idx.NodeAfter(f.Span))
}

func (p *printer) printTuple(id ast.ExprID) {
	tup, _ := p.b.Exprs.Tuple(id)
	p.w.WriteString("(")
	compact := func() {
		for i, el := range tup.Elems {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.printExpr(el)
		}
		p.w.WriteString(")")
	}
	expanded := func() {
		p.w.Newline()
		p.w.IndentPush()
		for i, el := range tup.Elems {
			p.printExpr(el)
			if i < len(tup.Elems)-1 {
				p.w.WriteString(",")
			}
			p.w.Newline()
		}
		p.w.IndentPop()
		p.w.WriteString(")")
	}
	p.tryCompact(p.opt.Widths.List, compact, expanded)
}
