package format

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
	"lumefmt/internal/trivia"
)

func (p *printer) printMatch(id ast.ExprID) {
	m, _ := p.b.Exprs.Match(id)
	head := func() {
		p.w.WriteString("match")
		p.emitTokenAfter(m.KwSpan)
		p.w.Space()
		p.printExpr(m.Scrutinee)
		p.w.Space()
		p.emitTokenBefore(m.WithSpan)
		p.w.WriteString("with")
		p.emitTokenAfter(m.WithSpan)
	}
	compact := func() {
		head()
		for _, cl := range m.Clauses {
			p.w.Space()
			p.emitBeforeRuns(p.idx.NodeBefore(cl.Span))
			p.w.WriteString("| ")
			p.emitTokenAfter(cl.PipeSpan)
			p.printPattern(cl.Pat)
			p.w.Space()
			p.emitTokenBefore(cl.ArrowSpan)
			p.w.WriteString("->")
			p.emitTokenAfter(cl.ArrowSpan)
			p.w.Space()
			p.printExpr(cl.Body)
			p.emitAfterRuns(p.idx.NodeAfter(cl.Span))
		}
	}
	expanded := func() {
		head()
		for _, cl := range m.Clauses {
			p.w.Newline()
			p.emitBeforeRuns(p.idx.NodeBefore(cl.Span))
			p.w.WriteString("| ")
			p.emitTokenAfter(cl.PipeSpan)
			p.printPattern(cl.Pat)
			p.w.Space()
			p.emitTokenBefore(cl.ArrowSpan)
			p.w.WriteString("->")
			p.printAttachedBody(cl.ArrowSpan, cl.Body)
			p.emitAfterRuns(p.idx.NodeAfter(cl.Span))
		}
	}
	p.tryCompact(p.opt.Widths.Match, compact, expanded)
}

// Patterns always render compactly; a pattern long enough to wrap forces
// the whole clause line to expand through the enclosing budget instead.
func (p *printer) printPattern(id ast.PatternID) {
	pat := p.b.Patterns.Get(id)
	if pat == nil {
		fatal(diag.FmtParseFailed, source.Span{File: p.sf.ID}, "pattern node missing; parse did not succeed")
	}
	p.emitBeforeRuns(p.idx.NodeBefore(pat.Span))
	switch pat.Kind {
	case ast.PatWildcard:
		p.w.WriteString("_")
	case ast.PatIdent:
		ip, _ := p.b.Patterns.Ident(id)
		p.w.WriteString(p.b.String(ip.Name))
	case ast.PatLit:
		p.printLitPattern(id, pat)
	case ast.PatTuple:
		tp, _ := p.b.Patterns.Tuple(id)
		p.w.WriteString("(")
		for i, el := range tp.Elems {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.printPattern(el)
		}
		p.w.WriteString(")")
	case ast.PatCtor:
		cp, _ := p.b.Patterns.Ctor(id)
		p.w.WriteString(p.b.String(cp.Name))
		if len(cp.Args) > 0 {
			p.w.WriteString("(")
			for i, arg := range cp.Args {
				if i > 0 {
					p.w.WriteString(", ")
				}
				p.printPattern(arg)
			}
			p.w.WriteString(")")
		}
	case ast.PatList:
		lp, _ := p.b.Patterns.List(id)
		p.w.WriteString("[")
		for i, el := range lp.Elems {
			if i > 0 {
				p.w.WriteString("; ")
			}
			p.printPattern(el)
		}
		p.w.WriteString("]")
	case ast.PatCons:
		cp, _ := p.b.Patterns.Cons(id)
		p.printPattern(cp.Head)
		p.w.WriteString(" ")
		p.w.WriteString(token.ColonColon.String())
		p.w.WriteString(" ")
		p.printPattern(cp.Tail)
	default:
		fatal(diag.FmtUnsupportedConstruct, pat.Span, "no renderer for pattern kind %d", pat.Kind)
	}
	p.emitAfterRuns(p.idx.NodeAfter(pat.Span))
}

func (p *printer) printLitPattern(id ast.PatternID, pat *ast.Pattern) {
	if pid, ok := p.idx.Itself(trivia.NodeAnchor(pat.Span)); ok {
		p.w.MarkEmitted(pid)
		p.w.WriteString(p.idx.Piece(pid).Text)
		return
	}
	lp, ok := p.b.Patterns.Lit(id)
	if !ok {
		fatal(diag.FmtParseFailed, pat.Span, "literal pattern payload missing")
	}
	p.w.WriteString(p.b.String(lp.Text))
}
