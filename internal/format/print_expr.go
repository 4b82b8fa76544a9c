package format

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/parser"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
	"lumefmt/internal/trivia"
)

func (p *printer) printExpr(id ast.ExprID) {
	e := p.b.Exprs.Get(id)
	if e == nil {
		fatal(diag.FmtParseFailed, source.Span{File: p.sf.ID}, "expression node missing; parse did not succeed")
	}
	p.emitNodeBefore(e.Span)
	switch e.Kind {
	case ast.ExprLit:
		p.printLit(id, e)
	case ast.ExprIdent:
		p.printIdent(id)
	case ast.ExprCall:
		p.printCall(id)
	case ast.ExprUnary:
		p.printUnary(id)
	case ast.ExprBinary:
		p.printBinary(id)
	case ast.ExprIf:
		p.printIf(id)
	case ast.ExprMatch:
		p.printMatch(id)
	case ast.ExprLambda:
		p.printLambda(id)
	case ast.ExprList:
		p.printSeq(id, "[", "]")
	case ast.ExprArray:
		p.printSeq(id, "[|", "|]")
	case ast.ExprRecord:
		p.printRecord(id)
	case ast.ExprTuple:
		p.printTuple(id)
	case ast.ExprParen:
		p.printParen(id)
	case ast.ExprField:
		p.printField(id)
	case ast.ExprBlock:
		p.printBlock(id)
	case ast.ExprLetBind:
		p.printLetBind(id)
	default:
		fatal(diag.FmtUnsupportedConstruct, e.Span, "no renderer for expression kind %d", e.Kind)
	}
	p.emitNodeAfter(e.Span)
}

// printLit prefers the verbatim source spelling over the interned token
// text; both exist, but only the trivia piece participates in the
// completeness check.
func (p *printer) printLit(id ast.ExprID, e *ast.Expr) {
	if pid, ok := p.idx.Itself(trivia.NodeAnchor(e.Span)); ok {
		p.w.MarkEmitted(pid)
		piece := p.idx.Piece(pid)
		if multiline(piece.Text) {
			p.w.WriteRaw(piece.Text)
		} else {
			p.w.WriteString(piece.Text)
		}
		return
	}
	lit, ok := p.b.Exprs.Lit(id)
	if !ok {
		fatal(diag.FmtParseFailed, e.Span, "literal payload missing")
	}
	p.w.WriteString(p.b.String(lit.Text))
}

func (p *printer) printIdent(id ast.ExprID) {
	ident, _ := p.b.Exprs.Ident(id)
	for i, seg := range ident.Segments {
		if i > 0 {
			p.w.WriteString(".")
		}
		p.w.WriteString(p.b.String(seg))
	}
}

func (p *printer) printCall(id ast.ExprID) {
	c, _ := p.b.Exprs.Call(id)
	p.printExpr(c.Callee)
	p.w.WriteString("(")
	if len(c.Args) == 0 {
		p.emitTokenAfter(c.LParen)
		p.emitTokenBefore(c.RParen)
		p.w.WriteString(")")
		return
	}
	compact := func() {
		p.emitTokenAfter(c.LParen)
		for i, arg := range c.Args {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.printExpr(arg)
		}
		p.emitTokenBefore(c.RParen)
		p.w.WriteString(")")
	}
	expanded := func() {
		p.emitTokenAfter(c.LParen)
		p.w.Newline()
		p.w.IndentPush()
		for i, arg := range c.Args {
			p.printExpr(arg)
			if i < len(c.Args)-1 {
				p.w.WriteString(",")
			}
			p.w.Newline()
		}
		p.w.IndentPop()
		p.emitTokenBefore(c.RParen)
		p.w.WriteString(")")
	}
	p.tryCompact(p.opt.Widths.Arguments, compact, expanded)
}

func (p *printer) printUnary(id ast.ExprID) {
	u, _ := p.b.Exprs.Unary(id)
	if u.Op == token.KwNot {
		p.w.WriteString("not")
		p.emitTokenAfter(u.OpSpan)
		p.w.Space()
	} else {
		p.w.WriteString(u.Op.String())
		p.emitTokenAfter(u.OpSpan)
	}
	p.printExpr(u.Operand)
}

type chainOp struct {
	op   token.Kind
	span source.Span
}

// flattenChain collects the operands and operators of a same-precedence
// infix chain. A nested binary node that carries its own attached trivia
// stays opaque so its runs are spliced by the regular wrapper.
func (p *printer) flattenChain(root ast.ExprID) ([]ast.ExprID, []chainOp) {
	rootBin, _ := p.b.Exprs.Binary(root)
	base := parser.Precedence(rootBin.Op)

	var operands []ast.ExprID
	var ops []chainOp
	var rec func(id ast.ExprID, isRoot bool)
	rec = func(id ast.ExprID, isRoot bool) {
		e := p.b.Exprs.Get(id)
		if e != nil && e.Kind == ast.ExprBinary {
			if bin, ok := p.b.Exprs.Binary(id); ok &&
				parser.Precedence(bin.Op) == base &&
				(isRoot || !p.hasNodeTrivia(e.Span)) {
				rec(bin.Left, false)
				ops = append(ops, chainOp{op: bin.Op, span: bin.OpSpan})
				rec(bin.Right, false)
				return
			}
		}
		operands = append(operands, id)
	}
	rec(root, true)
	return operands, ops
}

func (p *printer) hasNodeTrivia(sp source.Span) bool {
	return len(p.idx.NodeBefore(sp)) > 0 || len(p.idx.NodeAfter(sp)) > 0
}

// printBinary renders an infix chain on one line when short, or one
// operand per line with a leading operator when not. Mixed-precedence
// chains break only at the lowest-precedence operators; tighter
// sub-chains decide for themselves.
func (p *printer) printBinary(id ast.ExprID) {
	operands, ops := p.flattenChain(id)
	compact := func() {
		p.printExpr(operands[0])
		for i, op := range ops {
			p.w.Space()
			p.emitTokenBefore(op.span)
			p.w.WriteString(op.op.String())
			p.emitTokenAfter(op.span)
			p.w.Space()
			p.printExpr(operands[i+1])
		}
	}
	expanded := func() {
		p.printExpr(operands[0])
		p.w.IndentPush()
		for i, op := range ops {
			p.w.Newline()
			p.emitTokenBefore(op.span)
			p.w.WriteString(op.op.String())
			p.emitTokenAfter(op.span)
			p.w.Space()
			p.printExpr(operands[i+1])
		}
		p.w.IndentPop()
	}
	p.tryCompact(p.opt.Widths.Infix, compact, expanded)
}

func (p *printer) printIf(id ast.ExprID) {
	ife, _ := p.b.Exprs.If(id)
	compact := func() {
		for i, br := range ife.Branches {
			if i > 0 {
				p.w.Space()
			}
			p.printIfBranchHead(br, i == 0)
			p.emitTokenAfter(br.ThenSpan)
			p.w.Space()
			p.printExpr(br.Body)
		}
		if ife.ElseBody.IsValid() {
			p.w.Space()
			p.emitTokenBefore(ife.ElseSpan)
			p.w.WriteString("else")
			p.emitTokenAfter(ife.ElseSpan)
			p.w.Space()
			p.printExpr(ife.ElseBody)
		}
	}
	expanded := func() {
		for i, br := range ife.Branches {
			if i > 0 {
				p.w.Newline()
			}
			p.printIfBranchHead(br, i == 0)
			p.printAttachedBody(br.ThenSpan, br.Body)
		}
		if ife.ElseBody.IsValid() {
			p.w.Newline()
			p.emitTokenBefore(ife.ElseSpan)
			p.w.WriteString("else")
			p.printAttachedBody(ife.ElseSpan, ife.ElseBody)
		}
	}
	p.tryCompact(p.opt.Widths.IfElse, compact, expanded)
}

// printIfBranchHead emits `if cond then` / `elif cond then` without the body.
func (p *printer) printIfBranchHead(br ast.IfBranch, first bool) {
	if first {
		p.w.WriteString("if")
	} else {
		p.w.WriteString("elif")
	}
	p.emitTokenAfter(br.KwSpan)
	p.w.Space()
	p.printExpr(br.Cond)
	p.w.Space()
	p.emitTokenBefore(br.ThenSpan)
	p.w.WriteString("then")
}

func (p *printer) printLambda(id ast.ExprID) {
	l, _ := p.b.Exprs.Lambda(id)
	p.w.WriteString("fun")
	p.emitTokenAfter(l.KwSpan)
	for _, param := range l.Params {
		p.w.Space()
		p.printPattern(param)
	}
	p.w.Space()
	p.emitTokenBefore(l.ArrowSpan)
	p.w.WriteString("->")
	p.printAttachedBody(l.ArrowSpan, l.Body)
}

func (p *printer) printParen(id ast.ExprID) {
	pe, _ := p.b.Exprs.Paren(id)
	p.w.WriteString("(")
	p.printExpr(pe.Inner)
	p.w.WriteString(")")
}

func (p *printer) printField(id ast.ExprID) {
	f, _ := p.b.Exprs.Field(id)
	p.printExpr(f.Recv)
	p.w.WriteString(".")
	p.w.WriteString(p.b.String(f.Name))
}

// printBlock renders offside-rule block items, one per line at the current
// indent. A block is inherently multi-line, which forces every enclosing
// compact trial to fail.
func (p *printer) printBlock(id ast.ExprID) {
	bl, _ := p.b.Exprs.Block(id)
	for i, item := range bl.Items {
		if i > 0 {
			p.w.Newline()
		}
		p.printExpr(item)
	}
}

func (p *printer) printLetBind(id ast.ExprID) {
	lb, _ := p.b.Exprs.LetBind(id)
	p.w.WriteString("let ")
	if lb.Rec {
		p.w.WriteString("rec ")
	}
	p.w.WriteString(p.b.String(lb.Name))
	if lb.HasParens {
		p.printParams(lb.Params)
	}
	p.w.Space()
	p.w.WriteString("=")
	p.printAttachedBody(lb.EqSpan, lb.Value)
}
