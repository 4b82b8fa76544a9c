package format

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
)

func (p *printer) printDecl(id ast.DeclID) {
	d := p.b.Decls.Get(id)
	if d == nil {
		fatal(diag.FmtParseFailed, source.Span{File: p.sf.ID}, "declaration node missing; parse did not succeed")
	}
	p.emitNodeBefore(d.Span)
	switch d.Kind {
	case ast.DeclLet:
		p.printLetDecl(id, d)
	case ast.DeclType:
		p.printTypeDecl(id, d)
	case ast.DeclOpen:
		p.printOpenDecl(id, d)
	default:
		fatal(diag.FmtUnsupportedConstruct, d.Span, "no renderer for declaration kind %d", d.Kind)
	}
	p.emitNodeAfter(d.Span)
	p.w.Newline()
}

func (p *printer) printLetDecl(id ast.DeclID, d *ast.Decl) {
	let, ok := p.b.Decls.Let(id)
	if !ok {
		fatal(diag.FmtParseFailed, d.Span, "let declaration payload missing")
	}
	p.w.WriteString("let ")
	if let.Rec {
		p.w.WriteString("rec ")
	}
	p.w.WriteString(p.b.String(let.Name))
	if let.HasParens {
		p.printParams(let.Params)
	}
	if let.Ann.IsValid() {
		p.w.WriteString(": ")
		p.printType(let.Ann)
	}
	p.w.Space()
	p.w.WriteString("=")
	p.printAttachedBody(let.EqSpan, let.Body)
}

func (p *printer) printParams(params []ast.Param) {
	if len(params) == 0 {
		p.w.WriteString("()")
		return
	}
	compact := func() {
		p.w.WriteString("(")
		for i, param := range params {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.printParam(param)
		}
		p.w.WriteString(")")
	}
	expanded := func() {
		p.w.WriteString("(")
		p.w.Newline()
		p.w.IndentPush()
		for i, param := range params {
			p.printParam(param)
			if i < len(params)-1 {
				p.w.WriteString(",")
			}
			p.w.Newline()
		}
		p.w.IndentPop()
		p.w.WriteString(")")
	}
	p.tryCompact(p.opt.Widths.Arguments, compact, expanded)
}

func (p *printer) printParam(param ast.Param) {
	if param.HasParen {
		p.w.WriteString("(")
		p.w.WriteString(p.b.String(param.Name))
		p.w.WriteString(": ")
		p.printType(param.Ann)
		p.w.WriteString(")")
		return
	}
	p.w.WriteString(p.b.String(param.Name))
}

// printAttachedBody lays out the expression following '=', 'then', 'else',
// or '->': on the same line when everything fits, otherwise on its own
// indented line. Trailing trivia on the keyword, or a body whose own
// rendering breaks the line, forces the indented form.
func (p *printer) printAttachedBody(kwSpan source.Span, body ast.ExprID) {
	if p.hasTokenAfter(kwSpan) {
		// A comment trailing the keyword owns the rest of the line.
		p.emitTokenAfter(kwSpan)
		p.w.Newline()
		p.w.IndentPush()
		p.printExpr(body)
		p.w.IndentPop()
		return
	}
	compact := func() {
		p.emitTokenAfter(kwSpan)
		p.w.Space()
		p.printExpr(body)
	}
	expanded := func() {
		p.emitTokenAfter(kwSpan)
		p.w.Newline()
		p.w.IndentPush()
		p.printExpr(body)
		p.w.IndentPop()
	}
	p.tryCompact(p.opt.MaxLineWidth, compact, expanded)
}

func (p *printer) printTypeDecl(id ast.DeclID, d *ast.Decl) {
	td, ok := p.b.Decls.Type(id)
	if !ok {
		fatal(diag.FmtParseFailed, d.Span, "type declaration payload missing")
	}
	p.w.WriteString("type ")
	p.w.WriteString(p.b.String(td.Name))
	p.w.Space()
	p.w.WriteString("=")
	p.emitTokenAfter(td.EqSpan)

	switch td.Shape {
	case ast.TypeShapeAlias:
		p.w.Space()
		p.printType(td.Alias)
	case ast.TypeShapeRecord:
		p.printFieldDefs(td.Fields)
	case ast.TypeShapeUnion:
		p.printCtorDefs(td.Ctors)
	default:
		fatal(diag.FmtUnsupportedConstruct, d.Span, "no renderer for type shape %d", td.Shape)
	}
}

func (p *printer) printFieldDefs(fields []ast.FieldDef) {
	if len(fields) == 0 {
		p.w.Space()
		p.w.WriteString("{}")
		return
	}
	compact := func() {
		p.w.Space()
		p.w.WriteString("{ ")
		for i, f := range fields {
			if i > 0 {
				p.w.WriteString("; ")
			}
			p.printFieldDef(f)
		}
		p.w.WriteString(" }")
	}
	expanded := func() {
		p.w.Space()
		p.w.WriteString("{")
		p.w.Newline()
		p.w.IndentPush()
		for i, f := range fields {
			p.printFieldDef(f)
			if i < len(fields)-1 {
				p.w.WriteString(";")
			}
			p.w.Newline()
		}
		p.w.IndentPop()
		p.w.WriteString("}")
	}
	p.tryCompact(p.opt.Widths.Record, compact, expanded)
}

func (p *printer) printFieldDef(f ast.FieldDef) {
	p.emitBeforeRuns(p.idx.NodeBefore(f.Span))
	p.w.WriteString(p.b.String(f.Name))
	p.w.WriteString(": ")
	p.printType(f.Type)
	p.emitAfterRuns(p.idx.NodeAfter(f.Span))
}

func (p *printer) printCtorDefs(ctors []ast.CtorDef) {
	compact := func() {
		for _, c := range ctors {
			p.w.Space()
			p.printCtorDef(c)
		}
	}
	expanded := func() {
		p.w.Newline()
		p.w.IndentPush()
		for _, c := range ctors {
			p.printCtorDef(c)
			p.w.Newline()
		}
		p.w.IndentPop()
	}
	p.tryCompact(p.opt.Widths.Record, compact, expanded)
}

func (p *printer) printCtorDef(c ast.CtorDef) {
	p.emitBeforeRuns(p.idx.NodeBefore(c.Span))
	p.w.WriteString("| ")
	p.w.WriteString(p.b.String(c.Name))
	if len(c.Args) > 0 {
		p.w.WriteString(" of ")
		for i, arg := range c.Args {
			if i > 0 {
				p.w.WriteString(" * ")
			}
			p.printType(arg)
		}
	}
	p.emitAfterRuns(p.idx.NodeAfter(c.Span))
}

func (p *printer) printOpenDecl(id ast.DeclID, d *ast.Decl) {
	open, ok := p.b.Decls.Open(id)
	if !ok {
		fatal(diag.FmtParseFailed, d.Span, "open declaration payload missing")
	}
	p.w.WriteString("open ")
	for i, seg := range open.Segments {
		if i > 0 {
			p.w.WriteString(".")
		}
		p.w.WriteString(p.b.String(seg))
	}
}
