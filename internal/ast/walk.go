package ast

import (
	"lumefmt/internal/source"
)

// WalkSpans visits the span of every node reachable from the file, including
// match clauses, record fields, and constructor definitions. Order is
// unspecified; the trivia attacher only needs the set of node extents.
func WalkSpans(b *Builder, fileID FileID, fn func(span source.Span)) {
	file := b.File(fileID)
	if file == nil {
		return
	}
	fn(file.Span)
	w := spanWalker{b: b, fn: fn}
	for _, id := range file.Decls {
		w.decl(id)
	}
}

// WalkTokenSpans visits the recorded keyword and punctuation spans that the
// renderer re-emits itself: '=', 'then', 'else', 'with', arrows, operators,
// and bracket pairs. Trivia may anchor to these between two tokens of one
// node.
func WalkTokenSpans(b *Builder, fileID FileID, fn func(span source.Span)) {
	file := b.File(fileID)
	if file == nil {
		return
	}
	w := tokenSpanWalker{b: b, fn: fn}
	for _, id := range file.Decls {
		w.decl(id)
	}
}

type tokenSpanWalker struct {
	b  *Builder
	fn func(span source.Span)
}

func (w *tokenSpanWalker) span(sp source.Span) {
	if !sp.Empty() {
		w.fn(sp)
	}
}

func (w *tokenSpanWalker) decl(id DeclID) {
	d := w.b.Decls.Get(id)
	if d == nil {
		return
	}
	switch d.Kind {
	case DeclLet:
		if p, ok := w.b.Decls.Let(id); ok {
			w.span(p.EqSpan)
			w.expr(p.Body)
		}
	case DeclType:
		if p, ok := w.b.Decls.Type(id); ok {
			w.span(p.EqSpan)
		}
	}
}

func (w *tokenSpanWalker) expr(id ExprID) {
	e := w.b.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ExprCall:
		if p, ok := w.b.Exprs.Call(id); ok {
			w.span(p.LParen)
			w.span(p.RParen)
			w.expr(p.Callee)
			for _, arg := range p.Args {
				w.expr(arg)
			}
		}
	case ExprUnary:
		if p, ok := w.b.Exprs.Unary(id); ok {
			w.span(p.OpSpan)
			w.expr(p.Operand)
		}
	case ExprBinary:
		if p, ok := w.b.Exprs.Binary(id); ok {
			w.span(p.OpSpan)
			w.expr(p.Left)
			w.expr(p.Right)
		}
	case ExprIf:
		if p, ok := w.b.Exprs.If(id); ok {
			for _, br := range p.Branches {
				w.span(br.KwSpan)
				w.span(br.ThenSpan)
				w.expr(br.Cond)
				w.expr(br.Body)
			}
			w.span(p.ElseSpan)
			w.expr(p.ElseBody)
		}
	case ExprMatch:
		if p, ok := w.b.Exprs.Match(id); ok {
			w.span(p.KwSpan)
			w.span(p.WithSpan)
			w.expr(p.Scrutinee)
			for _, cl := range p.Clauses {
				w.span(cl.PipeSpan)
				w.span(cl.ArrowSpan)
				w.expr(cl.Body)
			}
		}
	case ExprLambda:
		if p, ok := w.b.Exprs.Lambda(id); ok {
			w.span(p.KwSpan)
			w.span(p.ArrowSpan)
			w.expr(p.Body)
		}
	case ExprList, ExprArray:
		if p, ok := w.b.Exprs.Seq(id); ok {
			w.span(p.LSpan)
			w.span(p.RSpan)
			for _, el := range p.Elems {
				w.expr(el)
			}
		}
	case ExprRecord:
		if p, ok := w.b.Exprs.Record(id); ok {
			w.span(p.LSpan)
			w.span(p.RSpan)
			for _, f := range p.Fields {
				w.expr(f.Value)
			}
		}
	case ExprTuple:
		if p, ok := w.b.Exprs.Tuple(id); ok {
			for _, el := range p.Elems {
				w.expr(el)
			}
		}
	case ExprParen:
		if p, ok := w.b.Exprs.Paren(id); ok {
			w.expr(p.Inner)
		}
	case ExprField:
		if p, ok := w.b.Exprs.Field(id); ok {
			w.expr(p.Recv)
		}
	case ExprBlock:
		if p, ok := w.b.Exprs.Block(id); ok {
			for _, item := range p.Items {
				w.expr(item)
			}
		}
	case ExprLetBind:
		if p, ok := w.b.Exprs.LetBind(id); ok {
			w.span(p.EqSpan)
			w.expr(p.Value)
		}
	}
}

type spanWalker struct {
	b  *Builder
	fn func(span source.Span)
}

func (w *spanWalker) decl(id DeclID) {
	d := w.b.Decls.Get(id)
	if d == nil {
		return
	}
	w.fn(d.Span)
	switch d.Kind {
	case DeclLet:
		if p, ok := w.b.Decls.Let(id); ok {
			for _, param := range p.Params {
				w.fn(param.Span)
				w.typ(param.Ann)
			}
			w.typ(p.Ann)
			w.expr(p.Body)
		}
	case DeclType:
		if p, ok := w.b.Decls.Type(id); ok {
			for _, f := range p.Fields {
				w.fn(f.Span)
				w.typ(f.Type)
			}
			for _, c := range p.Ctors {
				w.fn(c.Span)
				for _, arg := range c.Args {
					w.typ(arg)
				}
			}
			w.typ(p.Alias)
		}
	case DeclOpen:
		// No children beyond the path.
	}
}

func (w *spanWalker) expr(id ExprID) {
	e := w.b.Exprs.Get(id)
	if e == nil {
		return
	}
	w.fn(e.Span)
	switch e.Kind {
	case ExprCall:
		if p, ok := w.b.Exprs.Call(id); ok {
			w.expr(p.Callee)
			for _, arg := range p.Args {
				w.expr(arg)
			}
		}
	case ExprUnary:
		if p, ok := w.b.Exprs.Unary(id); ok {
			w.expr(p.Operand)
		}
	case ExprBinary:
		if p, ok := w.b.Exprs.Binary(id); ok {
			w.expr(p.Left)
			w.expr(p.Right)
		}
	case ExprIf:
		if p, ok := w.b.Exprs.If(id); ok {
			for _, br := range p.Branches {
				w.expr(br.Cond)
				w.expr(br.Body)
			}
			w.expr(p.ElseBody)
		}
	case ExprMatch:
		if p, ok := w.b.Exprs.Match(id); ok {
			w.expr(p.Scrutinee)
			for _, cl := range p.Clauses {
				w.fn(cl.Span)
				w.pattern(cl.Pat)
				w.expr(cl.Body)
			}
		}
	case ExprLambda:
		if p, ok := w.b.Exprs.Lambda(id); ok {
			for _, param := range p.Params {
				w.pattern(param)
			}
			w.expr(p.Body)
		}
	case ExprList, ExprArray:
		if p, ok := w.b.Exprs.Seq(id); ok {
			for _, el := range p.Elems {
				w.expr(el)
			}
		}
	case ExprRecord:
		if p, ok := w.b.Exprs.Record(id); ok {
			for _, f := range p.Fields {
				w.fn(f.Span)
				w.expr(f.Value)
			}
		}
	case ExprTuple:
		if p, ok := w.b.Exprs.Tuple(id); ok {
			for _, el := range p.Elems {
				w.expr(el)
			}
		}
	case ExprParen:
		if p, ok := w.b.Exprs.Paren(id); ok {
			w.expr(p.Inner)
		}
	case ExprField:
		if p, ok := w.b.Exprs.Field(id); ok {
			w.expr(p.Recv)
		}
	case ExprBlock:
		if p, ok := w.b.Exprs.Block(id); ok {
			for _, item := range p.Items {
				w.expr(item)
			}
		}
	case ExprLetBind:
		if p, ok := w.b.Exprs.LetBind(id); ok {
			for _, param := range p.Params {
				w.fn(param.Span)
				w.typ(param.Ann)
			}
			w.expr(p.Value)
		}
	}
}

func (w *spanWalker) pattern(id PatternID) {
	p := w.b.Patterns.Get(id)
	if p == nil {
		return
	}
	w.fn(p.Span)
	switch p.Kind {
	case PatTuple:
		if pay, ok := w.b.Patterns.Tuple(id); ok {
			for _, el := range pay.Elems {
				w.pattern(el)
			}
		}
	case PatCtor:
		if pay, ok := w.b.Patterns.Ctor(id); ok {
			for _, arg := range pay.Args {
				w.pattern(arg)
			}
		}
	case PatList:
		if pay, ok := w.b.Patterns.List(id); ok {
			for _, el := range pay.Elems {
				w.pattern(el)
			}
		}
	case PatCons:
		if pay, ok := w.b.Patterns.Cons(id); ok {
			w.pattern(pay.Head)
			w.pattern(pay.Tail)
		}
	}
}

func (w *spanWalker) typ(id TypeID) {
	t := w.b.Types.Get(id)
	if t == nil {
		return
	}
	w.fn(t.Span)
	switch t.Kind {
	case TypeName:
		if p, ok := w.b.Types.Name(id); ok {
			for _, arg := range p.Args {
				w.typ(arg)
			}
		}
	case TypeFun:
		if p, ok := w.b.Types.Fun(id); ok {
			w.typ(p.Param)
			w.typ(p.Result)
		}
	case TypeTuple:
		if p, ok := w.b.Types.Tuple(id); ok {
			for _, el := range p.Elems {
				w.typ(el)
			}
		}
	case TypeParen:
		if p, ok := w.b.Types.Paren(id); ok {
			w.typ(p.Inner)
		}
	}
}
