package parser

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// Binary precedence levels, lowest first. Cons is right-associative.
var binaryPrec = map[token.Kind]int{
	token.OrOr:       1,
	token.AndAnd:     2,
	token.Eq:         3,
	token.LtGt:       3,
	token.Lt:         3,
	token.LtEq:       3,
	token.Gt:         3,
	token.GtEq:       3,
	token.ColonColon: 4,
	token.Plus:       5,
	token.Minus:      5,
	token.Caret:      5,
	token.Star:       6,
	token.Slash:      6,
	token.Percent:    6,
}

// Precedence looks up the binding strength of an infix operator kind
// (0 when the kind is not an operator). Exported for the renderer, which
// breaks mixed chains at the lowest-precedence operator.
func Precedence(k token.Kind) int {
	return binaryPrec[k]
}

func isBlockTerminator(k token.Kind) bool {
	switch k {
	case token.EOF, token.RParen, token.RBracket, token.RArrayBracket,
		token.RBrace, token.Comma, token.Semicolon, token.KwThen,
		token.KwElse, token.KwElif, token.KwWith, token.KwOf,
		token.Pipe, token.Arrow, token.KwIn:
		return true
	default:
		return false
	}
}

// parseBody parses the right-hand side of '=', 'then', 'else', or '->'.
// A body starting on the same line is a single expression; a body starting
// on a later line is an offside block anchored at its first token's column.
func (p *parser) parseBody(prevEnd uint32, minCol uint32) ast.ExprID {
	tok := p.cur()
	if tok.Kind == token.EOF || isBlockTerminator(tok.Kind) {
		p.err(diag.SynExpectExpression, tok.Span, "expected expression")
		return ast.NoExprID
	}
	if p.sameLine(prevEnd, tok) {
		return p.parseExpr()
	}
	blockCol := p.col(tok)
	if blockCol <= minCol {
		// Dedented body: still parse it as a single expression so the
		// error surfaces at the construct that actually went wrong.
		return p.parseExpr()
	}
	return p.parseBlock(blockCol)
}

// parseBlock parses items that all start at blockCol; the block closes at
// the first token left of that column or at a structural terminator.
func (p *parser) parseBlock(blockCol uint32) ast.ExprID {
	savedCol := p.itemCol
	defer func() { p.itemCol = savedCol }()

	var items []ast.ExprID
	for {
		tok := p.cur()
		if isBlockTerminator(tok.Kind) || p.col(tok) != blockCol {
			break
		}
		p.itemCol = blockCol
		var item ast.ExprID
		if tok.Kind == token.KwLet {
			item = p.parseLetBindItem()
		} else {
			item = p.parseExpr()
		}
		if !item.IsValid() {
			break
		}
		items = append(items, item)
	}

	switch len(items) {
	case 0:
		p.err(diag.SynExpectExpression, p.cur().Span, "expected expression")
		return ast.NoExprID
	case 1:
		if e := p.builder.Exprs.Get(items[0]); e != nil && e.Kind != ast.ExprLetBind {
			return items[0]
		}
	}
	span := p.exprSpan(items[0]).Cover(p.exprSpan(items[len(items)-1]))
	return p.builder.Exprs.NewBlock(span, ast.BlockExpr{Items: items})
}

// parseLetBindItem parses `let [rec] name[(params)] = body` inside a block.
func (p *parser) parseLetBindItem() ast.ExprID {
	letTok := p.bump()

	var payload ast.LetBindExpr
	if _, ok := p.eat(token.KwRec); ok {
		payload.Rec = true
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected binding name after 'let'")
	if !ok {
		return ast.NoExprID
	}
	payload.Name = p.intern(nameTok.Text)
	payload.NameSpan = nameTok.Span

	if p.at(token.LParen) && p.adjacent(nameTok.Span.End, p.cur()) {
		payload.HasParens = true
		payload.Params = p.parseParams()
	}

	eqTok, ok := p.expect(token.Eq, diag.SynUnexpectedToken, "expected '=' in let binding")
	if !ok {
		return ast.NoExprID
	}
	payload.EqSpan = eqTok.Span

	payload.Value = p.parseBody(eqTok.Span.End, p.col(letTok))
	if !payload.Value.IsValid() {
		return ast.NoExprID
	}

	span := letTok.Span.Cover(p.exprSpan(payload.Value))
	return p.builder.Exprs.NewLetBind(span, payload)
}

// continuesExpr reports whether tok may extend the current expression:
// either it shares a line with the previous token or it is indented past
// the current item's start column. Inside brackets itemCol is zero, which
// suspends the offside rule.
func (p *parser) continuesExpr(prevEnd uint32, tok token.Token) bool {
	if p.sameLine(prevEnd, tok) {
		return true
	}
	return p.col(tok) > p.itemCol
}

func (p *parser) parseExpr() ast.ExprID {
	return p.parseBinary(1)
}

func (p *parser) parseBinary(minPrec int) ast.ExprID {
	left := p.parseUnary()
	if !left.IsValid() {
		return ast.NoExprID
	}

	for {
		opTok := p.cur()
		prec := binaryPrec[opTok.Kind]
		if prec == 0 || prec < minPrec {
			return left
		}
		if !p.continuesExpr(p.exprSpan(left).End, opTok) {
			return left
		}
		p.bump()

		// Right-associative cons keeps the same level on the right;
		// everything else climbs.
		nextPrec := prec + 1
		if opTok.Kind == token.ColonColon {
			nextPrec = prec
		}
		right := p.parseBinary(nextPrec)
		if !right.IsValid() {
			return left
		}
		span := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.builder.Exprs.NewBinary(span, ast.BinaryExpr{
			Op:     opTok.Kind,
			OpSpan: opTok.Span,
			Left:   left,
			Right:  right,
		})
	}
}

func (p *parser) parseUnary() ast.ExprID {
	tok := p.cur()
	if tok.Kind == token.Minus || tok.Kind == token.KwNot {
		p.bump()
		operand := p.parseUnary()
		if !operand.IsValid() {
			return ast.NoExprID
		}
		span := tok.Span.Cover(p.exprSpan(operand))
		return p.builder.Exprs.NewUnary(span, ast.UnaryExpr{
			Op:      tok.Kind,
			OpSpan:  tok.Span,
			Operand: operand,
		})
	}
	return p.parsePostfix()
}

// parsePostfix handles call and field-access suffixes. Both bind only when
// the '(' or '.' is directly adjacent to the previous token.
func (p *parser) parsePostfix() ast.ExprID {
	expr := p.parsePrimary()
	if !expr.IsValid() {
		return ast.NoExprID
	}

	for {
		end := p.exprSpan(expr).End
		tok := p.cur()
		switch {
		case tok.Kind == token.LParen && p.adjacent(end, tok):
			expr = p.parseCall(expr)
		case tok.Kind == token.Dot && p.adjacent(end, tok):
			p.bump()
			nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name after '.'")
			if !ok {
				return expr
			}
			span := p.exprSpan(expr).Cover(nameTok.Span)
			expr = p.builder.Exprs.NewField(span, ast.FieldExpr{
				Recv:     expr,
				Name:     p.intern(nameTok.Text),
				NameSpan: nameTok.Span,
			})
		default:
			return expr
		}
		if !expr.IsValid() {
			return ast.NoExprID
		}
	}
}

func (p *parser) parseCall(callee ast.ExprID) ast.ExprID {
	lp := p.bump()

	savedCol := p.itemCol
	p.itemCol = 0 // brackets suspend the offside rule
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg := p.parseExpr()
		if !arg.IsValid() {
			break
		}
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.itemCol = savedCol

	rp, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after arguments")
	span := p.exprSpan(callee).Cover(rp.Span)
	return p.builder.Exprs.NewCall(span, ast.CallExpr{
		Callee: callee,
		Args:   args,
		LParen: lp.Span,
		RParen: rp.Span,
	})
}

func (p *parser) parsePrimary() ast.ExprID {
	tok := p.cur()
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.BoolLit:
		p.bump()
		return p.builder.Exprs.NewLit(tok.Span, ast.LitExpr{
			TokKind: tok.Kind,
			Text:    p.intern(tok.Text),
		})

	case token.Ident:
		return p.parseIdentOrPath()

	case token.LParen:
		return p.parseParenForm()

	case token.LBracket:
		return p.parseSeq(token.RBracket, false)

	case token.LArrayBracket:
		return p.parseSeq(token.RArrayBracket, true)

	case token.LBrace:
		return p.parseRecord()

	case token.KwIf:
		return p.parseIf()

	case token.KwMatch:
		return p.parseMatch()

	case token.KwFun:
		return p.parseLambda()

	default:
		p.err(diag.SynExpectExpression, tok.Span, "expected expression")
		return ast.NoExprID
	}
}

// parseIdentOrPath reads `x` or, when the head is capitalized, the whole
// qualified path `List.map`. Lowercase heads leave '.' to the field-access
// postfix instead.
func (p *parser) parseIdentOrPath() ast.ExprID {
	nameTok := p.bump()
	segments := []source.StringID{p.intern(nameTok.Text)}
	span := nameTok.Span

	if isCapitalized(nameTok.Text) {
		for p.at(token.Dot) && p.adjacent(span.End, p.cur()) && p.peekKind(1) == token.Ident {
			p.bump()
			segTok := p.bump()
			segments = append(segments, p.intern(segTok.Text))
			span = span.Cover(segTok.Span)
		}
	}
	return p.builder.Exprs.NewIdent(span, ast.IdentExpr{Segments: segments})
}

// parseParenForm reads `()`, `(e)`, or `(a, b, ...)`.
func (p *parser) parseParenForm() ast.ExprID {
	lp := p.bump()

	if rp, ok := p.eat(token.RParen); ok {
		span := lp.Span.Cover(rp.Span)
		return p.builder.Exprs.NewLit(span, ast.LitExpr{
			TokKind: token.LParen,
			Text:    p.intern("()"),
		})
	}

	savedCol := p.itemCol
	p.itemCol = 0
	first := p.parseExpr()
	if !first.IsValid() {
		p.itemCol = savedCol
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		return ast.NoExprID
	}

	if p.at(token.Comma) {
		elems := []ast.ExprID{first}
		for {
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
			elem := p.parseExpr()
			if !elem.IsValid() {
				break
			}
			elems = append(elems, elem)
		}
		p.itemCol = savedCol
		rp, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after tuple")
		span := lp.Span.Cover(rp.Span)
		return p.builder.Exprs.NewTuple(span, ast.TupleExpr{Elems: elems})
	}

	p.itemCol = savedCol
	rp, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
	span := lp.Span.Cover(rp.Span)
	return p.builder.Exprs.NewParen(span, ast.ParenExpr{Inner: first})
}

func (p *parser) parseSeq(closing token.Kind, isArray bool) ast.ExprID {
	open := p.bump()

	savedCol := p.itemCol
	p.itemCol = 0
	var elems []ast.ExprID
	for !p.at(closing) && !p.at(token.EOF) {
		elem := p.parseExpr()
		if !elem.IsValid() {
			break
		}
		elems = append(elems, elem)
		if _, ok := p.eat(token.Semicolon); !ok {
			break
		}
	}
	p.itemCol = savedCol

	closeTok, _ := p.expect(closing, diag.SynUnclosedDelimiter, "expected closing bracket")
	span := open.Span.Cover(closeTok.Span)
	payload := ast.SeqExpr{Elems: elems, LSpan: open.Span, RSpan: closeTok.Span}
	if isArray {
		return p.builder.Exprs.NewArray(span, payload)
	}
	return p.builder.Exprs.NewList(span, payload)
}

func (p *parser) parseRecord() ast.ExprID {
	lb := p.bump()

	savedCol := p.itemCol
	p.itemCol = 0
	var fields []ast.RecordFieldInit
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident, diag.SynBadRecordField, "expected field name in record")
		if !ok {
			break
		}
		p.expect(token.Eq, diag.SynBadRecordField, "expected '=' after field name")
		value := p.parseExpr()
		if !value.IsValid() {
			break
		}
		fields = append(fields, ast.RecordFieldInit{
			Name:     p.intern(nameTok.Text),
			NameSpan: nameTok.Span,
			Value:    value,
			Span:     nameTok.Span.Cover(p.exprSpan(value)),
		})
		if _, ok := p.eat(token.Semicolon); !ok {
			break
		}
	}
	p.itemCol = savedCol

	rb, _ := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after record")
	span := lb.Span.Cover(rb.Span)
	return p.builder.Exprs.NewRecord(span, ast.RecordExpr{
		Fields: fields,
		LSpan:  lb.Span,
		RSpan:  rb.Span,
	})
}

func (p *parser) parseIf() ast.ExprID {
	ifTok := p.cur()
	payload := ast.IfExpr{}
	span := ifTok.Span

	for {
		kwTok := p.bump() // 'if' or 'elif'
		cond := p.parseExpr()
		if !cond.IsValid() {
			return ast.NoExprID
		}
		thenTok, ok := p.expect(token.KwThen, diag.SynUnexpectedToken, "expected 'then' after condition")
		if !ok {
			return ast.NoExprID
		}
		body := p.parseBody(thenTok.Span.End, p.col(ifTok))
		if !body.IsValid() {
			return ast.NoExprID
		}
		payload.Branches = append(payload.Branches, ast.IfBranch{
			KwSpan:   kwTok.Span,
			Cond:     cond,
			ThenSpan: thenTok.Span,
			Body:     body,
		})
		span = span.Cover(p.exprSpan(body))
		if !p.at(token.KwElif) {
			break
		}
	}

	if elseTok, ok := p.eat(token.KwElse); ok {
		payload.ElseSpan = elseTok.Span
		payload.ElseBody = p.parseBody(elseTok.Span.End, p.col(ifTok))
		if !payload.ElseBody.IsValid() {
			return ast.NoExprID
		}
		span = span.Cover(p.exprSpan(payload.ElseBody))
	}

	return p.builder.Exprs.NewIf(span, payload)
}

func (p *parser) parseMatch() ast.ExprID {
	matchTok := p.bump()

	scrutinee := p.parseExpr()
	if !scrutinee.IsValid() {
		return ast.NoExprID
	}
	withTok, ok := p.expect(token.KwWith, diag.SynUnexpectedToken, "expected 'with' after match scrutinee")
	if !ok {
		return ast.NoExprID
	}

	payload := ast.MatchExpr{
		KwSpan:    matchTok.Span,
		Scrutinee: scrutinee,
		WithSpan:  withTok.Span,
	}

	span := matchTok.Span.Cover(withTok.Span)
	for p.at(token.Pipe) {
		pipeTok := p.bump()
		pat := p.parsePattern()
		if !pat.IsValid() {
			return ast.NoExprID
		}
		arrowTok, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' after pattern")
		if !ok {
			return ast.NoExprID
		}
		body := p.parseBody(arrowTok.Span.End, p.col(pipeTok))
		if !body.IsValid() {
			return ast.NoExprID
		}
		clauseSpan := pipeTok.Span.Cover(p.exprSpan(body))
		payload.Clauses = append(payload.Clauses, ast.MatchClause{
			PipeSpan:  pipeTok.Span,
			Pat:       pat,
			ArrowSpan: arrowTok.Span,
			Body:      body,
			Span:      clauseSpan,
		})
		span = span.Cover(clauseSpan)
	}

	if len(payload.Clauses) == 0 {
		p.err(diag.SynEmptyMatch, withTok.Span, "match expression has no clauses")
		return ast.NoExprID
	}
	return p.builder.Exprs.NewMatch(span, payload)
}

func (p *parser) parseLambda() ast.ExprID {
	funTok := p.bump()

	var params []ast.PatternID
	for !p.at(token.Arrow) && !p.at(token.EOF) {
		pat := p.parsePrimaryPattern()
		if !pat.IsValid() {
			break
		}
		params = append(params, pat)
	}
	arrowTok, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' after lambda parameters")
	if !ok {
		return ast.NoExprID
	}
	body := p.parseBody(arrowTok.Span.End, p.col(funTok))
	if !body.IsValid() {
		return ast.NoExprID
	}
	span := funTok.Span.Cover(p.exprSpan(body))
	return p.builder.Exprs.NewLambda(span, ast.LambdaExpr{
		KwSpan:    funTok.Span,
		Params:    params,
		ArrowSpan: arrowTok.Span,
		Body:      body,
	})
}

func (p *parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.builder.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func isCapitalized(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}
