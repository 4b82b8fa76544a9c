package parser

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

func (p *parser) parseTopDecl() ast.DeclID {
	switch p.cur().Kind {
	case token.KwLet:
		return p.parseLetDecl()
	case token.KwType:
		return p.parseTypeDecl()
	case token.KwOpen:
		return p.parseOpenDecl()
	default:
		p.err(diag.SynUnexpectedTopLevel, p.cur().Span,
			"expected 'let', 'type', or 'open' at top level")
		return ast.NoDeclID
	}
}

// parseLetDecl parses `let [rec] name[(params)] [: type] = body`.
func (p *parser) parseLetDecl() ast.DeclID {
	letTok := p.bump()

	var payload ast.LetDecl
	if _, ok := p.eat(token.KwRec); ok {
		payload.Rec = true
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected binding name after 'let'")
	if !ok {
		return ast.NoDeclID
	}
	payload.Name = p.intern(nameTok.Text)
	payload.NameSpan = nameTok.Span

	if p.at(token.LParen) && p.adjacent(nameTok.Span.End, p.cur()) {
		payload.HasParens = true
		payload.Params = p.parseParams()
	}

	if _, ok := p.eat(token.Colon); ok {
		payload.Ann = p.parseType()
	}

	eqTok, ok := p.expect(token.Eq, diag.SynUnexpectedToken, "expected '=' in let binding")
	if !ok {
		return ast.NoDeclID
	}
	payload.EqSpan = eqTok.Span

	payload.Body = p.parseBody(eqTok.Span.End, p.col(letTok))
	if !payload.Body.IsValid() {
		return ast.NoDeclID
	}

	span := letTok.Span.Cover(p.builder.Exprs.Get(payload.Body).Span)
	return p.builder.Decls.NewLet(span, payload)
}

func (p *parser) parseParams() []ast.Param {
	p.bump() // '('
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseParam()
		if !ok {
			break
		}
		params = append(params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parameters")
	return params
}

func (p *parser) parseParam() (ast.Param, bool) {
	if lp, ok := p.eat(token.LParen); ok {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return ast.Param{}, false
		}
		p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in annotated parameter")
		ann := p.parseType()
		rp, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parameter annotation")
		return ast.Param{
			Name:     p.intern(nameTok.Text),
			Span:     lp.Span.Cover(rp.Span),
			Ann:      ann,
			HasParen: true,
		}, true
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
	if !ok {
		return ast.Param{}, false
	}
	return ast.Param{
		Name: p.intern(nameTok.Text),
		Span: nameTok.Span,
	}, true
}

// parseTypeDecl parses `type Name = { fields }`, `type Name = | Ctor ...`,
// or `type Name = alias`.
func (p *parser) parseTypeDecl() ast.DeclID {
	typeTok := p.bump()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name after 'type'")
	if !ok {
		return ast.NoDeclID
	}

	payload := ast.TypeDecl{
		Name:     p.intern(nameTok.Text),
		NameSpan: nameTok.Span,
	}

	eqTok, ok := p.expect(token.Eq, diag.SynUnexpectedToken, "expected '=' in type declaration")
	if !ok {
		return ast.NoDeclID
	}
	payload.EqSpan = eqTok.Span

	end := eqTok.Span.End
	switch p.cur().Kind {
	case token.LBrace:
		payload.Shape = ast.TypeShapeRecord
		payload.Fields, end = p.parseFieldDefs()
	case token.Pipe:
		payload.Shape = ast.TypeShapeUnion
		payload.Ctors, end = p.parseCtorDefs()
	default:
		payload.Shape = ast.TypeShapeAlias
		payload.Alias = p.parseType()
		if t := p.builder.Types.Get(payload.Alias); t != nil {
			end = t.Span.End
		}
	}

	span := typeTok.Span
	span.End = end
	return p.builder.Decls.NewType(span, payload)
}

func (p *parser) parseFieldDefs() ([]ast.FieldDef, uint32) {
	p.bump() // '{'
	var fields []ast.FieldDef
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name")
		if !ok {
			break
		}
		p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after field name")
		fieldType := p.parseType()
		span := nameTok.Span
		if t := p.builder.Types.Get(fieldType); t != nil {
			span = span.Cover(t.Span)
		}
		fields = append(fields, ast.FieldDef{
			Name:     p.intern(nameTok.Text),
			NameSpan: nameTok.Span,
			Type:     fieldType,
			Span:     span,
		})
		if _, ok := p.eat(token.Semicolon); !ok {
			break
		}
	}
	rb, _ := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after record fields")
	return fields, rb.Span.End
}

func (p *parser) parseCtorDefs() ([]ast.CtorDef, uint32) {
	var ctors []ast.CtorDef
	end := p.cur().Span.End
	for {
		pipeTok, ok := p.eat(token.Pipe)
		if !ok {
			break
		}
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected constructor name after '|'")
		if !ok {
			break
		}
		ctor := ast.CtorDef{
			Name:     p.intern(nameTok.Text),
			NameSpan: nameTok.Span,
			Span:     pipeTok.Span.Cover(nameTok.Span),
		}
		if _, ok := p.eat(token.KwOf); ok {
			// Arguments are '*'-separated atoms; a tuple or arrow argument
			// needs parentheses.
			for {
				argType := p.parseAtomType()
				ctor.Args = append(ctor.Args, argType)
				if t := p.builder.Types.Get(argType); t != nil {
					ctor.Span = ctor.Span.Cover(t.Span)
				}
				if _, ok := p.eat(token.Star); !ok {
					break
				}
			}
		}
		end = ctor.Span.End
		ctors = append(ctors, ctor)
	}
	return ctors, end
}

// parseOpenDecl parses `open Seg.Seg`.
func (p *parser) parseOpenDecl() ast.DeclID {
	openTok := p.bump()

	var segments []source.StringID
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module path after 'open'")
	if !ok {
		return ast.NoDeclID
	}
	segments = append(segments, p.intern(nameTok.Text))
	end := nameTok.Span.End
	for p.at(token.Dot) && p.adjacent(end, p.cur()) {
		p.bump()
		segTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected path segment after '.'")
		if !ok {
			break
		}
		segments = append(segments, p.intern(segTok.Text))
		end = segTok.Span.End
	}

	span := openTok.Span
	span.End = end
	return p.builder.Decls.NewOpen(span, ast.OpenDecl{Segments: segments})
}
