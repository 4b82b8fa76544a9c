package parser

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// parseType parses a type annotation. Arrows are right-associative and
// bind looser than '*', which binds looser than application.
func (p *parser) parseType() ast.TypeID {
	param := p.parseTupleType()
	if !param.IsValid() {
		return ast.NoTypeID
	}
	arrowTok, ok := p.eat(token.Arrow)
	if !ok {
		return param
	}
	result := p.parseType()
	if !result.IsValid() {
		return param
	}
	span := p.typeSpan(param).Cover(p.typeSpan(result))
	return p.builder.Types.NewFun(span, ast.FunType{
		Param:     param,
		Result:    result,
		ArrowSpan: arrowTok.Span,
	})
}

func (p *parser) parseTupleType() ast.TypeID {
	first := p.parseAtomType()
	if !first.IsValid() {
		return ast.NoTypeID
	}
	if !p.at(token.Star) {
		return first
	}

	elems := []ast.TypeID{first}
	for {
		if _, ok := p.eat(token.Star); !ok {
			break
		}
		elem := p.parseAtomType()
		if !elem.IsValid() {
			break
		}
		elems = append(elems, elem)
	}
	span := p.typeSpan(elems[0]).Cover(p.typeSpan(elems[len(elems)-1]))
	return p.builder.Types.NewTuple(span, ast.TupleType{Elems: elems})
}

// parseAtomType reads `Seg.Seg<arg, arg>`, a bare name, or `(t)`.
func (p *parser) parseAtomType() ast.TypeID {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident:
		return p.parseNameType()

	case token.LParen:
		lp := p.bump()
		inner := p.parseType()
		if !inner.IsValid() {
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
			return ast.NoTypeID
		}
		rp, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after type")
		return p.builder.Types.NewParen(lp.Span.Cover(rp.Span), ast.ParenType{Inner: inner})

	default:
		p.err(diag.SynExpectType, tok.Span, "expected type")
		return ast.NoTypeID
	}
}

func (p *parser) parseNameType() ast.TypeID {
	nameTok := p.bump()
	payload := ast.NameType{Segments: []source.StringID{p.intern(nameTok.Text)}}
	span := nameTok.Span

	for p.at(token.Dot) && p.adjacent(span.End, p.cur()) && p.peekKind(1) == token.Ident {
		p.bump()
		segTok := p.bump()
		payload.Segments = append(payload.Segments, p.intern(segTok.Text))
		span = span.Cover(segTok.Span)
	}

	if p.at(token.Lt) && p.adjacent(span.End, p.cur()) {
		p.bump()
		for !p.at(token.Gt) && !p.at(token.EOF) {
			arg := p.parseType()
			if !arg.IsValid() {
				break
			}
			payload.Args = append(payload.Args, arg)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		gtTok, _ := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' after type arguments")
		span = span.Cover(gtTok.Span)
	}
	return p.builder.Types.NewName(span, payload)
}

func (p *parser) typeSpan(id ast.TypeID) source.Span {
	if t := p.builder.Types.Get(id); t != nil {
		return t.Span
	}
	return source.Span{}
}
