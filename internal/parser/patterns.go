package parser

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// parsePattern parses a full match pattern. Cons is the only pattern
// operator and is right-associative.
func (p *parser) parsePattern() ast.PatternID {
	head := p.parsePrimaryPattern()
	if !head.IsValid() {
		return ast.NoPatternID
	}
	opTok, ok := p.eat(token.ColonColon)
	if !ok {
		return head
	}
	tail := p.parsePattern()
	if !tail.IsValid() {
		return head
	}
	span := p.patSpan(head).Cover(p.patSpan(tail))
	return p.builder.Patterns.NewCons(span, ast.ConsPat{
		Head:   head,
		Tail:   tail,
		OpSpan: opTok.Span,
	})
}

func (p *parser) parsePrimaryPattern() ast.PatternID {
	tok := p.cur()
	switch tok.Kind {
	case token.Underscore:
		p.bump()
		return p.builder.Patterns.NewWildcard(tok.Span)

	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.BoolLit:
		p.bump()
		return p.builder.Patterns.NewLit(tok.Span, ast.LitPat{
			TokKind: tok.Kind,
			Text:    p.intern(tok.Text),
		})

	case token.Ident:
		p.bump()
		if isCapitalized(tok.Text) {
			return p.parseCtorPattern(tok)
		}
		return p.builder.Patterns.NewIdent(tok.Span, ast.IdentPat{
			Name: p.intern(tok.Text),
		})

	case token.LParen:
		return p.parseParenPattern()

	case token.LBracket:
		return p.parseListPattern()

	default:
		p.err(diag.SynExpectPattern, tok.Span, "expected pattern")
		return ast.NoPatternID
	}
}

// parseCtorPattern reads `Name` or `Name(p, p)`; argument parens must be
// adjacent to the constructor name.
func (p *parser) parseCtorPattern(nameTok token.Token) ast.PatternID {
	payload := ast.CtorPat{
		Name:     p.intern(nameTok.Text),
		NameSpan: nameTok.Span,
	}
	span := nameTok.Span

	if p.at(token.LParen) && p.adjacent(nameTok.Span.End, p.cur()) {
		p.bump()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			arg := p.parsePattern()
			if !arg.IsValid() {
				break
			}
			payload.Args = append(payload.Args, arg)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		rp, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after constructor arguments")
		span = span.Cover(rp.Span)
	}
	return p.builder.Patterns.NewCtor(span, payload)
}

// parseParenPattern reads `(p)` or `(p, p)`. A single parenthesized
// pattern collapses to its inner pattern.
func (p *parser) parseParenPattern() ast.PatternID {
	lp := p.bump()

	first := p.parsePattern()
	if !first.IsValid() {
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		return ast.NoPatternID
	}

	if !p.at(token.Comma) {
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		return first
	}

	elems := []ast.PatternID{first}
	for {
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		elem := p.parsePattern()
		if !elem.IsValid() {
			break
		}
		elems = append(elems, elem)
	}
	rp, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after tuple pattern")
	return p.builder.Patterns.NewTuple(lp.Span.Cover(rp.Span), ast.TuplePat{Elems: elems})
}

func (p *parser) parseListPattern() ast.PatternID {
	open := p.bump()

	var elems []ast.PatternID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elem := p.parsePattern()
		if !elem.IsValid() {
			break
		}
		elems = append(elems, elem)
		if _, ok := p.eat(token.Semicolon); !ok {
			break
		}
	}
	closeTok, _ := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after list pattern")
	return p.builder.Patterns.NewList(open.Span.Cover(closeTok.Span), ast.ListPat{Elems: elems})
}

func (p *parser) patSpan(id ast.PatternID) source.Span {
	if pat := p.builder.Patterns.Get(id); pat != nil {
		return pat.Span
	}
	return source.Span{}
}
