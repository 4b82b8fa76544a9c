package parser

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/lexer"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// Options configures one parse.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

// Result carries the parsed file plus the retained token stream (EOF
// included). The stream is what the trivia classifier works from; it is
// kept alive for the duration of one format operation.
type Result struct {
	File   ast.FileID
	Tokens []token.Token
}

type parser struct {
	sf      *source.File
	toks    []token.Token
	pos     int
	builder *ast.Builder
	opts    Options
	errs    uint

	// itemCol is the offside anchor of the block item being parsed;
	// a token on a fresh line extends the current expression only when
	// indented past it. Zero suspends the rule (inside brackets).
	itemCol uint32
}

// ParseFile drains the lexer and parses one Lume source file into the
// builder's arenas. The parser is layout-sensitive: blocks open at the
// column of their first token and close at the first token left of it.
func ParseFile(sf *source.File, lx *lexer.Lexer, b *ast.Builder, opts Options) Result {
	toks := drain(lx)
	p := &parser{
		sf:      sf,
		toks:    toks,
		builder: b,
		opts:    opts,
	}
	fileID := p.parseFile()
	return Result{File: fileID, Tokens: toks}
}

func drain(lx *lexer.Lexer) []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (p *parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *parser) peekKind(n int) token.Kind {
	i := p.pos + n
	if i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

func (p *parser) bump() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	return token.Token{}, false
}

func (p *parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	p.err(code, p.cur().Span, msg)
	return token.Token{}, false
}

func (p *parser) err(code diag.Code, sp source.Span, msg string) {
	p.errs++
	if p.opts.MaxErrors != 0 && p.errs > p.opts.MaxErrors {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// lineCol resolves a token's start to 1-based line/column.
func (p *parser) lineCol(tok token.Token) source.LineCol {
	return p.sf.LineCol(tok.Span.Start)
}

func (p *parser) col(tok token.Token) uint32 {
	return p.lineCol(tok).Col
}

func (p *parser) line(tok token.Token) uint32 {
	return p.lineCol(tok).Line
}

// sameLine reports whether tok starts on the line where prevEnd ends.
func (p *parser) sameLine(prevEnd uint32, tok token.Token) bool {
	if prevEnd == 0 {
		return false
	}
	return p.sf.Line(prevEnd-1) == p.line(tok)
}

// adjacent reports whether tok begins exactly at prevEnd; call and field
// postfixes bind only when adjacent, so `f (x)` on a fresh line never turns
// into an application.
func (p *parser) adjacent(prevEnd uint32, tok token.Token) bool {
	return tok.Span.Start == prevEnd
}

func (p *parser) intern(s string) source.StringID {
	return p.builder.Strings.Intern(s)
}

func (p *parser) parseFile() ast.FileID {
	var decls []ast.DeclID
	fileSpan := source.Span{File: p.sf.ID, Start: 0, End: uint32(len(p.sf.Content))}

	for !p.at(token.EOF) {
		p.itemCol = p.col(p.cur())
		decl := p.parseTopDecl()
		if decl.IsValid() {
			decls = append(decls, decl)
			continue
		}
		// Recovery: skip one token so parsing always advances.
		p.bump()
	}
	return p.builder.NewFile(fileSpan, decls)
}
