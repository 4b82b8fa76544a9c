package format

import (
	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/lexer"
	"lumefmt/internal/parser"
	"lumefmt/internal/source"
	"lumefmt/internal/trivia"
)

// Render runs the whole pipeline on one file: lex, parse, attach trivia,
// print. Lexical or syntactic errors abort with FmtParseFailed; the bag
// holds up to maxDiagnostics of the underlying diagnostics for reporting
// (zero or negative picks the default cap).
func Render(sf *source.File, defines map[string]bool, opt Options, maxDiagnostics int) ([]byte, *diag.Bag, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 64
	}
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	lx := lexer.New(sf, lexer.Options{Reporter: reporter, Defines: defines})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(sf, lx, builder, parser.Options{Reporter: reporter, MaxErrors: uint(maxDiagnostics)})

	if bag.HasErrors() {
		first := bag.Sorted()[0]
		code := diag.FmtParseFailed
		switch first.Code {
		case diag.LexUnterminatedBlockComment, diag.LexUnterminatedDirective:
			code = diag.FmtMalformedTrivia
		}
		return nil, bag, errorf(code, first.Primary,
			"cannot format %s: %s", sf.Path, first.Message)
	}

	idx, err := trivia.Build(sf, builder, res.File, res.Tokens)
	if err != nil {
		return nil, bag, errorf(diag.FmtTriviaInvariant, source.Span{File: sf.ID}, "%v", err)
	}

	out, err := FormatFile(sf, builder, res.File, idx, opt)
	if err != nil {
		return nil, bag, err
	}
	return out, bag, nil
}
