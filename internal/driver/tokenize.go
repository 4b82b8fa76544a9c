package driver

import (
	"lumefmt/internal/diag"
	"lumefmt/internal/lexer"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

// TokenizeResult carries everything the tokenize command needs to render.
type TokenizeResult struct {
	Tokens  []token.Token
	Bag     *diag.Bag
	FileSet *source.FileSet
}

// Tokenize lexes one file and returns the full token stream, EOF included.
// Lexical errors land in the bag; the stream is still returned so the dump
// shows how far lexing got.
func Tokenize(path string, defines map[string]bool, maxDiagnostics int) (TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 64
	}
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return TokenizeResult{}, err
	}

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(fileSet.Get(id), lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Defines:  defines,
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return TokenizeResult{Tokens: tokens, Bag: bag, FileSet: fileSet}, nil
}
