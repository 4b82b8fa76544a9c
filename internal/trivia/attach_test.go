package trivia_test

import (
	"testing"

	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/lexer"
	"lumefmt/internal/parser"
	"lumefmt/internal/source"
	"lumefmt/internal/trivia"
)

type fixture struct {
	b    *ast.Builder
	file *ast.File
	idx  *trivia.Index
}

func buildIndex(t *testing.T, input string) fixture {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.lm", []byte(input)))

	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(sf, lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(sf, lx, b, parser.Options{Reporter: reporter, MaxErrors: 16})
	if bag.HasErrors() {
		t.Fatalf("parse errors in fixture: %v", bag.Sorted())
	}

	idx, err := trivia.Build(sf, b, res.File, res.Tokens)
	if err != nil {
		t.Fatalf("trivia.Build: %v", err)
	}
	return fixture{b: b, file: b.File(res.File), idx: idx}
}

// comments collects the text of every comment piece in the given runs.
func (f fixture) comments(runs []trivia.Run) []string {
	var out []string
	for _, run := range runs {
		for _, id := range run.Pieces {
			p := f.idx.Piece(id)
			if p.IsComment() {
				out = append(out, p.Text)
			}
		}
	}
	return out
}

func (f fixture) declSpan(i int) source.Span {
	return f.b.Decls.Get(f.file.Decls[i]).Span
}

func TestCommentBeforeBodyAttachesToBody(t *testing.T) {
	fx := buildIndex(t, "let f() =\n  // COMMENT\n  x + x\n")

	let, _ := fx.b.Decls.Let(fx.file.Decls[0])
	bodySpan := fx.b.Exprs.Get(let.Body).Span
	got := fx.comments(fx.idx.NodeBefore(bodySpan))
	if len(got) != 1 || got[0] != "// COMMENT" {
		t.Fatalf("Before(body) comments = %v, want [// COMMENT]", got)
	}
}

func TestTrailingCommentAttachesAfterBinding(t *testing.T) {
	fx := buildIndex(t, "let x = 1 // trailing\n")

	got := fx.comments(fx.idx.NodeAfter(fx.declSpan(0)))
	if len(got) != 1 || got[0] != "// trailing" {
		t.Fatalf("After(decl) comments = %v, want [// trailing]", got)
	}
}

func TestInlineBlockCommentBeforeRightOperand(t *testing.T) {
	fx := buildIndex(t, "let a = 1 + (* mid *) 1\n")

	let, _ := fx.b.Decls.Let(fx.file.Decls[0])
	bin, ok := fx.b.Exprs.Binary(let.Body)
	if !ok {
		t.Fatal("body should be a binary expression")
	}
	rightSpan := fx.b.Exprs.Get(bin.Right).Span
	runs := fx.idx.NodeBefore(rightSpan)
	got := fx.comments(runs)
	if len(got) != 1 || got[0] != "(* mid *)" {
		t.Fatalf("Before(right operand) comments = %v, want [(* mid *)]", got)
	}
	p := fx.idx.Piece(runs[0].Pieces[0])
	if !p.Inline {
		t.Error("single-line block comment between tokens should stay inline")
	}
}

func TestMultilineBlockCommentNotInline(t *testing.T) {
	fx := buildIndex(t, "let a = 1 + (* first\nsecond *) 1\n")

	let, _ := fx.b.Decls.Let(fx.file.Decls[0])
	bin, ok := fx.b.Exprs.Binary(let.Body)
	if !ok {
		t.Fatal("body should be a binary expression")
	}
	rightSpan := fx.b.Exprs.Get(bin.Right).Span
	runs := fx.idx.NodeBefore(rightSpan)
	got := fx.comments(runs)
	if len(got) != 1 || got[0] != "(* first\nsecond *)" {
		t.Fatalf("Before(right operand) comments = %v", got)
	}
	p := fx.idx.Piece(runs[0].Pieces[0])
	if p.Inline {
		t.Error("a block comment with an embedded line break must not be inline")
	}
}

func TestBlankLineSplitsRuns(t *testing.T) {
	input := "// one\n// two\n\n// three\nlet x = 1\n"
	fx := buildIndex(t, input)

	runs := fx.idx.NodeBefore(fx.declSpan(0))
	var nonEmpty []trivia.Run
	for _, r := range runs {
		if len(r.Pieces) > 0 {
			nonEmpty = append(nonEmpty, r)
		}
	}
	if len(nonEmpty) != 2 {
		t.Fatalf("runs = %d, want 2 (blank line splits)", len(nonEmpty))
	}
	if len(nonEmpty[0].Pieces) != 2 {
		t.Errorf("first run pieces = %d, want the two adjacent comments", len(nonEmpty[0].Pieces))
	}
	if !nonEmpty[1].BlankBefore {
		t.Error("second run should carry the blank separator")
	}
	if got := fx.comments(runs); len(got) != 3 || got[0] != "// one" || got[2] != "// three" {
		t.Errorf("comment order mismatch: %v", got)
	}
}

func TestBlankBetweenDeclsRecorded(t *testing.T) {
	fx := buildIndex(t, "let a = 1\n\nlet b = 2\n")

	runs := fx.idx.NodeBefore(fx.declSpan(1))
	found := false
	for _, r := range runs {
		if r.BlankBefore {
			found = true
		}
	}
	if !found {
		t.Error("blank line between decls should be recorded Before the second")
	}
}

func TestFileTrailingCommentAnchorsToEOF(t *testing.T) {
	input := "let x = 1\n\n// the end\n"
	fx := buildIndex(t, input)

	// EOF anchor is the empty span at the end of the file.
	eof := source.Span{File: 0, Start: uint32(len(input)), End: uint32(len(input))}
	got := fx.comments(fx.idx.TokenBefore(eof))
	if len(got) != 1 || got[0] != "// the end" {
		t.Fatalf("Before(EOF) comments = %v, want [// the end]", got)
	}
}

func TestVerbatimLiteralPieces(t *testing.T) {
	fx := buildIndex(t, "let a = 0x1A\n")

	let, _ := fx.b.Decls.Let(fx.file.Decls[0])
	lit := fx.b.Exprs.Get(let.Body)
	id, ok := fx.idx.Itself(trivia.NodeAnchor(lit.Span))
	if !ok {
		t.Fatal("literal should carry a verbatim piece")
	}
	p := fx.idx.Piece(id)
	if p.Kind != trivia.PieceVerbatim || p.Text != "0x1A" {
		t.Errorf("verbatim piece = %v %q", p.Kind, p.Text)
	}
}

func TestDocCommentBeforeDecl(t *testing.T) {
	fx := buildIndex(t, "/// Adds one.\nlet incr(n) = n + 1\n")

	runs := fx.idx.NodeBefore(fx.declSpan(0))
	got := fx.comments(runs)
	if len(got) != 1 || got[0] != "/// Adds one." {
		t.Fatalf("comments = %v", got)
	}
	p := fx.idx.Piece(runs[0].Pieces[0])
	if p.Kind != trivia.PieceDocLine {
		t.Errorf("kind = %v, want DocLine", p.Kind)
	}
}

// Every comment in the input must be reachable from exactly one run.
func TestEveryPieceAttachedOnce(t *testing.T) {
	input := "// head\nlet a = 1 // tail\n\n(* between *)\nlet b =\n" +
		"  // inner\n  2\n// foot\n"
	fx := buildIndex(t, input)

	want := map[string]int{
		"// head":       0,
		"// tail":       0,
		"(* between *)": 0,
		"// inner":      0,
		"// foot":       0,
	}
	for id := trivia.PieceID(1); int(id) <= fx.idx.PieceCount(); id++ {
		p := fx.idx.Piece(id)
		if !p.IsComment() {
			continue
		}
		if _, ok := want[p.Text]; !ok {
			t.Errorf("unexpected piece %q", p.Text)
			continue
		}
		want[p.Text]++
	}
	for text, n := range want {
		if n != 1 {
			t.Errorf("piece %q recorded %d times, want 1", text, n)
		}
	}
}
