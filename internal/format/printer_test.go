package format_test

import (
	"strings"
	"testing"

	"lumefmt/internal/format"
	"lumefmt/internal/source"
)

func render(t *testing.T, input string, defines map[string]bool, opt format.Options) string {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.lm", []byte(input)))
	out, bag, err := format.Render(sf, defines, opt, 0)
	if err != nil {
		t.Fatalf("render failed: %v\ninput: %q\ndiags: %v", err, input, bag.Sorted())
	}
	return string(out)
}

func renderDefault(t *testing.T, input string) string {
	t.Helper()
	return render(t, input, nil, format.DefaultOptions())
}

func expectRender(t *testing.T, input, want string) {
	t.Helper()
	got := renderDefault(t, input)
	if got != want {
		t.Errorf("render mismatch\ninput: %q\n got: %q\nwant: %q", input, got, want)
	}
}

func TestSpacingNormalized(t *testing.T) {
	expectRender(t, "let   x   =   1\n", "let x = 1\n")
	expectRender(t, "let add(a,b) = a+b\n", "let add(a, b) = a + b\n")
}

func TestFinalNewlineExactlyOne(t *testing.T) {
	got := renderDefault(t, "let x = 1")
	if got != "let x = 1\n" {
		t.Errorf("got %q", got)
	}
	got = renderDefault(t, "let x = 1\n\n\n")
	if got != "let x = 1\n" {
		t.Errorf("got %q", got)
	}
}

func TestInsertFinalNewlineOff(t *testing.T) {
	opt := format.DefaultOptions()
	opt.InsertFinalNewline = false
	got := render(t, "let x = 1\n", nil, opt)
	if got != "let x = 1" {
		t.Errorf("got %q", got)
	}
}

func TestLiteralFidelity(t *testing.T) {
	expectRender(t, "let a = 0x1A\n", "let a = 0x1A\n")
	expectRender(t, "let b = 1_000_000\n", "let b = 1_000_000\n")
	expectRender(t, `let s = "tab\tend"`+"\n", `let s = "tab\tend"`+"\n")
	expectRender(t, "let f = 2.5e-3\n", "let f = 2.5e-3\n")
	expectRender(t, "let c = '\\n'\n", "let c = '\\n'\n")
}

func TestCommentBeforeBodyOwnLine(t *testing.T) {
	input := "let f() =\n  // COMMENT\n  x + x\n"
	expectRender(t, input, "let f() =\n  // COMMENT\n  x + x\n")
}

func TestTrailingCommentStaysInline(t *testing.T) {
	expectRender(t, "let x = 1 // trailing\n", "let x = 1 // trailing\n")
}

func TestInlineBlockCommentStaysInline(t *testing.T) {
	expectRender(t, "let a = 1 + (* mid *) 1\n", "let a = 1 + (* mid *) 1\n")
}

func TestTrailingCommentInsideCallStaysOnLine(t *testing.T) {
	expectRender(t, "let r = f(a, // trail\n  b)\n", "let r = f(a, b) // trail\n")
	expectRender(t, "let z = (1, // note\n  2)\n", "let z = (1, 2) // note\n")
}

func TestMultilineBlockCommentForcesExpansion(t *testing.T) {
	input := "let a = 1 + (* first\nsecond *) 1\n"
	once := renderDefault(t, input)
	if !strings.Contains(once, "(* first\nsecond *)") {
		t.Errorf("comment body changed:\n%s", once)
	}
	if strings.Count(once, "\n") < 3 {
		t.Errorf("comment with a line break must not stay in the line flow:\n%s", once)
	}
	twice := renderDefault(t, once)
	if once != twice {
		t.Errorf("not idempotent\n once: %q\ntwice: %q", once, twice)
	}
}

func TestCommentRunsSplitByBlankLine(t *testing.T) {
	input := "// one\n// two\n\n// three\nlet x = 1\n"
	expectRender(t, input, "// one\n// two\n\n// three\nlet x = 1\n")
}

func TestDocCommentPreserved(t *testing.T) {
	input := "/// Doubles a number.\nlet double(n) = n * 2\n"
	expectRender(t, input, "/// Doubles a number.\nlet double(n) = n * 2\n")
}

func TestBlankBetweenDeclsCollapsesToOne(t *testing.T) {
	input := "let a = 1\n\n\n\nlet b = 2\n"
	expectRender(t, input, "let a = 1\n\nlet b = 2\n")
}

func TestFileTrailingComment(t *testing.T) {
	input := "let x = 1\n\n// the end\n"
	expectRender(t, input, "let x = 1\n\n// the end\n")
}

func TestNarrowListOnePerLine(t *testing.T) {
	opt := format.DefaultOptions()
	opt.Widths.List = 10
	got := render(t, "let xs = [100; 200; 300]\n", nil, opt)
	want := "let xs =\n  [\n    100;\n    200;\n    300\n  ]\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestListWithinBudgetStaysInline(t *testing.T) {
	expectRender(t, "let xs = [1; 2; 3]\n", "let xs = [1; 2; 3]\n")
}

func TestEmptyCollections(t *testing.T) {
	expectRender(t, "let xs = []\n", "let xs = []\n")
	expectRender(t, "let ys = [||]\n", "let ys = [||]\n")
}

func TestRecordCompactAndExpanded(t *testing.T) {
	expectRender(t, "let p = {x=1;y=2}\n", "let p = { x = 1; y = 2 }\n")

	opt := format.DefaultOptions()
	opt.Widths.Record = 8
	got := render(t, "let p = { x = 1; y = 2 }\n", nil, opt)
	want := "let p =\n  {\n    x = 1;\n    y = 2\n  }\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestCallArgumentsExpand(t *testing.T) {
	opt := format.DefaultOptions()
	opt.Widths.Arguments = 10
	got := render(t, "let r = combine(alpha, beta, gamma)\n", nil, opt)
	want := "let r =\n  combine(\n    alpha,\n    beta,\n    gamma\n  )\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestMatchCompactWithinBudget(t *testing.T) {
	got := renderDefault(t, "let f(x) =\n  match x with\n  | 0 -> 1\n  | n -> n\n")
	want := "let f(x) = match x with | 0 -> 1 | n -> n\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestMatchExpandsOverBudget(t *testing.T) {
	opt := format.DefaultOptions()
	opt.Widths.Match = 10
	got := render(t, "let f(x) = match x with | 0 -> 1 | n -> n * 2\n", nil, opt)
	want := "let f(x) =\n  match x with\n  | 0 -> 1\n  | n -> n * 2\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestIfExpandsOverBudget(t *testing.T) {
	opt := format.DefaultOptions()
	opt.Widths.IfElse = 10
	got := render(t, "let m = if cond then first else second\n", nil, opt)
	want := "let m =\n  if cond then first\n  else second\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestInfixChainBreaksWithLeadingOperator(t *testing.T) {
	opt := format.DefaultOptions()
	opt.Widths.Infix = 12
	got := render(t, "let total = alpha + bravo + charlie\n", nil, opt)
	want := "let total =\n  alpha\n    + bravo\n    + charlie\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestUnionTypeDecl(t *testing.T) {
	expectRender(t,
		"type Shape = | Circle of float | Empty\n",
		"type Shape = | Circle of float | Empty\n")
}

func TestRecordTypeDecl(t *testing.T) {
	expectRender(t,
		"type Point = {x:int;y:int}\n",
		"type Point = { x: int; y: int }\n")
}

func TestOpenDecl(t *testing.T) {
	expectRender(t, "open Core.List\n", "open Core.List\n")
}

func TestDirectiveRoundTrip(t *testing.T) {
	input := "#if FAST\nlet speed = 10\n#else\nlet speed = 1\n#endif\n"

	for name, defines := range map[string]map[string]bool{
		"active":   {"FAST": true},
		"inactive": nil,
	} {
		t.Run(name, func(t *testing.T) {
			got := render(t, input, defines, format.DefaultOptions())
			for _, line := range []string{"#if FAST", "#else", "#endif"} {
				if !strings.Contains(got, line) {
					t.Errorf("output lost directive line %q:\n%s", line, got)
				}
			}
			// Both branches survive: one as code, one inside directive text.
			if !strings.Contains(got, "let speed = 10") || !strings.Contains(got, "let speed = 1") {
				t.Errorf("output lost a conditional branch:\n%s", got)
			}
		})
	}
}

func TestDirectiveStaysAtColumnOne(t *testing.T) {
	input := "let f() =\n#if TRACE\n  log(1)\n#endif\n  1\n"
	got := render(t, input, map[string]bool{"TRACE": true}, format.DefaultOptions())
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "#if") || strings.Contains(line, "#endif") {
			if !strings.HasPrefix(line, "#") {
				t.Errorf("directive line was indented: %q", line)
			}
		}
	}
}

var idempotenceCorpus = []string{
	"let x = 1\n",
	"let add(a, b) = a + b\n",
	"let f() =\n  // COMMENT\n  x + x\n",
	"let a = 1 + (* mid *) 1\n",
	"let r = f(a, // trail\n  b)\n",
	"let z = (1, // t\n  2)\n",
	"// one\n// two\n\n// three\nlet x = 1\n",
	"let xs = [1; 2; 3]\n",
	"let p = { x = 1; y = 2 }\n",
	"type Shape = | Circle of float | Rect of float * float | Empty\n",
	"type Point = { x: int; y: int }\n",
	"open Core.List\n",
	"let f(x) =\n  match x with\n  | [] -> 0\n  | x :: rest -> x\n",
	"let m = if a then 1 elif b then 2 else 3\n",
	"let g = fun x y -> x + y\n",
	"let h =\n  let tmp = load()\n  tmp + 1\n",
	"let q: List<Option<int>> = ys\n",
	"let long = aaaaaaaaaaaaaaaaaaaaaa + bbbbbbbbbbbbbbbbbbbbbbbb + cccccccccccccccccccccccc + dddddddddddddddddddddddd\n",
}

func TestIdempotence(t *testing.T) {
	for _, input := range idempotenceCorpus {
		once := renderDefault(t, input)
		twice := renderDefault(t, once)
		if once != twice {
			t.Errorf("not idempotent\ninput: %q\n once: %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestCommentsNeverLost(t *testing.T) {
	inputs := []string{
		"// head\nlet a = 1 // tail\n\n(* between *)\nlet b = 2\n// foot\n",
		"let f() =\n  // inner\n  1\n",
		"let a = (* l *) 1 + 1\n",
	}
	for _, input := range inputs {
		got := renderDefault(t, input)
		for _, comment := range extractComments(input) {
			if !strings.Contains(got, comment) {
				t.Errorf("comment %q lost\ninput: %q\noutput: %q", comment, input, got)
			}
		}
	}
}

// extractComments pulls line and block comment texts out of a test input.
func extractComments(input string) []string {
	var out []string
	for _, line := range strings.Split(input, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			out = append(out, strings.TrimRight(line[i:], " "))
		}
		if i := strings.Index(line, "(*"); i >= 0 {
			if j := strings.Index(line[i:], "*)"); j >= 0 {
				out = append(out, line[i:i+j+2])
			}
		}
	}
	return out
}

func TestMaxLineWidthForcesBodyBreak(t *testing.T) {
	opt := format.DefaultOptions()
	opt.MaxLineWidth = 24
	got := render(t, "let result = compute(seed)\n", nil, opt)
	want := "let result =\n  compute(seed)\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestParseErrorIsStructured(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("bad.lm", []byte("let = 1\n")))
	_, bag, err := format.Render(sf, nil, format.DefaultOptions(), 0)
	if err == nil {
		t.Fatal("expected an error for unparseable input")
	}
	var ferr *format.Error
	if !asFormatError(err, &ferr) {
		t.Fatalf("error is %T, want *format.Error", err)
	}
	if !bag.HasErrors() {
		t.Error("bag should carry the underlying parse diagnostics")
	}
}

func asFormatError(err error, target **format.Error) bool {
	fe, ok := err.(*format.Error)
	if ok {
		*target = fe
	}
	return ok
}
