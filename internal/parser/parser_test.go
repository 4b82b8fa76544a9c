package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"lumefmt/internal/ast"
	"lumefmt/internal/diag"
	"lumefmt/internal/lexer"
	"lumefmt/internal/parser"
	"lumefmt/internal/source"
	"lumefmt/internal/token"
)

func parseSource(t *testing.T, input string) (*ast.Builder, *ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lm", []byte(input)))

	bag := diag.NewBag(32)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(file, lx, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 16})

	f := b.File(res.File)
	if f == nil {
		t.Fatalf("parse returned no file\ninput: %q\ndiags: %s", input, diagnosticsSummary(bag))
	}
	return b, f, bag
}

func parseOK(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	b, f, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors\ninput: %q\ndiags: %s", input, diagnosticsSummary(bag))
	}
	return b, f
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code, d.Message)
	}
	return strings.Join(lines, "; ")
}

func onlyLet(t *testing.T, b *ast.Builder, f *ast.File) *ast.LetDecl {
	t.Helper()
	if len(f.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(f.Decls))
	}
	let, ok := b.Decls.Let(f.Decls[0])
	if !ok {
		t.Fatalf("expected a let decl, got kind %d", b.Decls.Get(f.Decls[0]).Kind)
	}
	return let
}

func exprKind(b *ast.Builder, id ast.ExprID) ast.ExprKind {
	return b.Exprs.Get(id).Kind
}

func TestLetDecl(t *testing.T) {
	b, f := parseOK(t, "let answer = 42\n")
	let := onlyLet(t, b, f)
	if b.String(let.Name) != "answer" {
		t.Errorf("name = %q", b.String(let.Name))
	}
	if let.Rec {
		t.Error("binding should not be rec")
	}
	if exprKind(b, let.Body) != ast.ExprLit {
		t.Errorf("body kind = %v", exprKind(b, let.Body))
	}
}

func TestLetRec(t *testing.T) {
	b, f := parseOK(t, "let rec loop(n) = loop(n)\n")
	let := onlyLet(t, b, f)
	if !let.Rec {
		t.Error("expected rec binding")
	}
	if len(let.Params) != 1 || b.String(let.Params[0].Name) != "n" {
		t.Errorf("params = %v", let.Params)
	}
}

func TestLetAnnotatedParams(t *testing.T) {
	b, f := parseOK(t, "let add((x: int), (y: int)): int = x + y\n")
	let := onlyLet(t, b, f)
	if len(let.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(let.Params))
	}
	for _, p := range let.Params {
		if p.Ann == ast.NoTypeID {
			t.Errorf("param %q lost its annotation", b.String(p.Name))
		}
	}
	if let.Ann == ast.NoTypeID {
		t.Error("return annotation lost")
	}
}

func TestCallRequiresAdjacentParen(t *testing.T) {
	b, f := parseOK(t, "let a = f(x)\n")
	let := onlyLet(t, b, f)
	if exprKind(b, let.Body) != ast.ExprCall {
		t.Fatalf("f(x) should parse as a call, got %v", exprKind(b, let.Body))
	}

	// With a space the parenthesis no longer belongs to the name.
	_, _, bag := parseSource(t, "let a = f (x)\n")
	if !bag.HasErrors() {
		t.Error("'f (x)' should not parse as a call")
	}
}

func TestFieldAccessRequiresAdjacentDot(t *testing.T) {
	b, f := parseOK(t, "let a = point.x\n")
	let := onlyLet(t, b, f)
	if exprKind(b, let.Body) != ast.ExprField {
		t.Fatalf("point.x should parse as field access, got %v", exprKind(b, let.Body))
	}
}

func TestQualifiedNameCapitalizedHead(t *testing.T) {
	b, f := parseOK(t, "let a = List.map(f, xs)\n")
	let := onlyLet(t, b, f)
	call, ok := b.Exprs.Call(let.Body)
	if !ok {
		t.Fatalf("expected a call, got %v", exprKind(b, let.Body))
	}
	ident, ok := b.Exprs.Ident(call.Callee)
	if !ok {
		t.Fatalf("callee should be an identifier path")
	}
	if len(ident.Segments) != 2 || b.String(ident.Segments[0]) != "List" || b.String(ident.Segments[1]) != "map" {
		t.Errorf("segments mismatch")
	}
}

func TestPrecedenceMulBeforeAdd(t *testing.T) {
	b, f := parseOK(t, "let a = 1 + 2 * 3\n")
	let := onlyLet(t, b, f)
	bin, ok := b.Exprs.Binary(let.Body)
	if !ok || bin.Op != token.Plus {
		t.Fatalf("root should be +")
	}
	right, ok := b.Exprs.Binary(bin.Right)
	if !ok || right.Op != token.Star {
		t.Fatal("right operand should be the * application")
	}
}

func TestConsIsRightAssociative(t *testing.T) {
	b, f := parseOK(t, "let a = 1 :: 2 :: rest\n")
	let := onlyLet(t, b, f)
	bin, ok := b.Exprs.Binary(let.Body)
	if !ok || bin.Op != token.ColonColon {
		t.Fatal("root should be ::")
	}
	if k := exprKind(b, bin.Left); k != ast.ExprLit {
		t.Errorf("left of root :: = %v, want the literal 1", k)
	}
	nested, ok := b.Exprs.Binary(bin.Right)
	if !ok || nested.Op != token.ColonColon {
		t.Error("right of root :: should be the nested cons")
	}
}

func TestComparisonBindsLooserThanArithmetic(t *testing.T) {
	b, f := parseOK(t, "let a = x + 1 < y * 2\n")
	let := onlyLet(t, b, f)
	bin, ok := b.Exprs.Binary(let.Body)
	if !ok || bin.Op != token.Lt {
		t.Fatal("root should be <")
	}
}

func TestUnaryMinusAndNot(t *testing.T) {
	b, f := parseOK(t, "let a = not b\n")
	let := onlyLet(t, b, f)
	un, ok := b.Exprs.Unary(let.Body)
	if !ok || un.Op != token.KwNot {
		t.Fatal("expected unary not")
	}

	b, f = parseOK(t, "let a = -x\n")
	let = onlyLet(t, b, f)
	un, ok = b.Exprs.Unary(let.Body)
	if !ok || un.Op != token.Minus {
		t.Fatal("expected unary minus")
	}
}

func TestIfElifElse(t *testing.T) {
	b, f := parseOK(t, "let a = if p then 1 elif q then 2 else 3\n")
	let := onlyLet(t, b, f)
	ife, ok := b.Exprs.If(let.Body)
	if !ok {
		t.Fatalf("expected an if, got %v", exprKind(b, let.Body))
	}
	if len(ife.Branches) != 2 {
		t.Errorf("branches = %d, want 2", len(ife.Branches))
	}
	if ife.ElseBody == ast.NoExprID {
		t.Error("else body missing")
	}
}

func TestIfWithoutElse(t *testing.T) {
	b, f := parseOK(t, "let a = if p then 1\n")
	let := onlyLet(t, b, f)
	ife, _ := b.Exprs.If(let.Body)
	if ife.ElseBody != ast.NoExprID {
		t.Error("expected no else body")
	}
	if !ife.ElseSpan.Empty() {
		t.Error("else span should be empty without an else")
	}
}

func TestMatchClauses(t *testing.T) {
	src := "let a =\n" +
		"  match xs with\n" +
		"  | [] -> 0\n" +
		"  | x :: rest -> x\n"
	b, f := parseOK(t, src)
	let := onlyLet(t, b, f)
	m, ok := b.Exprs.Match(let.Body)
	if !ok {
		t.Fatalf("expected a match, got %v", exprKind(b, let.Body))
	}
	if len(m.Clauses) != 2 {
		t.Fatalf("clauses = %d, want 2", len(m.Clauses))
	}
	if k := b.Patterns.Get(m.Clauses[0].Pat).Kind; k != ast.PatList {
		t.Errorf("first pattern kind = %v, want list", k)
	}
	if k := b.Patterns.Get(m.Clauses[1].Pat).Kind; k != ast.PatCons {
		t.Errorf("second pattern kind = %v, want cons", k)
	}
}

func TestMatchWithoutClausesIsError(t *testing.T) {
	_, _, bag := parseSource(t, "let a = match x with\nlet b = 1\n")
	if !bag.HasErrors() {
		t.Error("a match without clauses should report an error")
	}
}

func TestLambda(t *testing.T) {
	b, f := parseOK(t, "let f = fun x y -> x + y\n")
	let := onlyLet(t, b, f)
	lam, ok := b.Exprs.Lambda(let.Body)
	if !ok {
		t.Fatalf("expected a lambda, got %v", exprKind(b, let.Body))
	}
	if len(lam.Params) != 2 {
		t.Errorf("params = %d, want 2", len(lam.Params))
	}
}

func TestListAndArrayLiterals(t *testing.T) {
	b, f := parseOK(t, "let a = [1; 2; 3]\n")
	let := onlyLet(t, b, f)
	if exprKind(b, let.Body) != ast.ExprList {
		t.Errorf("kind = %v, want list", exprKind(b, let.Body))
	}
	seq, _ := b.Exprs.Seq(let.Body)
	if len(seq.Elems) != 3 {
		t.Errorf("elems = %d", len(seq.Elems))
	}

	b, f = parseOK(t, "let a = [| 1; 2 |]\n")
	let = onlyLet(t, b, f)
	if exprKind(b, let.Body) != ast.ExprArray {
		t.Errorf("kind = %v, want array", exprKind(b, let.Body))
	}
}

func TestRecordLiteral(t *testing.T) {
	b, f := parseOK(t, "let p = { x = 1; y = 2 }\n")
	let := onlyLet(t, b, f)
	rec, ok := b.Exprs.Record(let.Body)
	if !ok {
		t.Fatalf("expected a record, got %v", exprKind(b, let.Body))
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("fields = %d", len(rec.Fields))
	}
	if b.String(rec.Fields[0].Name) != "x" {
		t.Errorf("first field = %q", b.String(rec.Fields[0].Name))
	}
}

func TestTupleAndParen(t *testing.T) {
	b, f := parseOK(t, "let a = (1, 2)\n")
	let := onlyLet(t, b, f)
	if exprKind(b, let.Body) != ast.ExprTuple {
		t.Errorf("kind = %v, want tuple", exprKind(b, let.Body))
	}

	b, f = parseOK(t, "let a = (1 + 2)\n")
	let = onlyLet(t, b, f)
	if exprKind(b, let.Body) != ast.ExprParen {
		t.Errorf("kind = %v, want paren", exprKind(b, let.Body))
	}
}

func TestUnitLiteral(t *testing.T) {
	b, f := parseOK(t, "let a = ()\n")
	let := onlyLet(t, b, f)
	lit, ok := b.Exprs.Lit(let.Body)
	if !ok {
		t.Fatalf("expected () to parse as a literal, got %v", exprKind(b, let.Body))
	}
	if b.String(lit.Text) != "()" {
		t.Errorf("unit text = %q", b.String(lit.Text))
	}
}

func TestOffsideBlockBody(t *testing.T) {
	src := "let a =\n" +
		"  let x = 1\n" +
		"  x + 1\n" +
		"let b = 2\n"
	b, f := parseOK(t, src)
	if len(f.Decls) != 2 {
		t.Fatalf("decls = %d, want 2", len(f.Decls))
	}
	let, _ := b.Decls.Let(f.Decls[0])
	blk, ok := b.Exprs.Block(let.Body)
	if !ok {
		t.Fatalf("body should be a block, got %v", exprKind(b, let.Body))
	}
	if len(blk.Items) != 2 {
		t.Fatalf("block items = %d, want 2", len(blk.Items))
	}
	if exprKind(b, blk.Items[0]) != ast.ExprLetBind {
		t.Errorf("first item = %v, want let binding", exprKind(b, blk.Items[0]))
	}
}

func TestOffsideContinuationLine(t *testing.T) {
	// A deeper-indented fresh line continues the expression.
	src := "let a = 1 +\n" +
		"    2\n"
	b, f := parseOK(t, src)
	let := onlyLet(t, b, f)
	bin, ok := b.Exprs.Binary(let.Body)
	if !ok || bin.Op != token.Plus {
		t.Fatal("continuation line should stay in the binary expression")
	}
}

func TestOffsideDedentClosesDecl(t *testing.T) {
	src := "let a =\n" +
		"  1\n" +
		"let b =\n" +
		"  2\n"
	_, f := parseOK(t, src)
	if len(f.Decls) != 2 {
		t.Fatalf("decls = %d, want 2", len(f.Decls))
	}
}

func TestBracketsSuspendOffside(t *testing.T) {
	// Inside brackets a dedented line does not close anything.
	src := "let a = f(\n" +
		"1,\n" +
		"2)\n"
	b, f := parseOK(t, src)
	let := onlyLet(t, b, f)
	call, ok := b.Exprs.Call(let.Body)
	if !ok {
		t.Fatalf("expected a call, got %v", exprKind(b, let.Body))
	}
	if len(call.Args) != 2 {
		t.Errorf("args = %d, want 2", len(call.Args))
	}
}

func TestTypeAlias(t *testing.T) {
	b, f := parseOK(t, "type Pair = int * string\n")
	td, ok := b.Decls.Type(f.Decls[0])
	if !ok {
		t.Fatal("expected a type decl")
	}
	if td.Shape != ast.TypeShapeAlias {
		t.Errorf("shape = %v, want alias", td.Shape)
	}
	if b.Types.Get(td.Alias).Kind != ast.TypeTuple {
		t.Error("alias should be a tuple type")
	}
}

func TestTypeRecord(t *testing.T) {
	b, f := parseOK(t, "type Point = { x: int; y: int }\n")
	td, _ := b.Decls.Type(f.Decls[0])
	if td.Shape != ast.TypeShapeRecord {
		t.Fatalf("shape = %v, want record", td.Shape)
	}
	if len(td.Fields) != 2 {
		t.Errorf("fields = %d", len(td.Fields))
	}
}

func TestTypeUnion(t *testing.T) {
	b, f := parseOK(t, "type Shape = | Circle of float | Rect of float * float | Empty\n")
	td, _ := b.Decls.Type(f.Decls[0])
	if td.Shape != ast.TypeShapeUnion {
		t.Fatalf("shape = %v, want union", td.Shape)
	}
	if len(td.Ctors) != 3 {
		t.Fatalf("ctors = %d", len(td.Ctors))
	}
	if len(td.Ctors[1].Args) != 2 {
		t.Errorf("Rect args = %d, want 2", len(td.Ctors[1].Args))
	}
	if len(td.Ctors[2].Args) != 0 {
		t.Errorf("Empty args = %d, want 0", len(td.Ctors[2].Args))
	}
}

func TestFunctionTypeRightAssociative(t *testing.T) {
	b, f := parseOK(t, "let f: int -> int -> int = g\n")
	let := onlyLet(t, b, f)
	fun, ok := b.Types.Fun(let.Ann)
	if !ok {
		t.Fatal("annotation should be a function type")
	}
	if b.Types.Get(fun.Param).Kind != ast.TypeName {
		t.Error("param should be a name type")
	}
	if b.Types.Get(fun.Result).Kind != ast.TypeFun {
		t.Error("arrow should associate to the right")
	}
}

func TestGenericTypeArguments(t *testing.T) {
	b, f := parseOK(t, "let xs: List<Option<int>> = ys\n")
	let := onlyLet(t, b, f)
	name, ok := b.Types.Name(let.Ann)
	if !ok {
		t.Fatal("annotation should be a name type")
	}
	if len(name.Args) != 1 {
		t.Fatalf("args = %d", len(name.Args))
	}
	inner, ok := b.Types.Name(name.Args[0])
	if !ok || b.String(inner.Segments[0]) != "Option" {
		t.Error("inner type should be Option<int>")
	}
}

func TestOpenDecl(t *testing.T) {
	b, f := parseOK(t, "open Core.List\n")
	od, ok := b.Decls.Open(f.Decls[0])
	if !ok {
		t.Fatal("expected an open decl")
	}
	if len(od.Segments) != 2 || b.String(od.Segments[1]) != "List" {
		t.Error("segments mismatch")
	}
}

func TestUnexpectedTopLevelToken(t *testing.T) {
	_, _, bag := parseSource(t, "42\n")
	if !bag.HasErrors() {
		t.Error("a bare literal at top level should be an error")
	}
}

func TestNestedMatchBindsClausesToInner(t *testing.T) {
	src := "let a =\n" +
		"  match x with\n" +
		"  | p ->\n" +
		"    match y with\n" +
		"    | q -> 1\n" +
		"    | r -> 2\n"
	b, f := parseOK(t, src)
	let := onlyLet(t, b, f)
	outer, ok := b.Exprs.Match(let.Body)
	if !ok {
		t.Fatal("expected an outer match")
	}
	if len(outer.Clauses) != 1 {
		t.Fatalf("outer clauses = %d, want 1 (inner match eats the clause pipes)", len(outer.Clauses))
	}
	inner, ok := b.Exprs.Match(outer.Clauses[0].Body)
	if !ok {
		t.Fatal("clause body should be the inner match")
	}
	if len(inner.Clauses) != 2 {
		t.Errorf("inner clauses = %d, want 2", len(inner.Clauses))
	}
}
