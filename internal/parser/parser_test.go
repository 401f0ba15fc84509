package parser

import (
	"strings"
	"testing"

	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/lexer"
	"dyva/internal/source"
)

func parseMain(t *testing.T, src string) (*ast.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dyva", []byte(src))
	f := fs.Get(id)
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(f, lexer.Options{Reporter: reporter})
	m := ast.NewModule(0, f, true, source.NewInterner())
	ParseFile(lx, m, Options{Reporter: reporter, MaxErrors: 200})
	return m, bag
}

func parseLibrary(t *testing.T, src string) (*ast.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dyva", []byte(src))
	f := fs.Get(id)
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(f, lexer.Options{Reporter: reporter})
	m := ast.NewModule(0, f, false, source.NewInterner())
	ParseFile(lx, m, Options{Reporter: reporter, MaxErrors: 200})
	return m, bag
}

func TestParseExpressionStatement(t *testing.T) {
	m, bag := parseMain(t, "print(\"hi\")\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors: %v", bag.Sorted(nil))
	}
	if len(m.Stmts) != 1 {
		t.Fatalf("Stmts = %d, want 1", len(m.Stmts))
	}
	es, ok := m.Arena.AsExpressionStatement(m.Stmts[0].NodeID())
	if !ok {
		t.Fatalf("top-level statement is not an ExpressionStatement")
	}
	if _, ok := m.Arena.AsCall(es.Expression.NodeID()); !ok {
		t.Fatalf("expected a call expression")
	}
}

func TestParseFunctionWithExpressionBody(t *testing.T) {
	m, bag := parseLibrary(t, "fun double(x) = x\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors: %v", bag.Sorted(nil))
	}
	if len(m.Decls) != 1 {
		t.Fatalf("Decls = %d, want 1", len(m.Decls))
	}
	fn, ok := m.Arena.AsFunction(m.Decls[0].NodeID())
	if !ok {
		t.Fatalf("expected a function declaration")
	}
	if fn.Body == 0 {
		t.Fatalf("expected a body")
	}
	if !m.Arena.Tag(fn.Body).IsExpression() {
		t.Fatalf("a bare same-line body must parse to a bare expression node, got tag %v", m.Arena.Tag(fn.Body))
	}
}

func TestParseFunctionWithYieldBody(t *testing.T) {
	m, bag := parseLibrary(t, "fun g(x) = yield x\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors: %v", bag.Sorted(nil))
	}
	fn, ok := m.Arena.AsFunction(m.Decls[0].NodeID())
	if !ok {
		t.Fatalf("expected a function declaration")
	}
	if m.Arena.Tag(fn.Body) != ast.TagYieldStatement {
		t.Fatalf("a same-line yield body must parse to a Yield statement, got tag %v", m.Arena.Tag(fn.Body))
	}
}

func TestParseFunctionWithIndentedBlockBody(t *testing.T) {
	m, bag := parseLibrary(t, "fun f(x) =\n  let a = x\n  a\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors: %v", bag.Sorted(nil))
	}
	fn, ok := m.Arena.AsFunction(m.Decls[0].NodeID())
	if !ok {
		t.Fatalf("expected a function declaration")
	}
	if m.Arena.Tag(fn.Body) != ast.TagBlockStatement {
		t.Fatalf("an indented body must parse to a Block, got tag %v", m.Arena.Tag(fn.Body))
	}
	blk, _ := m.Arena.AsBlock(fn.Body)
	if len(blk.Statements) != 2 {
		t.Fatalf("block statement count = %d, want 2", len(blk.Statements))
	}
}

func TestParseFunctionWithoutBodyIsMissingImplementation(t *testing.T) {
	m, bag := parseLibrary(t, "fun f(x)\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected parse errors for a body-less declaration: %v", bag.Sorted(nil))
	}
	fn, ok := m.Arena.AsFunction(m.Decls[0].NodeID())
	if !ok {
		t.Fatalf("expected a function declaration")
	}
	if fn.Body != 0 {
		t.Fatalf("expected an empty body, got %v", fn.Body)
	}
}

func TestParseWhileWithSameLineBody(t *testing.T) {
	m, bag := parseMain(t, "while true do x\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors: %v", bag.Sorted(nil))
	}
	w, ok := m.Arena.AsWhile(m.Stmts[0].NodeID())
	if !ok {
		t.Fatalf("expected a While statement")
	}
	blk, ok := m.Arena.AsBlock(w.Body)
	if !ok {
		t.Fatalf("While body must always be a Block, got tag %v", m.Arena.Tag(w.Body))
	}
	if len(blk.Statements) != 1 {
		t.Fatalf("block statement count = %d, want 1", len(blk.Statements))
	}
}

func TestParseDedentMismatchReported(t *testing.T) {
	_, bag := parseLibrary(t, "fun f() =\n  a\n b\n")
	if !bag.ContainsError() {
		t.Fatal("expected a dedent-mismatch error")
	}
	var found *diag.Diagnostic
	for _, d := range bag.Sorted(nil) {
		if d.Code == diag.ParseDedentMismatch {
			d := d
			found = &d
		}
	}
	if found == nil {
		t.Fatalf("expected ParseDedentMismatch among diagnostics, got: %v", bag.Sorted(nil))
	}
	if !strings.Contains(found.Message, "dedendation") {
		t.Errorf("Message = %q, want the spec's dedendation spelling", found.Message)
	}
	if len(found.Notes) == 0 || !strings.Contains(found.Notes[0].Message, "indentation") {
		t.Errorf("Notes = %v, want a note describing the indentation prefix", found.Notes)
	}
}

func TestParseStructWithMembers(t *testing.T) {
	m, bag := parseLibrary(t, "struct Point:\n  x\n  y\n  fun sum(self) = self.x\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors: %v", bag.Sorted(nil))
	}
	s, ok := m.Arena.AsStruct(m.Decls[0].NodeID())
	if !ok {
		t.Fatalf("expected a struct declaration")
	}
	if len(s.Members) != 3 {
		t.Fatalf("Members = %d, want 3", len(s.Members))
	}
}
