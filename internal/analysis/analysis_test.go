package analysis

import (
	"testing"

	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/ir"
	"dyva/internal/lexer"
	"dyva/internal/lower"
	"dyva/internal/parser"
	"dyva/internal/scope"
	"dyva/internal/source"
)

func compile(t *testing.T, src string) (*ir.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dyva", []byte(src))
	f := fs.Get(id)
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(f, lexer.Options{Reporter: reporter})
	m := ast.NewModule(0, f, false, source.NewInterner())
	parser.ParseFile(lx, m, parser.Options{Reporter: reporter, MaxErrors: 200})
	if bag.ContainsError() {
		t.Fatalf("unexpected parse errors: %v", bag.Sorted(nil))
	}
	scope.Run(m)
	mod := lower.New(m, reporter).Run()
	Run(mod, reporter)
	return mod, bag
}

func TestCheckYieldCoherenceFlagsASecondYield(t *testing.T) {
	_, bag := compile(t, "subscript s(self) =\n  yield self.x\n  yield self.y\n")
	if !bag.ContainsError() {
		t.Fatal("expected an error for a subscript with two yields")
	}
	found := false
	for _, d := range bag.Sorted(nil) {
		if d.Code == diag.AnalysisExtraneousYield {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected AnalysisExtraneousYield, got: %v", bag.Sorted(nil))
	}
}

func TestCheckYieldCoherenceAcceptsExactlyOneYield(t *testing.T) {
	_, bag := compile(t, "subscript s(self) =\n  yield self.x\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors for a well-formed subscript: %v", bag.Sorted(nil))
	}
}

func TestCheckYieldCoherenceFlagsAMissingYield(t *testing.T) {
	_, bag := compile(t, "subscript s(self) =\n  return self.x\n")
	if !bag.ContainsError() {
		t.Fatal("expected an error for a subscript that returns without yielding")
	}
	found := false
	for _, d := range bag.Sorted(nil) {
		if d.Code == diag.AnalysisMissingYield {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected AnalysisMissingYield, got: %v", bag.Sorted(nil))
	}
}

func TestCheckYieldCoherenceIgnoresOrdinaryFunctions(t *testing.T) {
	_, bag := compile(t, "fun f(x) = x\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors for a non-subscript function: %v", bag.Sorted(nil))
	}
}

func TestCloseRegionsBalancesAccessWithEndAccess(t *testing.T) {
	mod, bag := compile(t, "fun f(x) =\n  let a = x\n  print(a)\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected errors: %v", bag.Sorted(nil))
	}
	fn, ok := mod.Lookup("f")
	if !ok {
		t.Fatal("expected function f to be declared")
	}
	var accesses, ends int
	for id := range fn.Instrs {
		switch fn.Instrs[id].(type) {
		case *ir.Access:
			accesses++
		case *ir.EndAccess:
			ends++
		}
	}
	if accesses == 0 {
		t.Fatal("expected at least one access instruction from the let binding")
	}
	if ends != accesses {
		t.Fatalf("end-access count = %d, want %d (one per access, region closing balances them)", ends, accesses)
	}
}
