package lower

import (
	"strings"
	"testing"

	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/ir"
	"dyva/internal/lexer"
	"dyva/internal/parser"
	"dyva/internal/source"
)

func lowerSource(t *testing.T, asMain bool, src string) (*ir.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dyva", []byte(src))
	f := fs.Get(id)
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(f, lexer.Options{Reporter: reporter})
	m := ast.NewModule(0, f, asMain, source.NewInterner())
	parser.ParseFile(lx, m, parser.Options{Reporter: reporter, MaxErrors: 200})
	if bag.ContainsError() {
		t.Fatalf("unexpected parse errors: %v", bag.Sorted(nil))
	}
	mod := New(m, reporter).Run()
	return mod, bag
}

func printed(t *testing.T, mod *ir.Module) string {
	t.Helper()
	var sb strings.Builder
	if err := ir.Print(&sb, mod); err != nil {
		t.Fatalf("ir.Print: %v", err)
	}
	return sb.String()
}

func TestLowerMainEndsInImplicitReturnUnit(t *testing.T) {
	mod, bag := lowerSource(t, true, "print(\"hi\")\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected lowering errors: %v", bag.Sorted(nil))
	}
	out := printed(t, mod)
	if !strings.Contains(out, "fun $main() =") {
		t.Fatalf("expected a $main function header, got:\n%s", out)
	}
	if !strings.Contains(out, "invoke builtin:print") {
		t.Fatalf("expected a print invoke, got:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), "return unit") {
		t.Fatalf("expected a trailing implicit return unit, got:\n%s", out)
	}
}

func TestLowerFunctionBareExpressionBodyReturnsItsValue(t *testing.T) {
	mod, bag := lowerSource(t, false, "fun double(x) = x\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected lowering errors: %v", bag.Sorted(nil))
	}
	out := printed(t, mod)
	if !strings.Contains(out, "return b0.0") {
		t.Fatalf("expected the parameter value to flow straight to return, got:\n%s", out)
	}
}

func TestLowerFunctionMissingImplementationReportsDiagnostic(t *testing.T) {
	_, bag := lowerSource(t, false, "fun f(x)\n")
	if !bag.ContainsError() {
		t.Fatal("expected an error")
	}
	found := false
	for _, d := range bag.Sorted(nil) {
		if d.Code == diag.LowerMissingImplementation {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LowerMissingImplementation, got: %v", bag.Sorted(nil))
	}
}

func TestLowerYieldOutsideSubscriptReportsDiagnostic(t *testing.T) {
	_, bag := lowerSource(t, false, "fun g(x) = yield x\n")
	if !bag.ContainsError() {
		t.Fatal("expected an error")
	}
	found := false
	for _, d := range bag.Sorted(nil) {
		if d.Code == diag.LowerInvalidYield {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LowerInvalidYield, got: %v", bag.Sorted(nil))
	}
}

func TestLowerYieldInsideSubscriptEmitsYieldInstruction(t *testing.T) {
	mod, bag := lowerSource(t, false, "subscript s(self) =\n  yield self.x\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected lowering errors: %v", bag.Sorted(nil))
	}
	out := printed(t, mod)
	if !strings.Contains(out, "yield ") {
		t.Fatalf("expected a yield instruction, got:\n%s", out)
	}
}

func TestLowerUndefinedSymbolReportsDiagnostic(t *testing.T) {
	_, bag := lowerSource(t, true, "print(x)\n")
	if !bag.ContainsError() {
		t.Fatal("expected an error")
	}
	found := false
	for _, d := range bag.Sorted(nil) {
		if d.Code == diag.LowerUndefinedSymbol {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LowerUndefinedSymbol, got: %v", bag.Sorted(nil))
	}
}

func TestLowerLetBindingAccessesTheInitializer(t *testing.T) {
	mod, bag := lowerSource(t, false, "fun f(x) =\n  let a = x\n  a\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected lowering errors: %v", bag.Sorted(nil))
	}
	out := printed(t, mod)
	if !strings.Contains(out, "access<let>") {
		t.Fatalf("expected a let binding to lower through an access instruction, got:\n%s", out)
	}
}

func TestLowerVarBindingAllocatesAndStores(t *testing.T) {
	mod, bag := lowerSource(t, false, "fun f(x) =\n  var a = x\n  a\n")
	if bag.ContainsError() {
		t.Fatalf("unexpected lowering errors: %v", bag.Sorted(nil))
	}
	out := printed(t, mod)
	if !strings.Contains(out, "alloc") || !strings.Contains(out, "store") {
		t.Fatalf("expected a var binding to allocate and store, got:\n%s", out)
	}
}
