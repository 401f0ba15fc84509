package program

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadSource(t *testing.T, name, src string) *Program {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	prog, err := Load(context.Background(), Unit{EntryPath: path, AsMain: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return prog
}

func containsMessage(prog *Program, substr string) bool {
	for _, d := range prog.Sorted() {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	for _, d := range prog.Sorted() {
		for _, n := range d.Notes {
			if strings.Contains(n.Message, substr) {
				return true
			}
		}
	}
	return false
}

// Scenario 1 (spec.md §8): hello.dyva succeeds with no diagnostics.
func TestLoadHelloWorld(t *testing.T) {
	prog := loadSource(t, "hello.dyva", `print("Hello")`+"\n")
	if prog.ContainsError() {
		t.Fatalf("unexpected error diagnostics: %v", prog.Sorted())
	}
}

// Scenario 2: a function declaration without a body fails lowering.
func TestLoadMissingImplementation(t *testing.T) {
	prog := loadSource(t, "missing_impl.dyva", "fun f(x)\n")
	if !prog.ContainsError() {
		t.Fatalf("expected an error, got none: %v", prog.Sorted())
	}
	if !containsMessage(prog, "requires an implementation") {
		t.Fatalf("expected a missing-implementation diagnostic, got: %v", prog.Sorted())
	}
}

// Scenario 3: `yield` outside a subscript is a lowering error.
func TestLoadYieldOutsideSubscript(t *testing.T) {
	prog := loadSource(t, "yield_outside_subscript.dyva", "fun g(x) = yield x\n")
	if !prog.ContainsError() {
		t.Fatalf("expected an error, got none: %v", prog.Sorted())
	}
	if !containsMessage(prog, "'yield' can only occur in a subscript") {
		t.Fatalf("expected the yield-outside-subscript diagnostic, got: %v", prog.Sorted())
	}
}

// Scenario 4: a dedent mismatch is a parse error with a note describing
// the indentation.
func TestLoadIndentMismatch(t *testing.T) {
	src := "fun f() =\n  a\n b\n"
	prog := loadSource(t, "indent_mismatch.dyva", src)
	if !prog.ContainsError() {
		t.Fatalf("expected an error, got none: %v", prog.Sorted())
	}
	if !containsMessage(prog, "dedendation does not match the current indentation") {
		t.Fatalf("expected a dedent-mismatch diagnostic, got: %v", prog.Sorted())
	}
	if !containsMessage(prog, "columns of indentation") {
		t.Fatalf("expected a note describing the indentation prefix, got: %v", prog.Sorted())
	}
}

// Scenario 5: a subscript with two yields fails yield coherence, with a
// note pointing at the first yield.
func TestLoadSubscriptTwoYields(t *testing.T) {
	src := "subscript s(self) =\n  yield self.x\n  yield self.y\n"
	prog := loadSource(t, "subscript_two_yields.dyva", src)
	if !prog.ContainsError() {
		t.Fatalf("expected an error, got none: %v", prog.Sorted())
	}
	if !containsMessage(prog, "subscript cannot project more than once") {
		t.Fatalf("expected the extraneous-yield diagnostic, got: %v", prog.Sorted())
	}
	if !containsMessage(prog, "first yield here") {
		t.Fatalf("expected a note pointing at the first yield, got: %v", prog.Sorted())
	}
}

// Scenario 6: an undefined name is a lowering error.
func TestLoadUndefinedUse(t *testing.T) {
	prog := loadSource(t, "undefined_use.dyva", "print(x)\n")
	if !prog.ContainsError() {
		t.Fatalf("expected an error, got none: %v", prog.Sorted())
	}
	if !containsMessage(prog, "undefined symbol 'x'") {
		t.Fatalf("expected the undefined-symbol diagnostic, got: %v", prog.Sorted())
	}
}

// A successful load times every pipeline stage for its entry module.
func TestLoadRecordsPerModuleTimings(t *testing.T) {
	prog := loadSource(t, "hello.dyva", `print("Hello")`+"\n")
	entry := prog.Entry
	if entry == nil {
		t.Fatal("Entry is nil")
	}
	wantPhases := []string{"lex", "parse", "scope", "lower", "analysis"}
	if len(entry.Timings.Phases) != len(wantPhases) {
		t.Fatalf("Timings.Phases = %v, want %d phases", entry.Timings.Phases, len(wantPhases))
	}
	for i, name := range wantPhases {
		if entry.Timings.Phases[i].Name != name {
			t.Errorf("Phases[%d].Name = %q, want %q", i, entry.Timings.Phases[i].Name, name)
		}
	}
}

// A parse failure stops the pipeline before scope/lower/analysis, so only
// the phases that actually ran are timed.
func TestLoadRecordsTimingsOnlyForPhasesThatRan(t *testing.T) {
	prog := loadSource(t, "indent_mismatch.dyva", "fun f() =\n  a\n b\n")
	entry := prog.Entry
	if entry == nil {
		t.Fatal("Entry is nil")
	}
	if len(entry.Timings.Phases) != 2 {
		t.Fatalf("Timings.Phases = %v, want exactly lex and parse", entry.Timings.Phases)
	}
}

func TestLoadWithoutImportsOrdersOnlyTheEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.dyva")
	if err := os.WriteFile(path, []byte(`print("Hello")`+"\n"), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	first, err := Load(context.Background(), Unit{EntryPath: path, AsMain: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first.ContainsError() {
		t.Fatalf("unexpected error: %v", first.Sorted())
	}
	if len(first.Order) != 1 {
		t.Fatalf("Order = %v, want exactly the entry module", first.Order)
	}
}
