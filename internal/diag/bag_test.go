package diag

import (
	"testing"

	"dyva/internal/source"
)

func TestBag_ContainsError(t *testing.T) {
	b := NewBag()
	if b.ContainsError() {
		t.Fatal("empty bag must not contain an error")
	}

	b.Add(New(Warning, LexError, source.Span{}, "a warning"))
	if b.ContainsError() {
		t.Fatal("a warning-only bag must not contain an error")
	}

	b.Add(NewError(ParseUnexpectedToken, source.Span{}, "an error"))
	if !b.ContainsError() {
		t.Fatal("expected ContainsError true after adding an Error diagnostic")
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestBag_Merge(t *testing.T) {
	a := NewBag()
	a.Add(NewError(LexError, source.Span{}, "a"))

	b := NewBag()
	b.Add(New(Warning, ParseExpected, source.Span{}, "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	if !a.ContainsError() {
		t.Fatal("expected the merged bag to still contain an error")
	}
	if a.Items()[1].Message != "b" {
		t.Fatalf("Items()[1].Message = %q, want %q", a.Items()[1].Message, "b")
	}
}

func TestBag_SortedOrdersByFileThenPositionThenReverseSeverity(t *testing.T) {
	fs := source.NewFileSet()
	f1 := fs.Add("a.dyva", []byte("xxxxxxxxxx"), 0)
	f2 := fs.Add("b.dyva", []byte("xxxxxxxxxx"), 0)

	b := NewBag()
	b.Add(New(Warning, LexError, source.Span{File: f2, Start: 0, End: 1}, "in b"))
	b.Add(New(Warning, LexError, source.Span{File: f1, Start: 5, End: 6}, "later in a"))
	b.Add(NewError(LexError, source.Span{File: f1, Start: 0, End: 1}, "error early in a"))
	b.Add(New(Warning, LexError, source.Span{File: f1, Start: 0, End: 1}, "warning early in a"))

	sorted := b.Sorted(fs)
	if len(sorted) != 4 {
		t.Fatalf("Sorted() returned %d diagnostics, want 4", len(sorted))
	}
	// a.dyva sorts before b.dyva; within a.dyva, position 0 sorts before
	// position 5; within the same position, Error (higher severity) sorts
	// before Warning.
	want := []string{"error early in a", "warning early in a", "later in a", "in b"}
	for i, msg := range want {
		if sorted[i].Message != msg {
			t.Errorf("Sorted()[%d].Message = %q, want %q", i, sorted[i].Message, msg)
		}
	}
}

func TestDiagnostic_WithNoteKeepsParentSeverity(t *testing.T) {
	d := NewError(LowerUndefinedSymbol, source.Span{}, "undefined symbol 'x'")
	d = d.WithNote(source.Span{}, "declared here")

	if len(d.Notes) != 1 {
		t.Fatalf("len(Notes) = %d, want 1", len(d.Notes))
	}
	if d.Severity != Error {
		t.Fatal("WithNote must not change the parent diagnostic's own severity")
	}
}

func TestCode_IDRangesByPipelineStage(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexError, "LEX1001"},
		{ParseExpected, "PRS2001"},
		{LowerUndefinedSymbol, "LWR3001"},
		{AnalysisMissingYield, "IRA4002"},
		{ProgramImportCycle, "PRG5002"},
		{Unknown, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityNote, "note"},
		{Warning, "warning"},
		{Error, "error"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}
