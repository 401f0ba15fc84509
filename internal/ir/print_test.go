package ir

import (
	"strings"
	"testing"

	"dyva/internal/source"
)

func buildSimpleFunction() *Function {
	fn := NewFunction("$main", nil, false)
	b0 := fn.NewBlock(0)
	allocID := fn.Insert(b0, &Alloc{})
	fn.Insert(b0, &Store{Value: ConstantValue(IntConstant(1)), Target: RegisterValue(allocID)})
	fn.Insert(b0, &Return{Value: ConstantValue(UnitConstant())})
	return fn
}

func TestPrintFunction_RendersHeaderAndBlocks(t *testing.T) {
	fn := buildSimpleFunction()

	var sb strings.Builder
	if err := PrintFunction(&sb, fn); err != nil {
		t.Fatalf("PrintFunction returned error: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "fun $main() =\n") {
		t.Fatalf("expected header line, got:\n%s", out)
	}
	if !strings.Contains(out, "b0 =") {
		t.Fatalf("expected a block header, got:\n%s", out)
	}
	if !strings.Contains(out, "= alloc") {
		t.Fatalf("expected an alloc instruction line, got:\n%s", out)
	}
	if !strings.Contains(out, "store 1 %0") {
		t.Fatalf("expected the store to render the constant and the alloc register, got:\n%s", out)
	}
	if !strings.Contains(out, "return unit") {
		t.Fatalf("expected the return to render its unit constant, got:\n%s", out)
	}
}

func TestPrintFunction_ArgLabelsJoinedByColon(t *testing.T) {
	fn := NewFunction("add", []string{"l1", "l2"}, false)
	b0 := fn.NewBlock(0)
	fn.Insert(b0, &Return{Value: ParameterValue(b0, 0)})

	var sb strings.Builder
	if err := PrintFunction(&sb, fn); err != nil {
		t.Fatalf("PrintFunction returned error: %v", err)
	}
	if !strings.HasPrefix(sb.String(), "fun add(l1:l2) =\n") {
		t.Fatalf("expected labeled header, got:\n%s", sb.String())
	}
}

func TestPrint_MultipleFunctionsSeparatedByBlankLine(t *testing.T) {
	mod := NewModule()
	mod.Declare("$main", buildSimpleFunction())
	other := NewFunction("helper", nil, false)
	b0 := other.NewBlock(0)
	other.Insert(b0, &Return{Value: ConstantValue(BoolConstant(true))})
	mod.Declare("helper", other)

	var sb strings.Builder
	if err := Print(&sb, mod); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "fun $main(") || !strings.Contains(out, "fun helper(") {
		t.Fatalf("expected both functions rendered, got:\n%s", out)
	}
	if strings.Index(out, "fun $main(") > strings.Index(out, "fun helper(") {
		t.Fatal("expected functions in declaration order")
	}
}

func TestFormatValue_EveryKind(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"register", RegisterValue(3), "%3"},
		{"parameter", ParameterValue(2, 1), "b2.1"},
		{"constant int", ConstantValue(IntConstant(-7)), "-7"},
		{"constant string", ConstantValue(StringConstant("hi")), `"hi"`},
		{"constant builtin print", ConstantValue(BuiltinPrint()), "builtin:print"},
		{"poison", PoisonValue(source.Span{}), "poison"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.v); got != tt.want {
			t.Errorf("%s: formatValue() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatInstr_Branches(t *testing.T) {
	cond := &CondBranch{Cond: ConstantValue(BoolConstant(true)), Success: 1, Failure: 2}
	if got := formatInstr(cond); got != "cond-branch true b1 b2" {
		t.Errorf("formatInstr(CondBranch) = %q", got)
	}

	br := &Branch{Target: 4, Args: []Value{RegisterValue(0)}}
	if got := formatInstr(br); got != "branch b4(%0)" {
		t.Errorf("formatInstr(Branch) = %q", got)
	}
}
