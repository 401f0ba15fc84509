package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Print renders every function in m to the textual form of spec.md §6.5:
// `fun <name>(l1:l2:…) =` followed by indented `bK =` block headers and
// per-instruction `%id = <op> <args…>` lines. `<name>` is either `$main`
// or a stable identifier derived from the function declaration.
func Print(w io.Writer, m *Module) error {
	for i, fn := range m.Functions() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := PrintFunction(w, fn); err != nil {
			return err
		}
	}
	return nil
}

// PrintFunction renders one function.
func PrintFunction(w io.Writer, fn *Function) error {
	if _, err := fmt.Fprintf(w, "fun %s(%s) =\n", fn.Name, strings.Join(fn.ArgLabels, ":")); err != nil {
		return err
	}
	for bid, b := range fn.Blocks {
		if _, err := fmt.Fprintf(w, "  b%d =\n", bid); err != nil {
			return err
		}
		for id := b.First; id <= b.Last && b.hasLast; id++ {
			if fn.InstrBlock[id] != BlockID(bid) {
				continue
			}
			line := fmt.Sprintf("    %%%d = %s\n", id, formatInstr(fn.Instrs[id]))
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
			if id == b.Last {
				break
			}
		}
	}
	return nil
}

func formatInstr(instr Instruction) string {
	switch i := instr.(type) {
	case *Alloc:
		return "alloc"
	case *Access:
		return fmt.Sprintf("access<%s> %s", capabilityName(i.Capability), formatValue(i.Of))
	case *EndAccess:
		return fmt.Sprintf("end-access %%%d", i.Start)
	case *Store:
		return fmt.Sprintf("store %s %s", formatValue(i.Value), formatValue(i.Target))
	case *Member:
		if i.ByIndex {
			return fmt.Sprintf("member %s [%d]", formatValue(i.Whole), i.Index)
		}
		return fmt.Sprintf("member %s .%s", formatValue(i.Whole), i.Name)
	case *Invoke:
		return fmt.Sprintf("invoke %s(%s)", formatValue(i.Callee), formatArgs(i.Labels, i.Args))
	case *Project:
		return fmt.Sprintf("project %s[%s]", formatValue(i.Callee), formatArgs(i.Labels, i.Args))
	case *Branch:
		return fmt.Sprintf("branch b%d(%s)", i.Target, formatValues(i.Args))
	case *CondBranch:
		return fmt.Sprintf("cond-branch %s b%d b%d", formatValue(i.Cond), i.Success, i.Failure)
	case *Return:
		return fmt.Sprintf("return %s", formatValue(i.Value))
	case *Yield:
		return fmt.Sprintf("yield %s", formatValue(i.Value))
	case Nop:
		return "nop"
	default:
		return "?"
	}
}

func capabilityName(c Capability) string {
	switch c {
	case CapInout:
		return "inout"
	case CapSink:
		return "sink"
	default:
		return "let"
	}
}

func formatArgs(labels []string, args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		v := formatValue(a)
		if i < len(labels) && labels[i] != "" {
			v = labels[i] + ":" + v
		}
		parts[i] = v
	}
	return strings.Join(parts, ", ")
}

func formatValues(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatValue(a)
	}
	return strings.Join(parts, ", ")
}

func formatValue(v Value) string {
	switch v.Kind {
	case ValueRegister:
		return "%" + strconv.FormatUint(uint64(v.Reg), 10)
	case ValueParameter:
		return fmt.Sprintf("b%d.%d", v.Block, v.Index)
	case ValueConstant:
		return formatConstant(v.Const)
	case ValuePoison:
		return "poison"
	default:
		return "<invalid>"
	}
}

func formatConstant(c IRConstant) string {
	switch c.Kind {
	case ConstUnit:
		return "unit"
	case ConstBool:
		return strconv.FormatBool(c.Bool)
	case ConstInt:
		return strconv.FormatInt(c.Int, 10)
	case ConstString:
		return strconv.Quote(c.Str)
	case ConstFunction:
		return "fn:" + c.FuncName
	case ConstBuiltinPrint:
		return "builtin:print"
	case ConstBuiltinType:
		return "builtin:type"
	default:
		return "<const?>"
	}
}
