package analysis

import "dyva/internal/ir"

// EliminateDeadAccesses implements §4.11: an access instruction whose
// value is never read (live range consists only of the access and its own
// end-access, per CloseRegions) performs no useful borrow and is removed,
// along with its matching end-access. Must run after CloseRegions, since
// it identifies the pair to remove by Start rather than by position.
//
// Removing one dead access can strand another (an access whose only other
// reader was the removed one), so passes repeat until one removes nothing.
// Every repeated pass turns at least one access into a Nop, so the loop
// ends.
func EliminateDeadAccesses(fn *ir.Function) {
	for eliminateDeadAccessesOnce(fn) {
	}
}

// eliminateDeadAccessesOnce runs one removal pass and reports whether it
// removed anything.
func eliminateDeadAccessesOnce(fn *ir.Function) bool {
	useCount := make(map[ir.InstrID]int)
	for _, instr := range fn.Instrs {
		for _, v := range instr.Operands() {
			if v.Kind == ir.ValueRegister {
				useCount[v.Reg]++
			}
		}
	}

	removed := false
	for i, instr := range fn.Instrs {
		id := ir.InstrID(i)
		if _, ok := instr.(*ir.Access); !ok {
			continue
		}
		// An access is used by its own matching end-access (Operands()
		// reports it) plus whatever reads the borrowed value; one use
		// means only the end-access references it, so the borrow itself
		// is dead.
		if useCount[id] > 1 {
			continue
		}
		fn.RemoveInstruction(id)
		removed = true
	}
	if !removed {
		return false
	}

	for i, instr := range fn.Instrs {
		ea, ok := instr.(*ir.EndAccess)
		if !ok {
			continue
		}
		if _, isNop := fn.Instruction(ea.Start).(ir.Nop); isNop {
			fn.RemoveInstruction(ir.InstrID(i))
		}
	}
	fn.Rebuild()
	return true
}
