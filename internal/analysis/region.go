package analysis

import "dyva/internal/ir"

// CloseRegions implements §4.9: every access instruction opens a region
// that must be closed by a matching end-access once the borrowed value's
// last use has executed. The lowerer never emits end-access itself (§4.6
// only opens regions); this pass inserts one per access immediately after
// the instruction recorded as its last use, splicing directly into
// fn.Instrs/fn.InstrBlock and then rebuilding block/use bookkeeping.
func CloseRegions(fn *ir.Function) {
	ranges := LiveRanges(fn)

	// anchor[id] collects the end-accesses to insert right after
	// instruction id, in access-id order so the output is deterministic.
	anchor := make(map[ir.InstrID][]*ir.EndAccess)
	for i, instr := range fn.Instrs {
		if _, ok := instr.(*ir.Access); !ok {
			continue
		}
		id := ir.InstrID(i)
		r := ranges[ir.RegisterValue(id)]
		anchor[r.End] = append(anchor[r.End], &ir.EndAccess{
			Site:  instr.Anchor(),
			Start: id,
		})
	}
	if len(anchor) == 0 {
		return
	}

	newInstrs := make([]ir.Instruction, 0, len(fn.Instrs)+len(anchor))
	newBlocks := make([]ir.BlockID, 0, len(fn.Instrs)+len(anchor))
	for i, instr := range fn.Instrs {
		id := ir.InstrID(i)
		// A region can't close after a terminator — a terminator must stay
		// the last instruction of its block — so the end-access goes just
		// before it instead.
		if instr.IsTerminator() {
			for _, ea := range anchor[id] {
				newInstrs = append(newInstrs, ea)
				newBlocks = append(newBlocks, fn.InstrBlock[id])
			}
			newInstrs = append(newInstrs, instr)
			newBlocks = append(newBlocks, fn.InstrBlock[id])
			continue
		}
		newInstrs = append(newInstrs, instr)
		newBlocks = append(newBlocks, fn.InstrBlock[id])
		for _, ea := range anchor[id] {
			newInstrs = append(newInstrs, ea)
			newBlocks = append(newBlocks, fn.InstrBlock[id])
		}
	}

	fn.Instrs = newInstrs
	fn.InstrBlock = newBlocks
	fn.Rebuild()
}
