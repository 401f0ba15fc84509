package analysis

import (
	"dyva/internal/diag"
	"dyva/internal/ir"
	"dyva/internal/source"
)

// CheckYieldCoherence implements §4.10: a subscript's body must yield
// exactly once along every path from entry to a return. Paths are walked
// depth-first over the block CFG; a path that reaches a second yield
// reports AnalysisExtraneousYield at the second yield's site, and a path
// that reaches a return having yielded zero times reports
// AnalysisMissingYield at the return's site. Non-subscript functions are
// not checked — yield is already rejected there at lowering time
// (LowerInvalidYield).
func CheckYieldCoherence(fn *ir.Function, r diag.Reporter) {
	if !fn.IsSubscript || len(fn.Blocks) == 0 {
		return
	}
	visited := make(map[pathState]bool)
	walkYieldPaths(fn, ir.BlockID(0), 0, source.Span{}, visited, r)
}

type pathState struct {
	block  ir.BlockID
	yields int
}

// walkYieldPaths walks one path's worth of the block CFG, threading firstYield,
// the site of the path's first yield so far, as a witness for the note
// attached when a second yield is found.
func walkYieldPaths(fn *ir.Function, block ir.BlockID, yields int, firstYield source.Span, visited map[pathState]bool, r diag.Reporter) {
	st := pathState{block, yields}
	if visited[st] {
		return
	}
	visited[st] = true

	b := fn.Block(block)
	if !b.HasInstructions() {
		return
	}

	for i := b.First; i <= b.Last; i++ {
		switch instr := fn.Instruction(i).(type) {
		case *ir.Yield:
			yields++
			if yields == 1 {
				firstYield = instr.Site
			}
			if yields == 2 {
				diag.ReportError(r, diag.AnalysisExtraneousYield, instr.Site,
					"subscript cannot project more than once").
					WithNote(firstYield, "first yield here").
					Emit()
				// The violation is already reported; stop walking this
				// path so a yield inside a loop can't grow the yield
				// count without bound across repeated back-edge visits.
				return
			}
		case *ir.Return:
			if yields == 0 {
				diag.ReportError(r, diag.AnalysisMissingYield, instr.Site,
					"subscript must yield before returning").Emit()
			}
		}
	}

	for _, s := range successors(fn, block) {
		walkYieldPaths(fn, s, yields, firstYield, visited, r)
	}
}
