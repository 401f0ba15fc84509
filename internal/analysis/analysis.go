package analysis

import (
	"dyva/internal/diag"
	"dyva/internal/ir"
)

// Run drives every post-lowering pass over every function of mod, in the
// order §4.7–§4.11 present them: the dominator tree first, then region
// closing, then dead-access elimination, which must follow region closing
// because it finds each access's end-access by its Start. Diagnostics from yield
// coherence are reported to r; the dominator tree itself is not surfaced
// here — it exists for analyses built on top of this package to request
// via Dominators, not as a diagnostic-producing pass of its own.
func Run(mod *ir.Module, r diag.Reporter) {
	for _, fn := range mod.Functions() {
		Dominators(fn) // computed for its own sake; no diagnostic depends on it yet
		CloseRegions(fn)
		EliminateDeadAccesses(fn)
		CheckYieldCoherence(fn, r)
	}
}
