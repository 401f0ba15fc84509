package analysis

import "dyva/internal/ir"

// noDominator is a sentinel BlockID meaning "no dominator". Dominators does
// not store it: the entry block, which has no dominator, maps to itself.
const noDominator = ir.BlockID(^uint32(0))

// Dominators computes, for every block of fn reachable from its entry
// block (block 0), its immediate dominator, using the Cooper-Harvey-
// Kennedy fixed-point algorithm: blocks are numbered by reverse postorder
// so that intersect() can walk two idom chains by comparing numbers
// instead of rebuilding a path set on every call, per §4.7.
func Dominators(fn *ir.Function) map[ir.BlockID]ir.BlockID {
	entry := ir.BlockID(0)
	idom := make(map[ir.BlockID]ir.BlockID)
	if len(fn.Blocks) == 0 {
		return idom
	}

	post := postorder(fn, entry)
	rpo := make([]ir.BlockID, len(post))
	num := make(map[ir.BlockID]int, len(post))
	for i, b := range post {
		rpo[len(post)-1-i] = b
		num[b] = len(post) - 1 - i
	}

	preds := predecessors(fn)
	idom[entry] = entry

	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == entry {
				continue
			}
			var newIdom ir.BlockID
			have := false
			for _, p := range preds[b] {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !have {
					newIdom, have = p, true
					continue
				}
				newIdom = intersect(newIdom, p, idom, num)
			}
			if !have {
				continue
			}
			if cur, ok := idom[b]; !ok || cur != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}
	return idom
}

func intersect(a, b ir.BlockID, idom map[ir.BlockID]ir.BlockID, num map[ir.BlockID]int) ir.BlockID {
	for a != b {
		for num[a] > num[b] {
			a = idom[a]
		}
		for num[b] > num[a] {
			b = idom[b]
		}
	}
	return a
}

// Dominates reports whether a dominates b (inclusive: every block
// dominates itself) given fn's immediate-dominator map.
func Dominates(idom map[ir.BlockID]ir.BlockID, a, b ir.BlockID) bool {
	for {
		if a == b {
			return true
		}
		parent, ok := idom[b]
		if !ok || parent == b {
			return a == b
		}
		b = parent
	}
}

// DominanceFrontier computes, for each block, the set of blocks in its
// dominance frontier: a join block Y is in the frontier of X when X
// dominates one of Y's predecessors without strictly dominating Y itself.
func DominanceFrontier(fn *ir.Function, idom map[ir.BlockID]ir.BlockID) map[ir.BlockID][]ir.BlockID {
	preds := predecessors(fn)
	frontier := make(map[ir.BlockID][]ir.BlockID)

	for b, ps := range preds {
		if len(ps) < 2 {
			continue
		}
		for _, p := range ps {
			runner := p
			for runner != idom[b] {
				frontier[runner] = append(frontier[runner], b)
				next, ok := idom[runner]
				if !ok || next == runner {
					break
				}
				runner = next
			}
		}
	}
	return frontier
}
