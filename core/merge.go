package core

// Merge combines the equations of blocks (committed ones, or blocks still
// awaiting decomposition) together with any extra equations into a single fresh,
// uncommitted Block, ready to be handed to the decompose package.
//
// Any variable whose solving block is one of blocks is "reopened": its
// solvedBy link is cleared and it becomes active again in every merged
// equation that references it, so the next decomposition pass is free to
// reassign it. Variables referenced by a merged equation but solved by a
// block NOT in blocks (an untouched external input) are left exactly as
// they are -- they stay required, not reopened. Stale requiredBy links
// from any touched variable to the dissolved blocks are purged either way.
//
// This is the "merge-and-redecompose" policy mandated by the root
// package's AddEquation, as opposed to collapsing everything into one
// coarse residual block.
func Merge(blocks []*Block, extra ...*Equation) *Block {
	blockSet := make(map[*Block]bool, len(blocks))
	for _, b := range blocks {
		blockSet[b] = true
	}

	eqnSet := make(map[*Equation]bool, len(extra))
	for _, b := range blocks {
		for e := range b.eqns {
			eqnSet[e] = true
		}
	}
	for _, e := range extra {
		eqnSet[e] = true
	}

	reopened := make(map[*Variable]bool)
	for e := range eqnSet {
		for _, v := range e.VarList {
			if v.solvedBy != nil && blockSet[v.solvedBy] {
				reopened[v] = true
			}
		}
	}

	for v := range reopened {
		v.solvedBy = nil
		for e := range eqnSet {
			if _, isVar := e.allVars[v]; isVar {
				e.vars[v] = struct{}{}
			}
		}
	}

	for e := range eqnSet {
		for _, v := range e.VarList {
			for b := range blockSet {
				delete(v.requiredBy, b)
			}
		}
	}

	merged := NewBlock()
	for e := range eqnSet {
		merged.Add(e)
	}
	return merged
}
