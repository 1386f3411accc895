// Package decompose implements the best-first structural search that
// splits a Block into minimal well-constrained sub-blocks, leaving a
// residual under-constrained block for whatever equations couldn't be
// placed.
//
// The search seeds a priority queue with one singleton candidate per
// equation in the input block, then repeatedly pops the highest-priority
// candidate: if it is well-constrained it commits, and every other queued
// candidate discards its now-claimed equations/variables; otherwise its
// frontier (one-equation extensions) is pushed back onto the queue. A
// canonical signature set prevents the same (equations, variables)
// combination from being queued twice.
//
// This mirrors dfs/topological.go's white/gray/black state-machine
// idiom in spirit — a small struct holding traversal state driven by a
// single exported entry point — but the traversal here is over a
// priority queue (container/heap) rather than a recursive walk, since
// the search must support pop/requeue rather than a simple DFS order.
package decompose

import "github.com/katalvlaran/gcs/core"

// Split partitions block into well-constrained sub-blocks plus, if any of
// its equations could not be placed in one, a single residual block
// holding those equations. All returned blocks are committed. block itself is consumed:
// its equations are redistributed among the results and it should not be
// reused by the caller afterward.
//
// Split never mutates the equation/variable's Parent/Name/Residual data;
// it only rearranges the active-set bookkeeping on core.Variable/Equation
// via core.Block's Add/Frontier/Discard/Commit.
func Split(block *core.Block) []*core.Block {
	eqns := block.Eqns()
	nEq := len(eqns) + 1

	pq := newQueue()
	for e := range eqns {
		pq.push(core.NewBlock().Add(e), nEq)
	}

	visited := make(map[string]bool, len(eqns))

	unsolved := make(map[*core.Equation]struct{}, len(eqns))
	for e := range eqns {
		unsolved[e] = struct{}{}
	}

	var result []*core.Block

	for pq.len() > 0 {
		cand := pq.pop()

		// A candidate with no active variables left (every input already
		// solved upstream) can never become well-constrained by equality
		// of counts -- it has more equations than free variables. Treat it
		// as a "check-only" block: it commits with an empty Solves set and
		// is scheduled purely to verify its residual (see numeric package).
		checkOnly := !cand.IsEmpty() && len(cand.Vars()) == 0

		if (cand.IsWellConstrained() && !cand.IsEmpty()) || checkOnly {
			cand.Commit()
			result = append(result, cand)

			for e := range cand.Eqns() {
				delete(unsolved, e)
			}

			pq.discardAndRebuild(cand, nEq, visited)
			continue
		}

		for _, next := range cand.Frontier() {
			// Only grow candidates with equations of the block being split,
			// so an equation owned by another live block is never claimed.
			outside := false
			for e := range next.Eqns() {
				if _, in := eqns[e]; !in {
					outside = true
					break
				}
			}
			if outside {
				continue
			}
			sig := next.Signature()
			if visited[sig] {
				continue
			}
			visited[sig] = true
			pq.push(next, nEq)
		}
	}

	if len(unsolved) > 0 {
		residual := core.NewBlock()
		for e := range unsolved {
			residual.Add(e)
		}
		residual.Commit()
		result = append(result, residual)
	}

	return result
}
