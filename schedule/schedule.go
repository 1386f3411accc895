// Package schedule walks the dependency DAG formed by committed blocks'
// Requires -> Solves edges and invokes a numeric solve primitive only on
// blocks whose solve-relevant inputs changed since the last pass.
//
// The traversal is a FIFO frontier walk in the style of dfs/topological.go's
// white/gray/black state machine, except driven by a ready-queue rather
// than recursion: a block becomes ready once every variable in its
// Requires set has been solved by some earlier block in this pass.
package schedule

import "github.com/katalvlaran/gcs/core"

// SolveFunc is the pluggable numeric primitive: given a block, attempt to
// solve it (or, for a zero-variable block, merely check it) and report
// success.
type SolveFunc func(b *core.Block) bool

// Result reports the outcome of a Run: either every ready block was
// processed successfully, or numeric solving failed on Failed, in which
// case the scheduler halted immediately without processing downstream
// blocks.
type Result struct {
	// Failed is the block whose SolveFunc call returned false, or nil if
	// every block that needed solving succeeded.
	Failed *core.Block

	// Solved lists the blocks whose solve() call succeeded during this run
	// (in the order they were solved), whether or not this run's solve
	// calls modified any variables. Blocks merely passed through without
	// solving (because no input changed) are not included, and neither is
	// Failed.
	Solved []*core.Block
}

// Run schedules blocks for solving given modifiedVars, the set of
// variables whose value changed since the last Run. It mutates
// modifiedVars in place, folding in every variable solved during this
// pass so callers can inspect the final propagated set.
//
// Algorithm:
//  1. Seed a FIFO queue with every block whose Requires set is empty.
//  2. Pop a block B. It needs solving if some v in B.Requires is in
//     modifiedVars (an upstream input changed), or some v in B.Solves is
//     in modifiedVars and B is not currently satisfied within tol.
//  3. If it needs solving, call solve(B). On failure, stop and report B.
//     On success, union B.Solves into modifiedVars.
//  4. Union B.Solves into solvedVars, then enqueue every block B' that
//     reads a variable B solves, provided every variable B' requires has
//     now been solved.
func Run(blocks []*core.Block, modifiedVars map[*core.Variable]bool, solve SolveFunc, tol float64) Result {
	solvedVars := make(map[*core.Variable]bool)

	queue := make([]*core.Block, 0, len(blocks))
	for _, b := range blocks {
		if len(b.Requires()) == 0 {
			queue = append(queue, b)
		}
	}

	enqueued := make(map[*core.Block]bool, len(queue))
	for _, b := range queue {
		enqueued[b] = true
	}

	var solved []*core.Block

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		if needsSolve(b, modifiedVars, tol) {
			if !solve(b) {
				return Result{Failed: b, Solved: solved}
			}
			for v := range b.Solves() {
				modifiedVars[v] = true
			}
			solved = append(solved, b)
		}

		for v := range b.Solves() {
			solvedVars[v] = true
		}

		for v := range b.Solves() {
			for next := range v.RequiredBy() {
				if enqueued[next] {
					continue
				}
				if allSolved(next.Requires(), solvedVars) {
					enqueued[next] = true
					queue = append(queue, next)
				}
			}
		}
	}

	return Result{Solved: solved}
}

// needsSolve reports whether b must be (re-)solved this pass: either an
// input it Requires changed, or a variable it Solves changed and b is not
// currently satisfied.
func needsSolve(b *core.Block, modifiedVars map[*core.Variable]bool, tol float64) bool {
	for v := range b.Requires() {
		if modifiedVars[v] {
			return true
		}
	}
	for v := range b.Solves() {
		if modifiedVars[v] && !b.IsSatisfied(tol) {
			return true
		}
	}
	return false
}

// allSolved reports whether every variable in need is present in have.
func allSolved(need map[*core.Variable]struct{}, have map[*core.Variable]bool) bool {
	for v := range need {
		if !have[v] {
			return false
		}
	}
	return true
}
