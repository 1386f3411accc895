// SPDX-License-Identifier: MIT
package gcs

import (
	"github.com/katalvlaran/gcs/core"
	"github.com/katalvlaran/gcs/decompose"
	"github.com/katalvlaran/gcs/numeric"
	"github.com/katalvlaran/gcs/schedule"
)

// SplitFunc partitions a block into well-constrained sub-blocks plus a
// residual, as decompose.Split does by default.
type SplitFunc func(*core.Block) []*core.Block

// SolveFunc attempts to solve a single committed block, as numeric.Solve
// does by default.
type SolveFunc func(*core.Block) bool

// Option configures a Solver at construction time.
type Option func(*Solver)

// WithSplitFunc overrides the decomposition primitive.
func WithSplitFunc(f SplitFunc) Option {
	return func(s *Solver) { s.splitFunc = f }
}

// WithSolveFunc overrides the per-block numeric solve primitive.
func WithSolveFunc(f SolveFunc) Option {
	return func(s *Solver) { s.solveFunc = f }
}

// WithSolveTolerance sets the residual threshold Update uses to decide a
// block is already satisfied and doesn't need re-solving. Default 1e-6.
func WithSolveTolerance(tol float64) Option {
	return func(s *Solver) { s.solveTol = tol }
}

// Solver is the public system manager (component D): it owns all
// variables and equations, tracks what has been modified since the last
// Update, and orchestrates reset, decomposition, and scheduling.
//
// The graph (variables, equations, blocks) is mutated only through the
// Solver's own methods. Solver does no locking of its own and is not safe
// for concurrent use; only a Variable's value carries a lock (see the core
// package doc comment).
type Solver struct {
	vars map[*core.Variable]bool
	eqns map[*core.Equation]bool

	// blocks holds every live block, committed or not. The members of
	// modifiedBlocks are uncommitted until the next Update splits them;
	// every other member is committed.
	blocks map[*core.Block]bool

	modifiedVars   map[*core.Variable]bool
	modifiedBlocks map[*core.Block]bool
	modified       bool // set by delete operations; forces a full Reset

	splitFunc SplitFunc
	solveFunc SolveFunc
	solveTol  float64
}

// NewSolver constructs an empty Solver. By default it splits with
// decompose.Split, solves with numeric.Solve, and treats a block as
// already-satisfied at a residual below 1e-6.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		vars:           make(map[*core.Variable]bool),
		eqns:           make(map[*core.Equation]bool),
		blocks:         make(map[*core.Block]bool),
		modifiedVars:   make(map[*core.Variable]bool),
		modifiedBlocks: make(map[*core.Block]bool),
		splitFunc:      decompose.Split,
		solveFunc:      defaultSolve,
		solveTol:       numeric.DefaultCheckTol,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func defaultSolve(b *core.Block) bool {
	return numeric.Solve(b, numeric.DefaultSolveTol)
}

// --------------------------------------------
// Variable: add, modify, delete
// --------------------------------------------

// AddVariable registers v with the solver and marks it modified so the
// next Update picks it up.
func (s *Solver) AddVariable(v *core.Variable) {
	s.vars[v] = true
	s.modifiedVars[v] = true
}

// ModifyVariable updates v's value and marks it modified so the next
// Update re-solves whatever depends on it.
func (s *Solver) ModifyVariable(v *core.Variable, val float64) {
	v.SetValue(val)
	s.modifiedVars[v] = true
}

// DeleteVariable removes v and cascade-deletes every equation that
// references it. This forces a full Reset on the next Update: deletions
// are never reconciled incrementally (see core package doc and §7).
func (s *Solver) DeleteVariable(v *core.Variable) {
	delete(s.vars, v)
	for e := range v.AllEqns() {
		delete(s.eqns, e)
	}
	core.DeleteVariable(v)
	s.modified = true
}

// --------------------------------------------
// Equation: add, delete
// --------------------------------------------

// AddEquation registers e and merges every currently-live block whose
// Solves intersects e's variables, together with the residual block still
// awaiting decomposition from earlier additions (if any), into one
// combined block containing e. If there is neither, e starts a new block
// of its own. The combined block is marked modified so the next Update
// re-decomposes it.
// This is the merge-and-redecompose policy from §4.D/§9, chosen over a
// single coarse collapse because it preserves the dependency-DAG
// invariant for everything the new equation doesn't actually touch.
func (s *Solver) AddEquation(e *core.Equation) {
	s.eqns[e] = true

	affected := s.affectedBlocks(e)
	for b := range s.modifiedBlocks {
		affected[b] = true
	}
	for b := range affected {
		delete(s.blocks, b)
		delete(s.modifiedBlocks, b)
	}

	var merged *core.Block
	if len(affected) == 0 {
		merged = core.Merge(nil, e)
	} else {
		list := make([]*core.Block, 0, len(affected))
		for b := range affected {
			list = append(list, b)
		}
		merged = core.Merge(list, e)
	}

	s.blocks[merged] = true
	s.modifiedBlocks[merged] = true
}

// affectedBlocks returns the set of live blocks whose Solves intersects
// e's variable list; a variable e touches that isn't solved by anyone
// yet contributes nothing (it will simply join the merged block fresh).
func (s *Solver) affectedBlocks(e *core.Equation) map[*core.Block]bool {
	affected := make(map[*core.Block]bool)
	for _, v := range e.VarList {
		if b := v.SolvedBy(); b != nil {
			affected[b] = true
		}
	}
	return affected
}

// DeleteEquation detaches e from its variables. Returns ErrEquationNotOwned
// if e was never added to this solver. This forces a full Reset on the
// next Update, per §7's "invalid mutation" policy: a smarter incremental
// deletion is permitted but not required for correctness.
func (s *Solver) DeleteEquation(e *core.Equation) error {
	if !s.eqns[e] {
		return ErrEquationNotOwned
	}
	delete(s.eqns, e)
	core.DeleteEquation(e)
	s.modified = true
	return nil
}

// --------------------------------------------
// state: satisfied
// --------------------------------------------

// IsSatisfied reports whether every equation currently owned by the
// solver evaluates within tolerance of zero.
func (s *Solver) IsSatisfied() bool {
	for e := range s.eqns {
		if !e.IsSatisfied(s.solveTol) {
			return false
		}
	}
	return true
}

// --------------------------------------------
// update, solve, reset
// --------------------------------------------

// Update is the core orchestration entry point. If any delete operation
// happened since the last Update, it first Resets (folding everything
// back into one unsplit block). It then re-decomposes every block in
// modifiedBlocks, replacing each with the decomposer's output and folding
// newly-assigned variables into modifiedVars. Finally it invokes the
// scheduler over the full set of live blocks.
//
// On numeric failure, Update returns a *SolveFailure identifying the
// block that didn't converge; already-solved blocks from earlier in this
// call keep their values, and modifiedVars is left as-is so a retry after
// a fix resumes from there.
func (s *Solver) Update() error {
	if s.modified {
		s.Reset()
	}

	for b := range s.modifiedBlocks {
		delete(s.blocks, b)

		newBlocks := s.splitFunc(b)
		for _, nb := range newBlocks {
			s.blocks[nb] = true
			for v := range nb.Solves() {
				s.modifiedVars[v] = true
			}
		}
	}
	s.modifiedBlocks = make(map[*core.Block]bool)

	blocks := make([]*core.Block, 0, len(s.blocks))
	for b := range s.blocks {
		blocks = append(blocks, b)
	}

	result := schedule.Run(blocks, s.modifiedVars, schedule.SolveFunc(s.solveFunc), s.solveTol)
	if result.Failed != nil {
		return &SolveFailure{Block: result.Failed}
	}

	s.modifiedVars = make(map[*core.Variable]bool)
	return nil
}

// Reset discards every block, restores every owned variable and equation
// to its just-constructed search state, and folds everything into a
// single new unsplit block marked modified. After Reset (and before the
// next Update), the only live block is that single combined one.
func (s *Solver) Reset() {
	newBlock := core.NewBlock()
	s.blocks = map[*core.Block]bool{newBlock: true}

	for v := range s.vars {
		core.ResetVariable(v)
	}
	for e := range s.eqns {
		core.ResetEquation(e)
	}
	for e := range s.eqns {
		newBlock.Add(e)
	}

	s.modified = false
	s.modifiedBlocks = map[*core.Block]bool{newBlock: true}

	s.modifiedVars = make(map[*core.Variable]bool, len(s.vars))
	for v := range s.vars {
		s.modifiedVars[v] = true
	}
}

// Blocks returns a snapshot slice of every block currently live in the
// solver, for introspection (e.g. reporting an under- or over-constrained
// structure per §7).
func (s *Solver) Blocks() []*core.Block {
	out := make([]*core.Block, 0, len(s.blocks))
	for b := range s.blocks {
		out = append(out, b)
	}
	return out
}

// CheckAcyclic verifies the dependency DAG invariant (§3 invariant 4)
// over the solver's current committed blocks.
func (s *Solver) CheckAcyclic() error {
	return schedule.CheckAcyclic(s.Blocks())
}
