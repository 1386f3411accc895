// Package numeric is the thin adapter between a solved core.Block and an
// external multivariate root finder. It owns tolerance handling and the
// satisfaction checks the rest of the engine treats as ground truth.
//
// The default backend is github.com/cpmech/gosl/num's NlSolver, the same
// nonlinear-solver primitive used for single-point equilibrium solves in
// cpmech/gofem (see e.g. msolid's elasto-plastic update and ana's
// pressurised-cylinder closed-form check): construct it once per block,
// Init it with the block's equation count and a residual callback that
// writes variable values back before evaluating, and Solve from the
// variables' current values as the initial guess.
package numeric

import (
	"github.com/cpmech/gosl/num"

	"github.com/katalvlaran/gcs/core"
)

// Default tolerances per §4.E / §6: solves converge tighter than the
// after-the-fact satisfaction check.
const (
	DefaultSolveTol   = 1.0e-8
	DefaultCheckTol   = 1.0e-6
	maxUnsquareColumn = 0.0 // padding rows evaluate to exactly this residual
)

// Solve runs the default NlSolver-backed primitive against b: it reads
// the current values of b's active variables as the initial guess, drives
// gosl/num.NlSolver on the (possibly padded-to-square) residual vector,
// writes the result back into the variables, and reports whether every
// residual is within tol.
//
// A block with zero active variables needs no solve at all: Solve simply
// evaluates its equations and checks them, per §4.E.
func Solve(b *core.Block, tol float64) bool {
	vars := varSlice(b.Vars())
	eqns := eqnSlice(b.Eqns())

	if len(vars) == 0 {
		return checkResiduals(eqns, tol)
	}

	x := make([]float64, len(vars))
	for i, v := range vars {
		x[i] = v.Value()
	}

	neq := len(vars)
	ffcn := func(fx, xVec []float64) {
		for i, v := range vars {
			v.SetValue(xVec[i])
		}
		for i, e := range eqns {
			fx[i] = e.Evaluate()
		}
		// Pad with zero rows when there are more variables than
		// equations, squaring the system the way constraint_solver.py's
		// F(V) does, so NlSolver always sees an neq x neq Jacobian.
		for i := len(eqns); i < neq; i++ {
			fx[i] = maxUnsquareColumn
		}
	}

	var nls num.NlSolver
	defer nls.Clean()
	nls.Init(neq, ffcn, nil, nil, false, true, nil)
	nls.ChkConv = false

	if err := nls.Solve(x, true); err != nil {
		return false
	}

	return checkResiduals(eqns, tol)
}

// IsSatisfied reports whether every equation in b currently evaluates
// within tol of zero, without attempting a solve. Used both for the
// scheduler's "already satisfied, skip re-solve" check and for the
// residual (under-constrained) block's post-hoc verification.
func IsSatisfied(b *core.Block, tol float64) bool {
	return checkResiduals(eqnSlice(b.Eqns()), tol)
}

func checkResiduals(eqns []*core.Equation, tol float64) bool {
	for _, e := range eqns {
		r := e.Evaluate()
		if r > tol || r < -tol {
			return false
		}
	}
	return true
}

func varSlice(m map[*core.Variable]struct{}) []*core.Variable {
	out := make([]*core.Variable, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	return out
}

func eqnSlice(m map[*core.Equation]struct{}) []*core.Equation {
	out := make([]*core.Equation, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	return out
}
