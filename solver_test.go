package gcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/gcs"
	"github.com/katalvlaran/gcs/core"
)

// TestSolver_EmptySystemIsSatisfied covers the degenerate system: no
// variables, no equations. Update must succeed trivially and IsSatisfied
// must report true vacuously.
func TestSolver_EmptySystemIsSatisfied(t *testing.T) {
	s := gcs.NewSolver()
	assert.NoError(t, s.Update())
	assert.True(t, s.IsSatisfied())
	assert.Len(t, s.Blocks(), 0)
}

// TestSolver_PointCoincidence covers the canonical scenario 1: two point
// coordinates pinned to fixed values by two independent equations. Each
// should decompose into its own singleton block and solve exactly.
func TestSolver_PointCoincidence(t *testing.T) {
	s := gcs.NewSolver()

	x := core.NewVariable("x", 0, nil)
	y := core.NewVariable("y", 0, nil)
	s.AddVariable(x)
	s.AddVariable(y)

	ex, err := core.NewEquation("x=3", func(a ...float64) float64 { return a[0] - 3 }, []*core.Variable{x}, nil)
	assert.NoError(t, err)
	ey, err := core.NewEquation("y=4", func(a ...float64) float64 { return a[0] - 4 }, []*core.Variable{y}, nil)
	assert.NoError(t, err)
	s.AddEquation(ex)
	s.AddEquation(ey)

	assert.NoError(t, s.Update())
	assert.True(t, s.IsSatisfied())
	assert.InDelta(t, 3.0, x.Value(), 1e-6)
	assert.InDelta(t, 4.0, y.Value(), 1e-6)
}

// TestSolver_IncrementalModifyOnlyResolvesDownstream covers scenario 3:
// after an initial solve, modifying one variable's value and calling
// Update again should only re-solve the equations that actually depend
// on it, converging to new values without error.
func TestSolver_IncrementalModifyOnlyResolvesDownstream(t *testing.T) {
	s := gcs.NewSolver()

	radius := core.NewVariable("radius", 1, nil)
	circumference := core.NewVariable("circumference", 0, nil)
	s.AddVariable(radius)
	s.AddVariable(circumference)

	pin, err := core.NewEquation("radius=2", func(a ...float64) float64 { return a[0] - 2 }, []*core.Variable{radius}, nil)
	assert.NoError(t, err)
	derive, err := core.NewEquation("circumference-2*pi*radius", func(a ...float64) float64 {
		return a[0] - 2*3.141592653589793*a[1]
	}, []*core.Variable{circumference, radius}, nil)
	assert.NoError(t, err)

	s.AddEquation(pin)
	s.AddEquation(derive)
	assert.NoError(t, s.Update())
	assert.InDelta(t, 2.0, radius.Value(), 1e-6)
	assert.InDelta(t, 2*3.141592653589793*2, circumference.Value(), 1e-5)

	s.ModifyVariable(radius, 5)
	// radius is pinned by its own equation, so the re-solve must snap it
	// back to 2 regardless of the externally poked value, then propagate.
	assert.NoError(t, s.Update())
	assert.InDelta(t, 2.0, radius.Value(), 1e-6)
	assert.InDelta(t, 2*3.141592653589793*2, circumference.Value(), 1e-5)
}

// TestSolver_DeleteThenReAddEquation covers scenarios 4/5: deleting a
// constraint loosens the system (Update still succeeds, the freed
// variable keeps its last value), and adding a new equation on the same
// variable re-pins it.
func TestSolver_DeleteThenReAddEquation(t *testing.T) {
	s := gcs.NewSolver()

	x := core.NewVariable("x", 0, nil)
	s.AddVariable(x)

	e1, err := core.NewEquation("x=7", func(a ...float64) float64 { return a[0] - 7 }, []*core.Variable{x}, nil)
	assert.NoError(t, err)
	s.AddEquation(e1)
	assert.NoError(t, s.Update())
	assert.InDelta(t, 7.0, x.Value(), 1e-6)

	assert.NoError(t, s.DeleteEquation(e1))
	assert.NoError(t, s.Update())
	assert.True(t, s.IsSatisfied())

	e2, err := core.NewEquation("x=9", func(a ...float64) float64 { return a[0] - 9 }, []*core.Variable{x}, nil)
	assert.NoError(t, err)
	s.AddEquation(e2)
	assert.NoError(t, s.Update())
	assert.InDelta(t, 9.0, x.Value(), 1e-6)
}

// TestSolver_DeleteEquationNotOwned covers the error path: deleting an
// equation the solver never added must return ErrEquationNotOwned rather
// than silently succeeding or panicking.
func TestSolver_DeleteEquationNotOwned(t *testing.T) {
	s := gcs.NewSolver()
	x := core.NewVariable("x", 0, nil)
	stray, err := core.NewEquation("x=0", func(a ...float64) float64 { return a[0] }, []*core.Variable{x}, nil)
	assert.NoError(t, err)

	err = s.DeleteEquation(stray)
	assert.ErrorIs(t, err, gcs.ErrEquationNotOwned)
}

// TestSolver_UnderConstrainedFromStart covers scenario 6: a lone x - y =
// 0 equation with no other pins. Update must still succeed (the residual
// block is only checked, not forced to a unique solution), and the
// solver reports a single block that isn't well-constrained.
func TestSolver_UnderConstrainedFromStart(t *testing.T) {
	s := gcs.NewSolver()

	x := core.NewVariable("x", 2, nil)
	y := core.NewVariable("y", 2, nil)
	s.AddVariable(x)
	s.AddVariable(y)

	e, err := core.NewEquation("x-y", func(a ...float64) float64 { return a[0] - a[1] }, []*core.Variable{x, y}, nil)
	assert.NoError(t, err)
	s.AddEquation(e)

	assert.NoError(t, s.Update())
	assert.True(t, s.IsSatisfied())

	blocks := s.Blocks()
	assert.Len(t, blocks, 1)
	assert.False(t, blocks[0].IsWellConstrained())
}

// TestSolver_CheckAcyclicOnValidChain covers that a normally-decomposed
// chain of dependent constraints never reports a cycle.
func TestSolver_CheckAcyclicOnValidChain(t *testing.T) {
	s := gcs.NewSolver()

	x := core.NewVariable("x", 0, nil)
	y := core.NewVariable("y", 0, nil)
	s.AddVariable(x)
	s.AddVariable(y)

	ex, _ := core.NewEquation("x=1", func(a ...float64) float64 { return a[0] - 1 }, []*core.Variable{x}, nil)
	eyx, _ := core.NewEquation("y-x-1", func(a ...float64) float64 { return a[0] - a[1] - 1 }, []*core.Variable{y, x}, nil)
	s.AddEquation(ex)
	s.AddEquation(eyx)

	assert.NoError(t, s.Update())
	assert.NoError(t, s.CheckAcyclic())
}
