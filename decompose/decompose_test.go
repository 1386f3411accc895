package decompose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/gcs/core"
	"github.com/katalvlaran/gcs/decompose"
)

func newEqn(t *testing.T, name string, residual func(args ...float64) float64, vars []*core.Variable) *core.Equation {
	t.Helper()
	e, err := core.NewEquation(name, residual, vars, nil)
	assert.NoError(t, err)
	return e
}

// TestSplit_PointCoincidence mirrors the point-coincidence scenario: two
// singleton equations (x=0, y=0) share no variables and must each become
// their own well-constrained block.
func TestSplit_PointCoincidence(t *testing.T) {
	x := core.NewVariable("x", 1, nil)
	y := core.NewVariable("y", 2, nil)

	ex := newEqn(t, "x=0", func(a ...float64) float64 { return a[0] }, []*core.Variable{x})
	ey := newEqn(t, "y=0", func(a ...float64) float64 { return a[0] }, []*core.Variable{y})

	whole := core.NewBlock().Add(ex).Add(ey)
	blocks := decompose.Split(whole)

	assert.Len(t, blocks, 2)
	for _, b := range blocks {
		assert.True(t, b.Committed())
		assert.True(t, b.IsWellConstrained())
		assert.Len(t, b.Solves(), 1)
	}
}

// TestSplit_UnderConstrainedResidual covers x - y = 0 alone: neither
// variable can be isolated, so Split must return exactly one residual
// block containing both the equation and its variables, still committed
// (with both variables in its Solves) so the scheduler can still walk it.
func TestSplit_UnderConstrainedResidual(t *testing.T) {
	x := core.NewVariable("x", 0, nil)
	y := core.NewVariable("y", 3, nil)
	e := newEqn(t, "x-y", func(a ...float64) float64 { return a[0] - a[1] }, []*core.Variable{x, y})

	whole := core.NewBlock().Add(e)
	blocks := decompose.Split(whole)

	assert.Len(t, blocks, 1)
	assert.True(t, blocks[0].Committed())
	assert.Equal(t, 1, len(blocks[0].Eqns()))
	assert.False(t, blocks[0].IsWellConstrained())
}

// TestSplit_ChainedSingletons covers a dependency chain x=0, y-x=0: x must
// resolve before y, producing two well-constrained singleton blocks
// with y's block Requiring x.
func TestSplit_ChainedSingletons(t *testing.T) {
	x := core.NewVariable("x", 5, nil)
	y := core.NewVariable("y", 0, nil)

	ex := newEqn(t, "x=0", func(a ...float64) float64 { return a[0] }, []*core.Variable{x})
	eyx := newEqn(t, "y-x", func(a ...float64) float64 { return a[0] - a[1] }, []*core.Variable{y, x})

	whole := core.NewBlock().Add(ex).Add(eyx)
	blocks := decompose.Split(whole)

	assert.Len(t, blocks, 2)

	var xBlock, yBlock *core.Block
	for _, b := range blocks {
		if _, ok := b.Solves()[x]; ok {
			xBlock = b
		}
		if _, ok := b.Solves()[y]; ok {
			yBlock = b
		}
	}
	if assert.NotNil(t, xBlock) && assert.NotNil(t, yBlock) {
		assert.Len(t, xBlock.Requires(), 0)
		assert.Contains(t, yBlock.Requires(), x)
	}
}

// TestSplit_CheckOnlyZeroVariableBlock covers the documented deviation
// for an equation whose every variable is already solved by another block
// split from the same input: it commits as a zero-Solves "check-only"
// block rather than being discarded as unreachable.
func TestSplit_CheckOnlyZeroVariableBlock(t *testing.T) {
	x := core.NewVariable("x", 2, nil)
	ex := newEqn(t, "x=2", func(a ...float64) float64 { return a[0] - 2 }, []*core.Variable{x})
	redundant := newEqn(t, "x=2 (dup)", func(a ...float64) float64 { return a[0] - 2 }, []*core.Variable{x})

	whole := core.NewBlock().Add(ex).Add(redundant)
	blocks := decompose.Split(whole)

	var sawCheckOnly bool
	for _, b := range blocks {
		if len(b.Solves()) == 0 && len(b.Eqns()) > 0 {
			sawCheckOnly = true
		}
	}
	assert.True(t, sawCheckOnly, "expected one block with claimed variables but no Solves (check-only)")
}
