// SPDX-License-Identifier: MIT
package gcs

import (
	"errors"
	"strings"

	"github.com/katalvlaran/gcs/core"
)

// ErrEquationNotOwned indicates DeleteEquation was called with an
// equation this Solver never added; the call is treated as a no-op.
var ErrEquationNotOwned = errors.New("gcs: equation not owned by this solver")

// SolveFailure reports that a block failed to converge during Update. The
// scheduler halts immediately on the first failure it observes; earlier
// blocks in the same Update keep whatever values they were solved to, and
// ModifiedVars is preserved so a retry after fixing the underlying problem
// can resume where this one left off.
type SolveFailure struct {
	// Block is the committed block whose numeric solve failed.
	Block *core.Block
}

func (f *SolveFailure) Error() string {
	eqns := make([]string, 0, len(f.Block.Eqns()))
	for e := range f.Block.Eqns() {
		eqns = append(eqns, e.Name)
	}
	return "gcs: block failed to converge: " + strings.Join(eqns, ", ")
}
