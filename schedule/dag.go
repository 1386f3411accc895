package schedule

import (
	"errors"

	"github.com/katalvlaran/gcs/core"
)

// ErrCycleDetected indicates that the Requires -> Solves edges among
// committed blocks form a cycle, violating the dependency-DAG invariant.
var ErrCycleDetected = errors.New("schedule: cycle detected among block dependencies")

// Coloring states for CheckAcyclic's traversal, following the classic
// white/gray/black DFS scheme for directed-graph cycle detection.
const (
	white = 0
	gray  = 1
	black = 2
)

// CheckAcyclic verifies that the Requires(B) -> Solves(B') edges among
// blocks form a DAG. It walks each
// block via a depth-first search over "which block solves each variable I
// require", marking blocks gray while on the current path and black once
// fully explored; a gray block revisited on the same path means a cycle.
func CheckAcyclic(blocks []*core.Block) error {
	state := make(map[*core.Block]int, len(blocks))
	for _, b := range blocks {
		state[b] = white
	}

	var visit func(b *core.Block) error
	visit = func(b *core.Block) error {
		switch state[b] {
		case gray:
			return ErrCycleDetected
		case black:
			return nil
		}
		state[b] = gray
		for v := range b.Requires() {
			if dep := v.SolvedBy(); dep != nil {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		state[b] = black
		return nil
	}

	for _, b := range blocks {
		if state[b] == white {
			if err := visit(b); err != nil {
				return err
			}
		}
	}
	return nil
}
