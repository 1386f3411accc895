package core

import (
	"fmt"
	"sort"
	"strings"
)

// NewBlock constructs an empty, uncommitted Block.
func NewBlock() *Block {
	return &Block{
		ID:      nextBlockID(),
		eqns:    make(map[*Equation]struct{}),
		vars:    make(map[*Variable]struct{}),
		allVars: make(map[*Variable]struct{}),
	}
}

// Add unions eqn, and both its active and all-time variable sets, into b,
// and returns b so calls can be chained. Add must only be called on an
// uncommitted block.
func (b *Block) Add(eqn *Equation) *Block {
	b.eqns[eqn] = struct{}{}
	for v := range eqn.vars {
		b.vars[v] = struct{}{}
	}
	for v := range eqn.allVars {
		b.allVars[v] = struct{}{}
	}
	return b
}

// Clone returns a new, uncommitted Block with copies of b's Eqns/Vars/AllVars
// sets (Solves/Requires are not copied — they are only meaningful post-commit).
func (b *Block) Clone() *Block {
	b2 := NewBlock()
	for e := range b.eqns {
		b2.eqns[e] = struct{}{}
	}
	for v := range b.vars {
		b2.vars[v] = struct{}{}
	}
	for v := range b.allVars {
		b2.allVars[v] = struct{}{}
	}
	return b2
}

// Frontier returns one candidate Block per equation reachable from b: for
// every active variable in b, every equation still incident to it that is
// not already in b. Each candidate is a Clone of b with exactly one extra
// equation added.
func (b *Block) Frontier() []*Block {
	reachable := make(map[*Equation]struct{})
	for v := range b.vars {
		for e := range v.eqns {
			if _, in := b.eqns[e]; !in {
				reachable[e] = struct{}{}
			}
		}
	}

	out := make([]*Block, 0, len(reachable))
	for e := range reachable {
		out = append(out, b.Clone().Add(e))
	}
	return out
}

// DOF returns the degrees of freedom of b: the number of active variables
// minus the number of equations. Zero means well-constrained; positive
// means under-constrained.
func (b *Block) DOF() int {
	return len(b.vars) - len(b.eqns)
}

// IsWellConstrained reports whether b has exactly as many active variables
// as equations.
func (b *Block) IsWellConstrained() bool {
	return b.DOF() == 0
}

// IsEmpty reports whether b contains no equations.
func (b *Block) IsEmpty() bool {
	return len(b.eqns) == 0
}

// Key computes the best-first search priority of b, given nEq = total
// equations in the system being decomposed + 1. Higher keys are explored
// first: the leading term drives the search toward zero-DOF blocks, and
// the tiebreaker favors blocks committing more equations, which stabilizes
// the search when several candidates share the same DOF.
func (b *Block) Key(nEq int) float64 {
	key := -float64(b.DOF())
	if nEq > 0 {
		key += float64(len(b.eqns)) / float64(nEq)
	}
	return key
}

// Signature returns a canonical identity for b's current (eqns, allVars)
// content, suitable as a map key to dedupe visited search states. Two
// blocks with the same member equations and variables produce the same
// signature regardless of how they were built.
func (b *Block) Signature() string {
	eqIDs := make([]uint64, 0, len(b.eqns))
	for e := range b.eqns {
		eqIDs = append(eqIDs, eqnSeq(e))
	}
	varIDs := make([]uint64, 0, len(b.allVars))
	for v := range b.allVars {
		varIDs = append(varIDs, varSeq(v))
	}
	sort.Slice(eqIDs, func(i, j int) bool { return eqIDs[i] < eqIDs[j] })
	sort.Slice(varIDs, func(i, j int) bool { return varIDs[i] < varIDs[j] })

	var sb strings.Builder
	for _, id := range eqIDs {
		fmt.Fprintf(&sb, "e%d;", id)
	}
	sb.WriteByte('|')
	for _, id := range varIDs {
		fmt.Fprintf(&sb, "v%d;", id)
	}
	return sb.String()
}

// IsSatisfied reports whether every equation in b currently evaluates
// within tol of zero.
func (b *Block) IsSatisfied(tol float64) bool {
	for e := range b.eqns {
		if !e.IsSatisfied(tol) {
			return false
		}
	}
	return true
}

// Commit freezes b: Solves becomes the current active-variable set and
// Requires becomes AllVars minus Solves. It wires solvedBy/requiredBy on
// member variables and inBlock on member equations. The back-links are
// set entries, so calling Commit again on an unchanged Block re-derives
// the same sets and registers nothing twice.
func (b *Block) Commit() {
	b.solves = make(map[*Variable]struct{}, len(b.vars))
	for v := range b.vars {
		b.solves[v] = struct{}{}
	}

	b.requires = make(map[*Variable]struct{}, len(b.allVars)-len(b.vars))
	for v := range b.allVars {
		if _, solved := b.solves[v]; !solved {
			b.requires[v] = struct{}{}
		}
	}

	for v := range b.requires {
		v.requiredBy[b] = true
	}
	for v := range b.solves {
		v.markSolvedBy(b)
	}
	for e := range b.eqns {
		e.inBlock = b
	}

	b.committed = true
}

// Discard removes other's variables and equations from b's active search
// sets. Used to prune search candidates still in a decomposer's queue
// after some other candidate commits, so they cannot double-claim the
// same equations or variables.
func (b *Block) Discard(other *Block) {
	for v := range other.vars {
		delete(b.vars, v)
	}
	for e := range other.eqns {
		delete(b.eqns, e)
	}
}

// Committed reports whether Commit has been called on b.
func (b *Block) Committed() bool { return b.committed }

// Eqns returns the (unsolved, pre-commit) or (frozen, post-commit) set of
// equations in b.
func (b *Block) Eqns() map[*Equation]struct{} { return b.eqns }

// Vars returns the active-variable set of b.
func (b *Block) Vars() map[*Variable]struct{} { return b.vars }

// AllVars returns every variable ever referenced by b.
func (b *Block) AllVars() map[*Variable]struct{} { return b.allVars }

// Solves returns the variables this committed block assigns. Empty (and
// meaningless) until Commit has run.
func (b *Block) Solves() map[*Variable]struct{} { return b.solves }

// Requires returns the variables this committed block reads but does not
// assign. Empty (and meaningless) until Commit has run.
func (b *Block) Requires() map[*Variable]struct{} { return b.requires }

// Len reports the number of equations in b.
func (b *Block) Len() int { return len(b.eqns) }
