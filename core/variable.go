package core

// NewVariable constructs a Variable with the given name, initial value, and
// optional parent back-link. Complexity: O(1).
func NewVariable(name string, val float64, parent interface{}) *Variable {
	return &Variable{
		seq:        nextVarSeq(),
		Name:       name,
		Parent:     parent,
		val:        val,
		eqns:       make(map[*Equation]struct{}),
		allEqns:    make(map[*Equation]struct{}),
		requiredBy: make(map[*Block]bool),
	}
}

// Value returns the variable's current value. Safe for concurrent use
// alongside ModifyVariable from outside a Solver.Update call.
func (v *Variable) Value() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

// SetValue updates the variable's current value in place. Safe for
// concurrent use; callers of the root package's Solver.ModifyVariable
// should route through that API instead of calling this directly so the
// Solver's modified-variable tracking stays accurate.
func (v *Variable) SetValue(val float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.val = val
}

// attach registers eqn as incident to v, in both the active and all-time sets.
func (v *Variable) attach(eqn *Equation) {
	v.eqns[eqn] = struct{}{}
	v.allEqns[eqn] = struct{}{}
}

// detach removes eqn from both the active and all-time incidence sets.
func (v *Variable) detach(eqn *Equation) {
	delete(v.eqns, eqn)
	delete(v.allEqns, eqn)
}

// ActiveEqns returns the equations still reachable from v in the current
// search frontier (those not yet claimed by a committed block).
func (v *Variable) ActiveEqns() map[*Equation]struct{} {
	return v.eqns
}

// AllEqns returns every equation ever attached to v.
func (v *Variable) AllEqns() map[*Equation]struct{} {
	return v.allEqns
}

// SolvedBy reports the block that currently solves this variable, or nil.
func (v *Variable) SolvedBy() *Block {
	return v.solvedBy
}

// RequiredBy returns the set of blocks that read this variable as an input.
func (v *Variable) RequiredBy() map[*Block]bool {
	return v.requiredBy
}

// markSolvedBy records that b will solve v: v is removed from the active
// equation sets of all its still-active equations (so later candidates in
// a decomposition search stop seeing v as free), and any equation already
// claimed by b is dropped from v's active set outright.
func (v *Variable) markSolvedBy(b *Block) {
	v.solvedBy = b

	for eqn := range v.eqns {
		delete(eqn.vars, v)
	}
	for eqn := range b.eqns {
		delete(v.eqns, eqn)
	}
}

// reset restores v to its just-constructed search state: every ever-seen
// equation becomes active again, and solve bookkeeping is cleared.
func (v *Variable) reset() {
	v.eqns = make(map[*Equation]struct{}, len(v.allEqns))
	for eqn := range v.allEqns {
		v.eqns[eqn] = struct{}{}
	}
	v.solvedBy = nil
	v.requiredBy = make(map[*Block]bool)
}

// DeleteVariable cascade-deletes every equation v appears in: each one is
// detached from all of its variables, exactly as DeleteEquation does.
// Callers (the root Solver) remain responsible for dropping those
// equations from their own bookkeeping.
func DeleteVariable(v *Variable) {
	for eqn := range v.allEqns {
		eqn.delete()
	}
}

// ResetVariable restores v to its just-constructed search state: every
// ever-seen equation becomes active again, and solve bookkeeping clears.
func ResetVariable(v *Variable) {
	v.reset()
}
