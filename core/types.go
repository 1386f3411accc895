// Package core defines the bipartite graph nodes of the constraint solver:
// Variable, Equation, and Block. These three types and their incidence
// sets are the substrate the decompose and schedule packages operate on.
//
// A Variable is a named real-valued unknown. An Equation is a residual
// function over an ordered tuple of Variables. A Block is a subset of
// equations together with the variables they touch; once committed, a
// Block freezes which variables it Solves and which it merely Requires
// (already solved by some other Block).
//
// Incidence is stored as sets of pointers rather than back-references
// threaded through a generic graph ADT: Variable <-> Equation <-> Block
// forms a reference cycle, and identifier-keyed sets make deletion and
// re-decomposition straightforward (see the root package's Solver).
//
// Variables carry their own RWMutex because their values may be poked
// from outside the Solver between calls to Update (see the root
// package's ModifyVariable); Equation and Block are mutated only through
// the Solver's own methods and need no locking of their own.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph-node operations.
var (
	// ErrNilResidual indicates an Equation was created with a nil residual function.
	ErrNilResidual = errors.New("core: residual function is nil")

	// ErrVarNotInEqn indicates an operation referenced a variable that is not
	// part of the equation's variable list.
	ErrVarNotInEqn = errors.New("core: variable not part of equation")
)

// Variable is a node of the solve graph representing a single real-valued
// unknown. Eqns holds the equations it is still reachable from during a
// decomposition search (it shrinks as blocks commit); AllEqns holds every
// equation it was ever attached to and is restored into Eqns by Reset.
type Variable struct {
	mu sync.RWMutex

	seq uint64 // stable identity for Block.Signature, assigned at construction

	// Name is a human-readable, not-necessarily-unique label for diagnostics.
	Name string

	// Parent is an opaque back-link to the authoring object (e.g. a point or
	// circle in a geometry layer); core never dereferences it.
	Parent interface{}

	val float64 // current value, guarded by mu

	eqns    map[*Equation]struct{} // active incident equations
	allEqns map[*Equation]struct{} // all incident equations, restored on Reset

	solvedBy   *Block          // block that assigns this variable, or nil
	requiredBy map[*Block]bool // blocks that read this variable as an input
}

// Equation is a node of the solve graph representing a single residual
// function over an ordered tuple of Variables. Vars shrinks during
// decomposition as variables are claimed by committed blocks; AllVars and
// VarList are fixed at construction.
type Equation struct {
	seq uint64 // stable identity for Block.Signature, assigned at construction

	// Name is a human-readable label for diagnostics.
	Name string

	// Parent is an opaque back-link to the authoring constraint.
	Parent interface{}

	// Residual evaluates the equation given variable values in VarList order.
	// It should return zero when the constraint is exactly satisfied.
	Residual func(args ...float64) float64

	// VarList is the fixed, ordered tuple of variables this equation reads.
	VarList []*Variable

	vars    map[*Variable]struct{} // active (not yet solved elsewhere) variables
	allVars map[*Variable]struct{} // all variables, fixed at construction

	inBlock *Block // block currently containing this equation
}

// Block (equation set) is a subset of equations together with the
// variables they reference, used both as transient search state during
// decomposition and as a frozen unit of scheduling once committed.
//
// Before Commit, Eqns/Vars/AllVars are mutable candidate state. Commit
// freezes Solves := Vars and Requires := AllVars \ Vars, and wires the
// solvedBy/requiredBy/inBlock back-links on member nodes.
type Block struct {
	// ID is a monotonically increasing identifier, useful for diagnostics
	// and deterministic iteration order in tests.
	ID uint64

	eqns    map[*Equation]struct{} // unsolved equations in this block
	vars    map[*Variable]struct{} // unsolved (active) variables in this block
	allVars map[*Variable]struct{} // all variables ever referenced by this block

	solves   map[*Variable]struct{} // frozen at Commit: variables this block assigns
	requires map[*Variable]struct{} // frozen at Commit: variables read but not assigned

	committed bool
}

var (
	blockIDSeq uint64
	varIDSeq   uint64
	eqnIDSeq   uint64
)

// nextBlockID returns a fresh, monotonically increasing Block identifier.
// Not safe for concurrent use; callers (the root Solver) serialize mutation.
func nextBlockID() uint64 {
	blockIDSeq++
	return blockIDSeq
}

// nextVarSeq returns a fresh, monotonically increasing Variable identity.
func nextVarSeq() uint64 {
	varIDSeq++
	return varIDSeq
}

// nextEqnSeq returns a fresh, monotonically increasing Equation identity.
func nextEqnSeq() uint64 {
	eqnIDSeq++
	return eqnIDSeq
}

// varSeq returns v's stable identity.
func varSeq(v *Variable) uint64 { return v.seq }

// eqnSeq returns e's stable identity.
func eqnSeq(e *Equation) uint64 { return e.seq }
