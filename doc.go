// Package gcs is an incremental geometric constraint solver core: declare
// variables and nonlinear equations among them, and the solver decomposes
// the system into minimal well-constrained sub-blocks, schedules them in
// dependency order, and re-solves only what a change actually touches.
//
// What is gcs?
//
//	A thread-aware, dependency-light engine that brings together:
//
//	  - Graph nodes (core):   Variable, Equation, Block incidence tracking
//	  - Decomposer (decompose): best-first search into well-constrained blocks
//	  - Scheduler (schedule): dependency-DAG walk, solve-on-demand
//	  - Numeric adapter (numeric): gosl/num.NlSolver-backed block solving
//
// Why gcs?
//
//   - Incremental    — adding or modifying one constraint only re-decomposes
//     and re-solves the blocks that constraint actually touches; a deletion
//     makes the next Update re-decompose the whole system
//   - Structural      — reports over/under-constraint rather than papering
//     over it; solving is delegated, decomposition is not
//   - Pluggable       — split and solve primitives are functional options
//
// Everything is organized under four subpackages plus this root Solver:
//
//	core/      — Variable, Equation, Block types & incidence bookkeeping
//	decompose/ — the best-first equation-set splitting search
//	schedule/  — the dependency-ordered block solve walk
//	numeric/   — the default gosl/num.NlSolver block-solving backend
//
// See Solver for the public entry point.
//
//	go get github.com/katalvlaran/gcs
package gcs
