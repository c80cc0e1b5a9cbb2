// Package model defines the external collaborator the CAR engine is built
// against: the symbolic transition system produced by parsing a circuit.
// Per the specification, how a Model is produced (AIGER parsing, CNF
// encoding) is out of the engine's core scope; the engine only consumes
// this interface. Package aiger provides one concrete producer.
package model

import "github.com/xDarkicex/car/core"

// Model exposes everything the CAR engine needs from a symbolic
// transition system: variable layout, the initial-state cube, the bad
// literal, the transition relation's CNF, and the current/next-state
// priming maps.
type Model interface {
	// NumInputs, NumLatches and NumVars report the size of the input,
	// latch and total variable sets (1..NumVars are valid variable ids).
	NumInputs() int
	NumLatches() int
	NumVars() int

	// InitCube returns the unique initial state as a cube over latch
	// literals. Latches whose initial value is not determined are
	// omitted, i.e. this may be a partial cube.
	InitCube() core.Cube

	// BadLit returns the single output literal whose truth encodes a
	// property violation.
	BadLit() core.Literal

	// TransitionClauses returns the CNF of the transition relation over
	// current-state, input and next-state literals.
	TransitionClauses() []core.Clause

	// Prime maps a current-state literal to its next-state copy; Unprime
	// is its inverse. The engine applies them to latch literals only.
	Prime(l core.Literal) core.Literal
	Unprime(l core.Literal) core.Literal

	// Latches and Inputs return the latch and input variable sets, in
	// ascending variable-id order.
	Latches() []int
	Inputs() []int
}
