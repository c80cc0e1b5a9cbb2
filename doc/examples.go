// Package main demonstrates usage of the car engine against a small,
// hand-built transition system, without going through the AIGER parser.
// Adapted from the teacher's doc/examples.go — same "one Example
// function per feature, run them all from main" shape, generalized from
// printing boolean-algebra results to printing CAR verdicts.
package main

import (
	"fmt"

	"github.com/xDarkicex/car/config"
	"github.com/xDarkicex/car/core"
	"github.com/xDarkicex/car/engine"
)

// counterModel is a 2-bit counter that counts 00 -> 01 -> 10 -> 11 -> 00
// with no inputs, bad when both bits are set. It implements model.Model
// directly, the way a hand-rolled symbolic system would without going
// through an AIGER file.
//
// Variables: 1, 2 are the two latches (bit0, bit1); there are no inputs.
type counterModel struct{}

func (counterModel) NumInputs() int  { return 0 }
func (counterModel) NumLatches() int { return 2 }

// NumVars is 3, not 2: variable 3 is the combinational gate backing
// BadLit, and the contract (mirrored from package aiger) is that
// NumVars covers every variable a query might touch, gates included,
// not just the latches.
func (counterModel) NumVars() int { return 3 }

func (counterModel) InitCube() core.Cube {
	return core.Cube{core.Literal(-1), core.Literal(-2)} // 00
}

func (counterModel) BadLit() core.Literal {
	// bad when bit0 AND bit1; represented directly as the conjunction
	// via a fresh gate variable 3, wired in TransitionClauses.
	return core.Literal(3)
}

func (counterModel) Latches() []int { return []int{1, 2} }
func (counterModel) Inputs() []int  { return nil }

func (m counterModel) Prime(l core.Literal) core.Literal {
	v := l.Var()
	if v > m.NumVars() {
		return l
	}
	if l.Sign() {
		return core.Literal(-(v + m.NumVars()))
	}
	return core.Literal(v + m.NumVars())
}

func (m counterModel) Unprime(l core.Literal) core.Literal {
	v := l.Var()
	if v <= m.NumVars() {
		return l
	}
	base := v - m.NumVars()
	if l.Sign() {
		return core.Literal(-base)
	}
	return core.Literal(base)
}

// TransitionClauses ties bit0' = !bit0, bit1' = bit0 XOR bit1 (binary
// increment), and gate variable 3 = bit0 AND bit1 (the bad predicate).
func (m counterModel) TransitionClauses() []core.Clause {
	bit0, bit1 := core.Literal(1), core.Literal(2)
	bit0p, bit1p := m.Prime(bit0), m.Prime(bit1)

	var clauses []core.Clause

	// bit0' <-> !bit0
	clauses = append(clauses,
		core.Clause{bit0p.Negate(), bit0.Negate()},
		core.Clause{bit0p, bit0},
	)

	// bit1' <-> bit0 XOR bit1, Tseitin over two AND gates and an OR:
	// bit1' <-> (bit0 & !bit1) | (!bit0 & bit1). Encoded directly as a
	// 4-clause XOR rather than introducing intermediate gate variables,
	// since this demo model has no aiger gate list to draw on.
	clauses = append(clauses,
		core.Clause{bit1p.Negate(), bit0, bit1},
		core.Clause{bit1p.Negate(), bit0.Negate(), bit1.Negate()},
		core.Clause{bit1p, bit0.Negate(), bit1},
		core.Clause{bit1p, bit0, bit1.Negate()},
	)

	// gate 3 <-> bit0 & bit1
	g := core.Literal(3)
	clauses = append(clauses,
		core.Clause{g.Negate(), bit0},
		core.Clause{g.Negate(), bit1},
		core.Clause{g, bit0.Negate(), bit1.Negate()},
	)

	return clauses
}

// ExampleForwardUnsafe runs the counter forward; bit0 AND bit1 becomes
// true at count 3, so the engine reports UNSAFE with a 4-step trace:
// init plus the three transitions counting up to the bad state.
func ExampleForwardUnsafe() {
	fmt.Println("=== Forward CAR over a 2-bit counter ===")
	result := engine.New(counterModel{}, config.Default()).Run()
	fmt.Printf("verdict: %s\n", result.Verdict)
	if result.Trace != nil {
		fmt.Printf("trace length: %d\n", len(result.Trace.Steps))
	}
	fmt.Println()
}

// ExampleBackwardUnsafe runs the same model backward, demonstrating
// spec §8's round-trip property: the verdict matches forward mode even
// though the search direction and Start Solver seed side are mirrored.
func ExampleBackwardUnsafe() {
	fmt.Println("=== Backward CAR over the same counter ===")
	cfg := config.Default()
	cfg.Direction = config.Backward
	result := engine.New(counterModel{}, cfg).Run()
	fmt.Printf("verdict: %s\n", result.Verdict)
	fmt.Println()
}

func main() {
	ExampleForwardUnsafe()
	ExampleBackwardUnsafe()
}
