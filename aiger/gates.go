package aiger

import "github.com/xDarkicex/car/core"

// Eval evaluates the circuit combinationally given a full assignment to
// inputs and current latches, returning the value of every variable in
// 1..NumVars() and the next-state value of every latch. It is the
// adapted descendant of the teacher's Gate/Circuit pair in the root
// gates.go: the same "ordered list of AND gates, evaluate front to
// back" shape, generalized from a single toy gate to the whole
// AND-inverter graph. Used by tests to check TransitionClauses against
// direct simulation, independently of the SAT oracle.
func (c *Circuit) Eval(latchVals, inputVals map[int]bool) (vals map[int]bool, nextLatchVals map[int]bool) {
	vals = make(map[int]bool, c.numVars+1)
	vals[c.trueVar] = true
	for v, b := range latchVals {
		vals[v] = b
	}
	for v, b := range inputVals {
		vals[v] = b
	}

	litVal := func(l int) bool {
		v := l / 2
		if v == 0 {
			v = c.trueVar
		}
		b := vals[v]
		if l%2 == 1 {
			return !b
		}
		return b
	}

	for _, g := range c.gates {
		vals[g.lhs/2] = litVal(g.rhs0) && litVal(g.rhs1)
	}

	nextLatchVals = make(map[int]bool, len(c.latches))
	for _, l := range c.latches {
		nextLatchVals[l.lit/2] = litVal(l.next)
	}

	return vals, nextLatchVals
}

// EvalBad reports whether the bad-state output is asserted under vals,
// the values produced by Eval.
func (c *Circuit) EvalBad(vals map[int]bool) bool {
	v := c.badLit / 2
	if v == 0 {
		v = c.trueVar
	}
	b := vals[v]
	if c.badLit%2 == 1 {
		return !b
	}
	return b
}

// litValue evaluates a single core.Literal against a values map keyed
// by variable id, mirroring the teacher's Literal.Negated convention
// but over integer variables instead of named ones.
func litValue(vals map[int]bool, l core.Literal) bool {
	b := vals[l.Var()]
	if l.Sign() {
		return !b
	}
	return b
}
