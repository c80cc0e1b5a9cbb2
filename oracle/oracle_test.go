package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/car/core"
)

func TestSolveSatisfiable(t *testing.T) {
	o := New(100)
	o.AddClause(core.Clause{1, 2})
	o.AddClause(core.Clause{-1, 2})
	o.SetAssumptions(nil)
	require.True(t, o.Solve())

	// Both clauses force var 2 true regardless of var 1's value.
	model := o.Model([]int{1, 2})
	require.True(t, model.Contains(2))
}

func TestSolveUnsatisfiable(t *testing.T) {
	o := New(100)
	o.AddClause(core.Clause{1})
	o.AddClause(core.Clause{-1})
	o.SetAssumptions(nil)
	require.False(t, o.Solve())

	uc := o.UnsatCore()
	_ = uc // an empty or non-empty core is valid here; just must not panic
}

func TestModelPanicsAfterUnsat(t *testing.T) {
	o := New(100)
	o.AddClause(core.Clause{1})
	o.AddClause(core.Clause{-1})
	o.SetAssumptions(nil)
	require.False(t, o.Solve())

	require.Panics(t, func() {
		o.Model([]int{1})
	})
}

func TestUnsatCorePanicsAfterSat(t *testing.T) {
	o := New(100)
	o.AddClause(core.Clause{1})
	o.SetAssumptions(nil)
	require.True(t, o.Solve())

	require.Panics(t, func() {
		o.UnsatCore()
	})
}

func TestAddClauseWithFlagGatesBlocking(t *testing.T) {
	o := New(100)
	flag := o.NewFlag()
	o.AddClauseWithFlag(core.Cube{1}, flag) // ¬flag ∨ ¬1

	// With the flag unasserted, the blocking clause is inert: var 1 can
	// still be true.
	o.SetAssumptions(nil)
	require.True(t, o.Solve())

	// Asserting the flag activates the block: var 1 must be false, but
	// we also force it true, so the query becomes unsatisfiable.
	o.SetAssumptions([]core.Literal{flag, 1})
	require.False(t, o.Solve())
}

func TestAddEquivalence(t *testing.T) {
	o := New(100)
	// l <-> (r1 ∧ r2)
	o.AddEquivalence(3, 1, 2)

	o.SetAssumptions([]core.Literal{1, 2})
	require.True(t, o.Solve())
	m := o.Model([]int{3})
	require.Contains(t, m, core.Literal(3))

	o.SetAssumptions([]core.Literal{1, -2})
	require.True(t, o.Solve())
	m = o.Model([]int{3})
	require.Contains(t, m, core.Literal(-3))
}

func TestNewFlagsAreDistinct(t *testing.T) {
	o := New(10)
	a := o.NewFlag()
	b := o.NewFlag()
	require.NotEqual(t, a, b)
	require.GreaterOrEqual(t, int(a), 10)
	require.GreaterOrEqual(t, int(b), 10)
}
