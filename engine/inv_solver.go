package engine

import (
	"github.com/xDarkicex/car/config"
	"github.com/xDarkicex/car/core"
	"github.com/xDarkicex/car/model"
	"github.com/xDarkicex/car/oracle"
)

// invSolver is the Invariant Solver (C4): tests whether a frame F_i has
// become inductive, i.e. F_i ⊆ F_{i-1} AND F_{i-1} already excludes the
// far-side predicate (bad in forward mode, init in backward mode), by
// checking that each is UNSAT. It builds a disposable oracle per query
// rather than an incrementally maintained one: the containment query
// touches no transition relation, and the far-side query loads it only
// to evaluate BadLit, with no frame-flag bookkeeping to carry across
// calls.
type invSolver struct {
	model model.Model
	dir   config.Direction
}

func newInvSolver(m model.Model, dir config.Direction) *invSolver {
	return &invSolver{model: m, dir: dir}
}

// Inductive reports whether Fi ⊆ Fim1 AND Fim1 ∧ far-side-predicate is
// UNSAT (spec §8 property 4: invariant_found_at(i) implies F_{i-1} ∧ bad
// is UNSAT). The far-side check runs first and is not skipped just
// because Fi is empty — an empty Fi only witnesses safety if Fim1 itself
// already excludes the far side.
func (iv *invSolver) Inductive(fi, fim1 core.Frame) bool {
	if !iv.excludesFarSide(fim1) {
		return false
	}
	if len(fi) == 0 {
		return true
	}

	oc := oracle.New(flagVarBase(iv.model))

	orFlag := oc.NewFlag()
	sels := make([]core.Literal, len(fi))
	for i, cube := range fi {
		sel := oc.NewFlag()
		sels[i] = sel
		for _, lit := range cube {
			oc.AddClause(core.Clause{sel.Negate(), lit})
		}
	}
	orClause := make(core.Clause, 0, len(sels)+1)
	orClause = append(orClause, orFlag.Negate())
	orClause = append(orClause, sels...)
	oc.AddClause(orClause)

	andFlag := oc.NewFlag()
	for _, cube := range fim1 {
		oc.AddClauseWithFlag(cube, andFlag)
	}

	oc.SetAssumptions([]core.Literal{orFlag, andFlag})
	return !oc.Solve()
}

// excludesFarSide reports whether fim1 ∧ far-side-predicate is UNSAT,
// where the far-side predicate is bad in forward mode and init in
// backward mode — the same side the Start Solver seeds from. This is the
// other half of inductiveness: a frame that blocks every cube of Fi but
// still admits the far side is not actually a safety witness.
func (iv *invSolver) excludesFarSide(fim1 core.Frame) bool {
	oc := oracle.New(flagVarBase(iv.model))
	// BadLit may be a gate derived from the latches rather than a latch
	// literal itself (aiger's combinational output network), so the
	// gate/latch equivalences from TransitionClauses must be in scope for
	// this query to evaluate BadLit correctly from fim1's cubes.
	for _, c := range iv.model.TransitionClauses() {
		oc.AddClause(c)
	}
	for _, cube := range fim1 {
		oc.AddClause(cube.Negate())
	}

	var assumptions []core.Literal
	if iv.dir == config.Forward {
		assumptions = []core.Literal{iv.model.BadLit()}
	} else {
		assumptions = iv.model.InitCube()
	}
	oc.SetAssumptions(assumptions)
	return !oc.Solve()
}
