package engine

import (
	"github.com/xDarkicex/car/config"
	"github.com/xDarkicex/car/core"
	"github.com/xDarkicex/car/model"
	"github.com/xDarkicex/car/oracle"
)

// flagVarBase returns the first variable id safe to hand out as a flag:
// above every current- and next-state variable id the model's clauses
// use, so a flag can never alias a model variable inside the same oracle.
func flagVarBase(m model.Model) int {
	return 2*m.NumVars() + 1
}

// mainSolver is the Main Solver (C2): the unrolled transition relation
// plus one activation literal per frame level, so a frame's blocking
// clauses can be toggled in and out of a query without re-adding or
// removing them.
type mainSolver struct {
	model model.Model
	dir   config.Direction
	cfg   config.Threshold

	oc    *oracle.Oracle
	flags []core.Literal // flags[i] guards F_i's blocking clauses
	calls int
}

func newMainSolver(m model.Model, dir config.Direction, threshold config.Threshold) *mainSolver {
	ms := &mainSolver{model: m, dir: dir, cfg: threshold}
	ms.rebuild(nil)
	return ms
}

// rebuild discards the current oracle and re-derives one from scratch:
// the transition relation plus every cube currently on record for each
// frame in fseq. Used both for first construction (fseq == nil) and for
// the periodic reconstruction described in spec §5.
func (ms *mainSolver) rebuild(fseq []core.Frame) {
	ms.oc = oracle.New(flagVarBase(ms.model))
	for _, c := range ms.model.TransitionClauses() {
		ms.oc.AddClause(c)
	}
	ms.flags = nil
	ms.calls = 0
	for i, frame := range fseq {
		ms.AddNewFrame(i, frame)
	}
}

// ensureLevel grows the flag table up to i, allocating fresh flags for
// any level not seen before.
func (ms *mainSolver) ensureLevel(i int) core.Literal {
	for len(ms.flags) <= i {
		ms.flags = append(ms.flags, ms.oc.NewFlag())
	}
	return ms.flags[i]
}

// AddNewFrame allocates flag_i (if not already allocated) and adds every
// cube of frame as a blocking clause guarded by it.
func (ms *mainSolver) AddNewFrame(i int, frame core.Frame) {
	flag := ms.ensureLevel(i)
	for _, cube := range frame {
		ms.oc.AddClauseWithFlag(cube, flag)
	}
}

// AddClauseToFrame incrementally strengthens F_i with one more cube.
func (ms *mainSolver) AddClauseToFrame(cube core.Cube, i int) {
	flag := ms.ensureLevel(i)
	ms.oc.AddClauseWithFlag(cube, flag)
}

// sideCube returns cube expressed on the side of the transition relation
// a query against F_level needs to be asserted on: primed (next-state)
// in forward mode, unprimed in backward mode, per spec §4.2's "we ask
// whether F_i ∧ T ∧ state' is SAT" (forward case).
func (ms *mainSolver) sideCube(cube core.Cube) core.Cube {
	if ms.dir == config.Forward {
		return primeCube(ms.model, cube)
	}
	return cube.Clone()
}

// SetAssumption builds the query "does there exist a predecessor (or
// successor, by direction) of state in F_frameLevel": assert flag_level,
// negate every other allocated frame's flag, and assert state's cube on
// the appropriate side of the transition relation.
func (ms *mainSolver) SetAssumption(stateCube core.Cube, frameLevel int) {
	ms.ensureLevel(frameLevel)
	lits := make([]core.Literal, 0, len(ms.flags)+len(stateCube))
	for i, flag := range ms.flags {
		if i == frameLevel {
			lits = append(lits, flag)
		} else {
			lits = append(lits, flag.Negate())
		}
	}
	lits = append(lits, ms.sideCube(stateCube)...)
	ms.oc.SetAssumptions(lits)
}

// Solve runs the oracle under the assumption built by SetAssumption.
func (ms *mainSolver) Solve() bool {
	ms.calls++
	return ms.oc.Solve()
}

// GetState extracts, after a SAT result, the current-state projection
// of the model as a new candidate state's cube, in the engine's
// canonical (unprimed) variable space regardless of direction.
func (ms *mainSolver) GetState() core.Cube {
	latches := ms.model.Latches()
	vars := make([]int, len(latches))
	for i, v := range latches {
		if ms.dir == config.Forward {
			vars[i] = v
		} else {
			vars[i] = ms.model.Prime(core.Literal(v)).Var()
		}
	}
	assign := ms.oc.Model(vars)
	out := make(core.Cube, len(assign))
	for i, l := range assign {
		if ms.dir == config.Forward {
			out[i] = l
		} else {
			out[i] = ms.model.Unprime(l)
		}
	}
	return out
}

// GetInputs extracts, after a SAT result, the input projection of the
// model — the witnessing input assignment for the transition just found.
func (ms *mainSolver) GetInputs() core.Cube {
	return ms.oc.Model(ms.model.Inputs())
}

// GetUC returns, after an UNSAT result, the generalized cube to block:
// the unsat core restricted to the state's own literals, with flag
// variables stripped and the side mapping undone.
func (ms *mainSolver) GetUC() core.Cube {
	raw := ms.oc.UnsatCore()
	out := make(core.Cube, 0, len(raw))
	base := flagVarBase(ms.model)
	for _, l := range raw {
		if l.Var() >= base {
			continue
		}
		if ms.dir == config.Forward {
			out = append(out, ms.model.Unprime(l))
		} else {
			out = append(out, l)
		}
	}
	return out
}

// NeedsReconstruct reports whether this solver has served enough calls
// since its last (re)build to warrant tearing it down and rebuilding it
// from the authoritative frame sequence, per spec §5.
func (ms *mainSolver) NeedsReconstruct() bool {
	return ms.cfg != config.NeverReconstruct && ms.calls >= int(ms.cfg)
}

// Reconstruct rebuilds the solver from fseq, the engine's authoritative
// Fsequence, bounding the memory growth from activation-literal and
// learned-clause churn.
func (ms *mainSolver) Reconstruct(fseq []core.Frame) {
	ms.rebuild(fseq)
}

func primeCube(m model.Model, c core.Cube) core.Cube {
	out := make(core.Cube, len(c))
	for i, l := range c {
		out[i] = m.Prime(l)
	}
	return out
}
