package engine

import (
	"github.com/xDarkicex/car/config"
	"github.com/xDarkicex/car/core"
	"github.com/xDarkicex/car/model"
	"github.com/xDarkicex/car/oracle"
)

// startSolver is the Start Solver (C3): enumerates distinct concrete
// states satisfying the far-side predicate relative to direction — the
// bad-state output in forward mode, the (possibly partial, hence
// multi-valued) initial cube in backward mode — by adding each returned
// assignment back as a blocking clause so the next solve produces a
// different one.
//
// Two blocking sets share the oracle: frame, the cubes pushed into the
// newest Fsequence level during the current pass (via AddToFrame, kept
// across a mid-pass Reset), and a transient set populated by Enumerate.
// BeginPass forgets both. The outer CAR loop retries every previously
// found seed at each new depth budget (spec §4.5's try_satisfy is called
// once per level with a strictly increasing recursion budget), and each
// pass has a new, initially empty newest level; without forgetting both
// sets between passes, a seed found or blocked at level k could never be
// retried at level k+1.
type startSolver struct {
	model model.Model
	dir   config.Direction
	cfg   config.Threshold

	oc    *oracle.Oracle
	frame core.Frame

	persistentFlags []core.Literal
	transientFlags  []core.Literal
	calls           int
}

func newStartSolver(m model.Model, dir config.Direction, threshold config.Threshold) *startSolver {
	ss := &startSolver{model: m, dir: dir, cfg: threshold}
	ss.rebuild(nil)
	return ss
}

func (ss *startSolver) rebuild(frame core.Frame) {
	ss.oc = oracle.New(flagVarBase(ss.model))
	for _, c := range ss.model.TransitionClauses() {
		ss.oc.AddClause(c)
	}
	if ss.dir == config.Forward {
		ss.oc.AddClause(core.Clause{ss.model.BadLit()})
	} else {
		for _, l := range ss.model.InitCube() {
			ss.oc.AddClause(core.Clause{l})
		}
	}

	ss.frame = frame.Clone()
	ss.persistentFlags = make([]core.Literal, len(ss.frame))
	for i, cube := range ss.frame {
		flag := ss.oc.NewFlag()
		ss.persistentFlags[i] = flag
		ss.oc.AddClauseWithFlag(cube, flag)
	}
	ss.transientFlags = nil
	ss.calls = 0
}

// BeginPass forgets which seeds this solver has returned in previous
// passes, and the cubes AddToFrame recorded for the previous newest
// Fsequence level, which is no longer the newest one.
func (ss *startSolver) BeginPass() {
	ss.transientFlags = ss.transientFlags[:0]
	ss.persistentFlags = ss.persistentFlags[:0]
	ss.frame = nil
}

// Enumerate returns a state not yet seen in this pass and not blocked by
// frame, or ok==false if every satisfying assignment has been exhausted.
func (ss *startSolver) Enumerate() (cube core.Cube, ok bool) {
	assume := make([]core.Literal, 0, len(ss.persistentFlags)+len(ss.transientFlags))
	assume = append(assume, ss.persistentFlags...)
	assume = append(assume, ss.transientFlags...)
	ss.oc.SetAssumptions(assume)
	ss.calls++
	if !ss.oc.Solve() {
		return nil, false
	}
	cube = ss.oc.Model(ss.model.Latches())
	flag := ss.oc.NewFlag()
	ss.oc.AddClauseWithFlag(cube, flag)
	ss.transientFlags = append(ss.transientFlags, flag)
	return cube, true
}

// AddToFrame records cube as a blocking clause for the rest of the
// current pass, called by the engine's push_to_frame when cube has just
// joined the newest Fsequence level.
func (ss *startSolver) AddToFrame(cube core.Cube) {
	flag := ss.oc.NewFlag()
	ss.oc.AddClauseWithFlag(cube, flag)
	ss.persistentFlags = append(ss.persistentFlags, flag)
	ss.frame = append(ss.frame, cube.Clone())
}

// NeedsReconstruct mirrors mainSolver.NeedsReconstruct for the Start
// Solver's own call counter.
func (ss *startSolver) NeedsReconstruct() bool {
	return ss.cfg != config.NeverReconstruct && ss.calls >= int(ss.cfg)
}

// Reset tears down and rebuilds the oracle from the persistent frame
// set, re-enabling every flag per spec §4.3 — the periodic-reconstruction
// counterpart to mainSolver.Reconstruct.
func (ss *startSolver) Reset() {
	ss.rebuild(ss.frame)
}
