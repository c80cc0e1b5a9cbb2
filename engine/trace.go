package engine

import "github.com/xDarkicex/car/core"

// TraceStep is one step of a counterexample: the state at this step and
// the input assignment that produced the transition into it (empty for
// the root step).
type TraceStep struct {
	State  core.Cube
	Inputs core.Cube
}

// Trace is a concrete path from an initial state to a bad state, in
// root-to-bad order, the shape spec §4.6 and §6 describe as a
// two-column (input, state) evidence sequence.
type Trace struct {
	Steps []TraceStep
}

// buildTrace walks lastState's Parent chain (C6) and returns it in
// root-first order. Parent always points from a state toward the
// time-successor it was found justifying (arena.New's parent argument at
// each pid := arena.New(predCube, s.Depth+1, sid) call is the
// bad-ward state sid, one step closer to bad), so starting from
// lastState — the deepest state, the one level-0 connected directly to
// init — and walking Parent links already visits the chain in
// chronological, init-to-bad order; no reversal is needed. Each State's
// Inputs field is already a full assignment by construction — every cube
// on the B chain comes from an oracle.Model() call, which always returns
// a value for every variable asked about — so no additional SAT call is
// needed to fill don't-cares, unlike the general case spec §4.6
// anticipates.
func (e *Engine) buildTrace() *Trace {
	var chain []StateID
	for id := e.lastState; id != NoState; id = e.arena.Get(id).Parent {
		chain = append(chain, id)
	}
	steps := make([]TraceStep, 0, len(chain)+1)
	if e.tracePrependInit {
		steps = append(steps, TraceStep{State: e.model.InitCube()})
	}
	for _, id := range chain {
		st := e.arena.Get(id)
		steps = append(steps, TraceStep{State: st.Cube, Inputs: st.Inputs})
	}
	return &Trace{Steps: steps}
}
