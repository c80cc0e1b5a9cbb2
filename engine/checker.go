package engine

import (
	"context"
	"errors"

	"github.com/xDarkicex/car/config"
	"github.com/xDarkicex/car/core"
	"github.com/xDarkicex/car/model"
	"github.com/xDarkicex/car/oracle"
)

// ErrIndeterminate is returned via Result.Err when CheckWithContext's
// context is canceled before a verdict was reached.
var ErrIndeterminate = errors.New("car: indeterminate: context canceled before a verdict was reached")

// Checker is an alias for Engine: the name SPEC_FULL's API surface uses
// for the type CheckWithContext hangs off.
type Checker = Engine

// Verdict is the engine's final answer.
type Verdict int

const (
	Unknown Verdict = iota
	Safe
	Unsafe
)

func (v Verdict) String() string {
	switch v {
	case Safe:
		return "safe"
	case Unsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}

// Result is what Run returns: a Verdict plus, depending on which one,
// a counterexample Trace or an inductive Invariant witness.
type Result struct {
	Verdict   Verdict
	Trace     *Trace
	Invariant core.Frame
	Err       error
}

// Engine is the Reachability Engine (C5): the CAR main loop. It owns the
// Main, Start and Invariant solvers, the Fsequence, the Bsequence and
// the State arena, and drives them to either a concrete counterexample
// or an inductive invariant.
type Engine struct {
	model model.Model
	dir   config.Direction
	cfg   config.Config

	main  *mainSolver
	start *startSolver
	inv   *invSolver

	// initOracle answers the "does s connect directly to init" query at
	// the base of every try_satisfy_by descent (spec §4.5 step 1). It is
	// rebuilt alongside nothing else — it carries no frame clauses, only
	// the transition relation and the initial-state unit clauses, so it
	// never needs periodic reconstruction.
	initOracle *oracle.Oracle

	arena Arena
	F     []core.Frame
	B     [][]StateID

	lastState StateID

	// tracePrependInit is set once trySatisfyBy's level-0 base case
	// succeeds, so buildTrace knows to prepend a synthetic init step
	// ahead of the chain it walks from lastState. immediateSatisfiable's
	// short-circuit path builds its own self-contained one-step trace and
	// never sets this.
	tracePrependInit bool

	// ctx is consulted between (not during) SAT calls, at the loop
	// boundaries in CheckWithContext and trySatisfy, so a cancellation
	// never interrupts an in-flight Solve.
	ctx context.Context
}

// New constructs an Engine over m with the given configuration. Call Run
// to drive it to a verdict.
func New(m model.Model, cfg config.Config) *Engine {
	e := &Engine{
		model:     m,
		dir:       cfg.Direction,
		cfg:       cfg,
		lastState: NoState,
	}
	e.main = newMainSolver(m, e.dir, cfg.EffectiveThreshold())
	e.start = newStartSolver(m, e.dir, cfg.EffectiveThreshold())
	e.inv = newInvSolver(m, e.dir)

	e.initOracle = oracle.New(flagVarBase(m))
	for _, c := range m.TransitionClauses() {
		e.initOracle.AddClause(c)
	}
	for _, l := range m.InitCube() {
		e.initOracle.AddClause(core.Clause{l})
	}
	return e
}

func (e *Engine) appendB(depth int, sid StateID) {
	for len(e.B) <= depth {
		e.B = append(e.B, nil)
	}
	e.B[depth] = append(e.B[depth], sid)
}

// Run executes car_initialization followed by the car_check main loop
// until a verdict is reached. It is equivalent to CheckWithContext with
// a context that is never canceled.
func (e *Engine) Run() *Result {
	return e.CheckWithContext(context.Background())
}

// CheckWithContext runs the same car_check main loop as Run, but
// consults ctx for cancellation between solver calls — never during one,
// per spec §5's "no operation suspends". A Result with Verdict Unknown
// and Err set to ErrIndeterminate means ctx was canceled before the loop
// reached a verdict.
func (e *Engine) CheckWithContext(ctx context.Context) *Result {
	e.ctx = ctx
	if res := e.carInitialization(); res != nil {
		return res
	}

	k := 0
	for {
		e.F = append(e.F, core.Frame{})
		e.main.AddNewFrame(k+1, core.Frame{})

		if e.trySatisfy(k) {
			return &Result{Verdict: Unsafe, Trace: e.buildTrace()}
		}
		if e.canceled() {
			return e.indeterminate()
		}
		if ok, level := e.invariantFound(k); ok {
			return &Result{Verdict: Safe, Invariant: e.F[level-1].Clone()}
		}
		k++
	}
}

// canceled reports whether e.ctx has been canceled, without blocking.
func (e *Engine) canceled() bool {
	if e.ctx == nil {
		return false
	}
	select {
	case <-e.ctx.Done():
		return true
	default:
		return false
	}
}

func (e *Engine) indeterminate() *Result {
	return &Result{Verdict: Unknown, Err: ErrIndeterminate}
}

// carInitialization seeds F_0, checks the immediate-counterexample short
// circuit (init ∧ bad SAT with no transitions at all), and probes
// whether the far-side predicate is satisfiable at all — if it never is,
// the property holds trivially regardless of reachability (spec §7's
// "inconsistent frame ⇒ immediate SAFE"). It returns non-nil only when
// one of those short circuits fires; otherwise the main loop proceeds.
func (e *Engine) carInitialization() *Result {
	f0 := core.Frame{}
	if e.dir == config.Backward {
		f0 = core.Frame{e.model.InitCube().Clone()}
	}
	e.F = append(e.F, f0)
	e.main.AddNewFrame(0, f0)

	if sat, cube, inputs := e.immediateSatisfiable(); sat {
		sid := e.arena.New(cube, 0, NoState)
		e.arena.Get(sid).Inputs = inputs
		e.lastState = sid
		return &Result{Verdict: Unsafe, Trace: e.buildTrace()}
	}

	if _, ok := e.start.Enumerate(); !ok {
		return &Result{Verdict: Safe, Invariant: core.Frame{}}
	}
	return nil
}

// immediateSatisfiable checks init ∧ bad directly, the depth-0
// counterexample spec §8 scenario 1 ("trivially unsafe") exercises.
func (e *Engine) immediateSatisfiable() (sat bool, cube, inputs core.Cube) {
	oc := oracle.New(flagVarBase(e.model))
	for _, c := range e.model.TransitionClauses() {
		oc.AddClause(c)
	}
	for _, l := range e.model.InitCube() {
		oc.AddClause(core.Clause{l})
	}
	oc.AddClause(core.Clause{e.model.BadLit()})
	oc.SetAssumptions(nil)
	if !oc.Solve() {
		return false, nil, nil
	}
	return true, oc.Model(e.model.Latches()), oc.Model(e.model.Inputs())
}

// trySatisfy enumerates every start state the Start Solver can produce
// in this pass and attempts to connect each one to init within level
// steps.
func (e *Engine) trySatisfy(level int) bool {
	e.start.BeginPass()
	for {
		if e.canceled() {
			return false
		}
		if e.start.NeedsReconstruct() {
			e.start.Reset()
		}
		cube, ok := e.start.Enumerate()
		if !ok {
			return false
		}
		sid := e.arena.New(cube, 0, NoState)
		e.appendB(0, sid)
		if e.trySatisfyBy(level, sid) {
			return true
		}
	}
}

// trySatisfyBy is the depth-first descent of spec §4.5: at level 0 it
// checks the direct connection to init; otherwise it queries the Main
// Solver for a predecessor within F_level, recursing on SAT and
// generalizing-then-pushing-deeper on UNSAT.
func (e *Engine) trySatisfyBy(level int, sid StateID) bool {
	s := e.arena.Get(sid)

	if level == 0 {
		sat, inputs, uc := e.connectsToInit(s.Cube)
		if !sat {
			// s does not connect to init in one transition; the witness
			// is a blocking generalization of s.Cube, and it belongs in
			// F_1 (level+1 with level==0), the same frame the caller's
			// query against F_level will be re-run against.
			e.updateFSequence(uc, level+1)
			return false
		}
		// s connects to init in one transition. lastState already chains
		// to s via Parent links set up by the earlier pid := arena.New
		// calls up the recursion; buildTrace prepends the synthetic init
		// step itself, so there is no parent to materialize here.
		s.Inputs = inputs
		e.lastState = sid
		e.tracePrependInit = true
		return true
	}

	for {
		if e.main.NeedsReconstruct() {
			e.main.Reconstruct(e.F)
		}
		e.main.SetAssumption(s.Cube, level)
		if !e.main.Solve() {
			break
		}
		predCube := e.main.GetState()
		inputs := e.main.GetInputs()
		pid := e.arena.New(predCube, s.Depth+1, sid)
		e.arena.Get(pid).Inputs = inputs
		e.appendB(s.Depth+1, pid)
		if e.trySatisfyBy(level-1, pid) {
			return true
		}
		// predCube's own descent already pushed a blocking generalization
		// into F_level before returning false, so the next Solve() call
		// above will not hand back predCube (or anything subsuming its
		// generalization) again: the loop makes progress every iteration.
	}

	uc := e.main.GetUC()
	e.updateFSequence(uc, level+1)
	newLevel := e.getNewLevel(s.Cube, level)
	if newLevel < 0 {
		return false
	}
	return e.trySatisfyBy(newLevel, sid)
}

// connectsToInit answers "does cube have a transition directly from
// init", the base case of try_satisfy_by. On failure it also returns a
// generalized blocking cube extracted from the unsat core, unprimed back
// to canonical (current-state) literal space when forward mode primed
// the assumption, so the caller can push it into a frame just as the
// Main Solver's own UNSAT branch does.
func (e *Engine) connectsToInit(cube core.Cube) (sat bool, inputs core.Cube, uc core.Cube) {
	side := cube
	if e.dir == config.Forward {
		side = primeCube(e.model, cube)
	}
	e.initOracle.SetAssumptions(side)
	if !e.initOracle.Solve() {
		raw := e.initOracle.UnsatCore()
		uc = make(core.Cube, 0, len(raw))
		for _, l := range raw {
			if e.dir == config.Forward {
				uc = append(uc, e.model.Unprime(l))
			} else {
				uc = append(uc, l)
			}
		}
		return false, nil, uc
	}
	return true, e.initOracle.Model(e.model.Inputs()), nil
}

// updateFSequence adds cube to F_level, the generalized-cube
// counterpart of push_to_frame used directly from try_satisfy_by.
func (e *Engine) updateFSequence(cube core.Cube, level int) {
	e.pushToFrame(cube, level)
}

// pushToFrame adds cube to F_level, informs the Main Solver, and informs
// the Start Solver too when level is the newest frame.
func (e *Engine) pushToFrame(cube core.Cube, level int) {
	e.F[level] = append(e.F[level], cube)
	e.main.AddClauseToFrame(cube, level)
	if level == len(e.F)-1 {
		e.start.AddToFrame(cube)
	}
}

// getNewLevel walks frames downward from level to 1 and stops at the
// first (highest) j whose frame does not already block cube, returning
// j-1 as the level to retry the descent at. Returns -1 if every frame
// down to F_1 already blocks it.
func (e *Engine) getNewLevel(cube core.Cube, level int) int {
	for j := level; j >= 1; j-- {
		if !frameBlocks(e.F[j], cube) {
			return j - 1
		}
	}
	return -1
}

// frameBlocks reports whether frame already has a cube that would block
// cube too: any cube' ⊆ cube means ¬cube' already implies ¬cube.
func frameBlocks(frame core.Frame, cube core.Cube) bool {
	for _, c := range frame {
		if cube.Subsumes(c) {
			return true
		}
	}
	return false
}

// invariantFound checks F_1..F_k for inductiveness (spec §4.5).
func (e *Engine) invariantFound(k int) (bool, int) {
	for i := 1; i <= k; i++ {
		if e.invariantFoundAt(i) {
			return true, i
		}
	}
	return false, 0
}

func (e *Engine) invariantFoundAt(i int) bool {
	return e.inv.Inductive(e.F[i], e.F[i-1])
}
