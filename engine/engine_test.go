package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/car/config"
	"github.com/xDarkicex/car/core"
)

// fixedModel is a minimal hand-built model.Model for the boundary
// scenarios spec §8 enumerates that don't need real arithmetic: a
// single latch, an init cube, a bad literal, and a transition relation
// supplied verbatim by the test.
type fixedModel struct {
	numInputs, numLatches, numVars int
	init                           core.Cube
	bad                            core.Literal
	clauses                        []core.Clause
	latches, inputs                []int
}

func (m *fixedModel) NumInputs() int      { return m.numInputs }
func (m *fixedModel) NumLatches() int     { return m.numLatches }
func (m *fixedModel) NumVars() int        { return m.numVars }
func (m *fixedModel) InitCube() core.Cube { return m.init.Clone() }
func (m *fixedModel) BadLit() core.Literal { return m.bad }

func (m *fixedModel) TransitionClauses() []core.Clause {
	out := make([]core.Clause, len(m.clauses))
	copy(out, m.clauses)
	return out
}

func (m *fixedModel) Latches() []int { return m.latches }
func (m *fixedModel) Inputs() []int  { return m.inputs }

func (m *fixedModel) Prime(l core.Literal) core.Literal {
	v := l.Var()
	if v > m.numVars {
		return l
	}
	if l.Sign() {
		return core.Literal(-(v + m.numVars))
	}
	return core.Literal(v + m.numVars)
}

func (m *fixedModel) Unprime(l core.Literal) core.Literal {
	v := l.Var()
	if v <= m.numVars {
		return l
	}
	base := v - m.numVars
	if l.Sign() {
		return core.Literal(-base)
	}
	return core.Literal(base)
}

// TestTriviallyUnsafe is spec §8 scenario 1: bad ≡ init. Expected UNSAFE
// at step 0, trace length 1.
func TestTriviallyUnsafe(t *testing.T) {
	m := &fixedModel{
		numLatches: 1,
		numVars:    1,
		init:       core.Cube{core.Literal(1)},
		bad:        core.Literal(1),
		latches:    []int{1},
		clauses: []core.Clause{
			// identity transition: the latch never changes
			{core.Literal(-2), core.Literal(1)},
			{core.Literal(2), core.Literal(-1)},
		},
	}

	result := New(m, config.Default()).Run()
	require.Equal(t, Unsafe, result.Verdict)
	require.NotNil(t, result.Trace)
	require.Len(t, result.Trace.Steps, 1)
}

// TestTriviallySafe is spec §8 scenario 2: bad ≡ false. Expected SAFE at
// k=0 with the trivial (empty) inductive invariant.
func TestTriviallySafe(t *testing.T) {
	m := &fixedModel{
		numLatches: 1,
		numVars:    2, // latch + a gate var fixed false for bad
		init:       core.Cube{core.Literal(-1)},
		bad:        core.Literal(2),
		latches:    []int{1},
		clauses: []core.Clause{
			{core.Literal(-3), core.Literal(1)}, // identity on the latch
			{core.Literal(3), core.Literal(-1)},
			{core.Literal(-2)}, // gate 2 fixed false: bad is unconditionally false
		},
	}

	result := New(m, config.Default()).Run()
	require.Equal(t, Safe, result.Verdict)
}

// TestLatchAlwaysFalseIsSafe is spec §8 scenario 6 in miniature: a
// latch that is only ever false, reset behavior folded into the
// transition relation directly (next = false always), bad ≡ latch.
// Expected SAFE with an inductive invariant blocking the latch being set.
func TestLatchAlwaysFalseIsSafe(t *testing.T) {
	m := &fixedModel{
		numLatches: 1,
		numVars:    1,
		init:       core.Cube{core.Literal(-1)},
		bad:        core.Literal(1),
		latches:    []int{1},
		clauses: []core.Clause{
			{core.Literal(-2)}, // primed latch forced false every step
		},
	}

	result := New(m, config.Default()).Run()
	require.Equal(t, Safe, result.Verdict)
	require.NotEmpty(t, result.Invariant, "F_i must actually exclude bad, not just be the empty frame")
}

// TestMultiStepUnsafeCounterexample is spec §8 scenarios 3/5 in
// miniature: a 2-bit counter counting 00 -> 01 -> 10 -> 11 with bad ≡
// both bits set, reachable only after three transitions. This is the
// boundary case that an engine returning SAFE at k=1 (never reaching the
// k=2 frame where the real counterexample lives) would pass scenarios 1
// and 2 but fail here: it exercises the retry loop in trySatisfyBy that
// must try every predecessor (not just the first) before giving up on a
// level, and the trace reconstruction across more than one hop.
func TestMultiStepUnsafeCounterexample(t *testing.T) {
	bit0, bit1 := core.Literal(1), core.Literal(2)
	gate := core.Literal(3)
	m := &fixedModel{
		numLatches: 2,
		numVars:    3,
		init:       core.Cube{core.Literal(-1), core.Literal(-2)}, // 00
		bad:        gate,
		latches:    []int{1, 2},
		clauses: []core.Clause{
			// bit0' <-> !bit0
			{core.Literal(-4), core.Literal(-1)},
			{core.Literal(4), core.Literal(1)},
			// bit1' <-> bit0 XOR bit1 (binary increment)
			{core.Literal(-5), bit0, bit1},
			{core.Literal(-5), bit0.Negate(), bit1.Negate()},
			{core.Literal(5), bit0.Negate(), bit1},
			{core.Literal(5), bit0, bit1.Negate()},
			// gate 3 <-> bit0 & bit1
			{gate.Negate(), bit0},
			{gate.Negate(), bit1},
			{gate, bit0.Negate(), bit1.Negate()},
		},
	}

	result := New(m, config.Default()).Run()
	require.Equal(t, Unsafe, result.Verdict)
	require.NotNil(t, result.Trace)
	require.Len(t, result.Trace.Steps, 4, "init, 01, 10, 11: three transitions")
	require.Equal(t, m.InitCube(), result.Trace.Steps[0].State)
}

// TestReconstructionRegressionAgreesWithNeverReconstruct is spec §8's
// regression property: running the same model with threshold=1 (forced
// reconstruction on every call) must reach the same verdict as
// threshold=never.
func TestReconstructionRegressionAgreesWithNeverReconstruct(t *testing.T) {
	m := &fixedModel{
		numLatches: 1,
		numVars:    1,
		init:       core.Cube{core.Literal(-1)},
		bad:        core.Literal(1),
		latches:    []int{1},
		clauses: []core.Clause{
			{core.Literal(-2), core.Literal(1)},
			{core.Literal(2), core.Literal(-1)},
		},
	}

	aggressive := config.Config{Direction: config.Forward, Threshold: 1}
	lazy := config.Config{Direction: config.Forward, Threshold: config.NeverReconstruct}

	got1 := New(m, aggressive).Run()
	got2 := New(m, lazy).Run()
	require.Equal(t, got2.Verdict, got1.Verdict)
}

// TestForwardBackwardRoundTrip is spec §8's round-trip property: forward
// and backward mode over the same model must agree on the verdict.
func TestForwardBackwardRoundTrip(t *testing.T) {
	m := &fixedModel{
		numLatches: 1,
		numVars:    1,
		init:       core.Cube{core.Literal(1)},
		bad:        core.Literal(1),
		latches:    []int{1},
		clauses: []core.Clause{
			{core.Literal(-2), core.Literal(1)},
			{core.Literal(2), core.Literal(-1)},
		},
	}

	forward := New(m, config.Default()).Run()

	backwardCfg := config.Default()
	backwardCfg.Direction = config.Backward
	backward := New(m, backwardCfg).Run()

	require.Equal(t, forward.Verdict, backward.Verdict)
}
