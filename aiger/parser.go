// Package aiger parses the AIGER 1.9 ASCII circuit format ("aag" header)
// into a model.Model: the external collaborator the CAR engine is built
// against. AIGER parsing and circuit-to-CNF encoding are explicitly out
// of the CAR engine's core scope (spec §1); this package is the one
// concrete producer of that interface in this repository, so the engine
// has something real to run against end to end.
package aiger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/xDarkicex/car/core"
)

// ParseError reports a malformed AIGER file, fatal per spec §7: reported
// to the user before the engine is constructed.
type ParseError struct {
	Line    int
	Message string
	cause   error
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("aiger: line %d: %s: %v", e.Line, e.Message, e.cause)
	}
	return fmt.Sprintf("aiger: line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error { return e.cause }

// andGate is one two-input AND gate: lhs ↔ rhs0 ∧ rhs1, all three
// expressed as aiger literals (even = variable, odd = negated variable).
type andGate struct {
	lhs, rhs0, rhs1 int
}

// latch is one latch: its own literal, the literal it updates to, and
// its reset discipline.
type latch struct {
	lit, next int
	resetSet  bool // true if an explicit reset field was present
	reset     int  // 0, 1, or lit itself (no-reset / don't-care)
}

// Circuit is the parsed AIGER circuit, implementing model.Model. It is
// the adapted descendant of the teacher's Circuit/Gate pair in
// gates.go: the same "named inputs + ordered gate list, evaluate
// front-to-back" shape, generalized from a single-gate toy simulator to
// a full AND-inverter graph with latches.
type Circuit struct {
	maxVar   int
	inputs   []int
	latches  []latch
	badLit   int
	gates    []andGate
	trueVar  int // a fresh variable fixed true, standing in for aiger literal 1
	numVars  int // maxVar + 1 (trueVar), before doubling for the primed copy
}

// Parse reads an AIGER 1.9 ASCII ("aag") file from r.
func Parse(r io.Reader) (*Circuit, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	nextLine := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			return line, true
		}
		return "", false
	}

	header, ok := nextLine()
	if !ok {
		return nil, &ParseError{Line: lineNo, Message: "empty file"}
	}
	fields := strings.Fields(header)
	if len(fields) != 6 || fields[0] != "aag" {
		return nil, &ParseError{Line: lineNo, Message: "expected 'aag M I L O A' header, got " + header}
	}
	nums := make([]int, 5)
	for i, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Message: "malformed header field", cause: pkgerrors.Wrap(err, f)}
		}
		nums[i] = v
	}
	maxVar, numInputs, numLatches, numOutputs, numAnds := nums[0], nums[1], nums[2], nums[3], nums[4]
	if numOutputs != 1 {
		return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("expected exactly one output (the bad-state literal), got %d", numOutputs)}
	}

	c := &Circuit{maxVar: maxVar}

	for i := 0; i < numInputs; i++ {
		line, ok := nextLine()
		if !ok {
			return nil, &ParseError{Line: lineNo, Message: "unexpected EOF reading inputs"}
		}
		lit, err := strconv.Atoi(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Message: "malformed input literal", cause: err}
		}
		c.inputs = append(c.inputs, lit)
	}

	for i := 0; i < numLatches; i++ {
		line, ok := nextLine()
		if !ok {
			return nil, &ParseError{Line: lineNo, Message: "unexpected EOF reading latches"}
		}
		parts := strings.Fields(line)
		if len(parts) < 2 || len(parts) > 3 {
			return nil, &ParseError{Line: lineNo, Message: "malformed latch line: " + line}
		}
		l := latch{}
		var err error
		if l.lit, err = strconv.Atoi(parts[0]); err != nil {
			return nil, &ParseError{Line: lineNo, Message: "malformed latch literal", cause: err}
		}
		if l.next, err = strconv.Atoi(parts[1]); err != nil {
			return nil, &ParseError{Line: lineNo, Message: "malformed latch next-state literal", cause: err}
		}
		if len(parts) == 3 {
			if l.reset, err = strconv.Atoi(parts[2]); err != nil {
				return nil, &ParseError{Line: lineNo, Message: "malformed latch reset literal", cause: err}
			}
			l.resetSet = true
		}
		c.latches = append(c.latches, l)
	}

	line, ok := nextLine()
	if !ok {
		return nil, &ParseError{Line: lineNo, Message: "unexpected EOF reading the bad-state output"}
	}
	bad, err := strconv.Atoi(line)
	if err != nil {
		return nil, &ParseError{Line: lineNo, Message: "malformed output literal", cause: err}
	}
	c.badLit = bad

	for i := 0; i < numAnds; i++ {
		line, ok := nextLine()
		if !ok {
			return nil, &ParseError{Line: lineNo, Message: "unexpected EOF reading AND gates"}
		}
		parts := strings.Fields(line)
		if len(parts) != 3 {
			return nil, &ParseError{Line: lineNo, Message: "malformed AND gate line: " + line}
		}
		g := andGate{}
		if g.lhs, err = strconv.Atoi(parts[0]); err != nil {
			return nil, &ParseError{Line: lineNo, Message: "malformed gate lhs", cause: err}
		}
		if g.rhs0, err = strconv.Atoi(parts[1]); err != nil {
			return nil, &ParseError{Line: lineNo, Message: "malformed gate rhs0", cause: err}
		}
		if g.rhs1, err = strconv.Atoi(parts[2]); err != nil {
			return nil, &ParseError{Line: lineNo, Message: "malformed gate rhs1", cause: err}
		}
		c.gates = append(c.gates, g)
	}

	// aiger variable 0 is reserved for the constant; literal 1 means
	// "true". We give it a real variable, fixed true by a unit clause in
	// TransitionClauses, so every literal in the model maps onto a
	// normal signed core.Literal with no special case at call sites.
	c.trueVar = maxVar + 1
	c.numVars = c.trueVar

	return c, nil
}

// aigerLit converts an AIGER literal (even=var, odd=negated) to a
// core.Literal, redirecting the reserved constant variable 0 to trueVar.
func (c *Circuit) aigerLit(l int) core.Literal {
	v := l / 2
	neg := l%2 == 1
	if v == 0 {
		v = c.trueVar
	}
	if neg {
		return core.Literal(-v)
	}
	return core.Literal(v)
}

func (c *Circuit) NumInputs() int  { return len(c.inputs) }
func (c *Circuit) NumLatches() int { return len(c.latches) }
func (c *Circuit) NumVars() int    { return c.numVars }

func (c *Circuit) BadLit() core.Literal {
	return c.aigerLit(c.badLit)
}

func (c *Circuit) Latches() []int {
	out := make([]int, len(c.latches))
	for i, l := range c.latches {
		out[i] = l.lit / 2
	}
	return out
}

func (c *Circuit) Inputs() []int {
	out := make([]int, len(c.inputs))
	for i, l := range c.inputs {
		out[i] = l / 2
	}
	return out
}

// InitCube returns the cube of latches with a determined reset value.
// A latch with no reset field defaults to 0 (the classic AIGER 1.0
// convention); a latch whose reset field equals its own literal is
// nondeterministic at init and is omitted, leaving InitCube a partial
// cube over the remaining latches.
func (c *Circuit) InitCube() core.Cube {
	var cube core.Cube
	for _, l := range c.latches {
		v := l.lit / 2
		switch {
		case !l.resetSet:
			cube = append(cube, core.Literal(-v))
		case l.reset == 0:
			cube = append(cube, core.Literal(-v))
		case l.reset == 1:
			cube = append(cube, core.Literal(v))
		case l.reset == l.lit:
			// nondeterministic reset: omit, per spec's "free latches
			// omitted" partial-cube semantics.
		default:
			cube = append(cube, c.aigerLit(l.reset))
		}
	}
	return cube
}

// Prime maps a current-state literal to its next-state copy: variable v
// becomes v + NumVars(), preserving sign. Unprime is its inverse. Prime
// is the identity on variables above NumVars() and Unprime on variables
// at or below it; input variables lie in 1..NumVars() and are mapped
// like any other variable there.
func (c *Circuit) Prime(l core.Literal) core.Literal {
	v := l.Var()
	if v > c.numVars {
		return l
	}
	primed := v + c.numVars
	if l.Sign() {
		return core.Literal(-primed)
	}
	return core.Literal(primed)
}

func (c *Circuit) Unprime(l core.Literal) core.Literal {
	v := l.Var()
	if v <= c.numVars {
		return l
	}
	base := v - c.numVars
	if l.Sign() {
		return core.Literal(-base)
	}
	return core.Literal(base)
}

// TransitionClauses returns the Tseitin CNF of the AND-gate network plus
// the per-latch next-state equivalence, exactly the two pieces
// described in SPEC_FULL §4.0: gates over the unprimed variable space,
// and Prime(latch) ↔ next-literal(latch) tying the primed copy to it.
func (c *Circuit) TransitionClauses() []core.Clause {
	var clauses []core.Clause

	// Fix the constant variable true.
	clauses = append(clauses, core.Clause{core.Literal(c.trueVar)})

	for _, g := range c.gates {
		lhs := c.aigerLit(g.lhs)
		r0 := c.aigerLit(g.rhs0)
		r1 := c.aigerLit(g.rhs1)
		// lhs <-> r0 /\ r1
		clauses = append(clauses, core.EquivalenceClauses(lhs, r0, r1)...)
	}

	for _, l := range c.latches {
		v := l.lit / 2
		primed := c.Prime(core.Literal(v))
		next := c.aigerLit(l.next)
		// primed <-> next
		clauses = append(clauses, core.EquivalenceClauses(primed, next)...)
	}

	return clauses
}
