// Package oracle wraps an incremental SAT solver behind the small surface
// the CAR engine needs: permanent and flag-guarded clause addition,
// assumption-based solving, model extraction and unsat-core extraction.
//
// The underlying solver is explicitly out of the CAR engine's scope (see
// spec §1 — "the underlying CDCL SAT solver (consumed as an oracle)"), so
// rather than reimplementing CDCL this package composes a real one,
// github.com/go-air/gini, the same way
// operator-lifecycle-manager/pkg/controller/registry/resolver/solver
// composes it behind litMapping/dict: assumptions go in via Assume,
// models come back via Value, and UNSAT cores come back via Why.
package oracle

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/xDarkicex/car/core"
)

const (
	satResult   = 1
	unsatResult = -1
)

// Phase records which query outcome the oracle last observed, so that
// Model/UnsatCore can reject a call made in the wrong phase.
type Phase int

const (
	// PhaseNone means no Solve call has completed yet.
	PhaseNone Phase = iota
	PhaseSAT
	PhaseUNSAT
)

// ContractError reports a caller violating the oracle's usage contract,
// e.g. calling Model after an UNSAT result. Per spec §7 this is a fatal
// assertion indicating an engine bug: Model and UnsatCore panic with a
// *ContractError, and nothing in this module recovers it, so the process
// ends with a nonzero exit status.
type ContractError struct {
	Op      string
	Message string
}

func (e *ContractError) Error() string {
	return "oracle contract violation in " + e.Op + ": " + e.Message
}

// Oracle is a single incremental SAT solver instance plus the
// bookkeeping CAR needs on top of it: flag-guarded clauses (so a clause
// can be disabled again without removing it) and the phase discipline
// from spec §4.1/§7.
type Oracle struct {
	g           inter.S
	phase       Phase
	assumptions []core.Literal
	nextFlagVar int
}

// New creates an empty oracle with no clauses and no assumptions. flagBase
// is the first variable id NewFlag will hand out; callers pick it above
// every variable id their own clauses use (current- and next-state, for
// the engine's solvers) so flag variables can never alias a model
// variable.
func New(flagBase int) *Oracle {
	if flagBase < 1 {
		flagBase = 1
	}
	return &Oracle{
		g:           gini.New(),
		phase:       PhaseNone,
		nextFlagVar: flagBase,
	}
}

func toZ(l core.Literal) z.Lit {
	return z.Dimacs2Lit(int(l))
}

func fromZ(m z.Lit) core.Literal {
	return core.Literal(m.Dimacs())
}

// NewFlag allocates a fresh activation-literal variable above flagBase,
// guaranteed distinct from every previously allocated flag.
func (o *Oracle) NewFlag() core.Literal {
	v := o.nextFlagVar
	o.nextFlagVar++
	return core.Literal(v)
}

// AddClause adds a permanent clause to the oracle.
func (o *Oracle) AddClause(c core.Clause) {
	for _, l := range c {
		o.g.Add(toZ(l))
	}
	o.g.Add(z.LitNull)
}

// AddClauseWithFlag adds the clause ¬flag ∨ ¬l1 ∨ … ∨ ¬ln — i.e. the
// blocking clause for cube, active only while flag is assumed true.
func (o *Oracle) AddClauseWithFlag(cube core.Cube, flag core.Literal) {
	clause := cube.Negate()
	full := make(core.Clause, 0, len(clause)+1)
	full = append(full, flag.Negate())
	full = append(full, clause...)
	o.AddClause(full)
}

// AddEquivalence Tseitin-encodes l ↔ (r1 ∧ r2 ∧ … ∧ rn) and adds the
// resulting clauses permanently.
func (o *Oracle) AddEquivalence(l core.Literal, rs ...core.Literal) {
	for _, c := range core.EquivalenceClauses(l, rs...) {
		o.AddClause(c)
	}
}

// SetAssumptions replaces the current assumption vector.
func (o *Oracle) SetAssumptions(lits []core.Literal) {
	o.assumptions = append(o.assumptions[:0], lits...)
	zs := make([]z.Lit, len(lits))
	for i, l := range lits {
		zs[i] = toZ(l)
	}
	o.g.Assume(zs...)
}

// Solve runs the oracle under the current assumptions and returns true
// iff satisfiable.
func (o *Oracle) Solve() bool {
	switch o.g.Solve() {
	case satResult:
		o.phase = PhaseSAT
		return true
	case unsatResult:
		o.phase = PhaseUNSAT
		return false
	default:
		o.phase = PhaseNone
		return false
	}
}

// Model returns the full assignment restricted to vars, valid only
// after a SAT result.
func (o *Oracle) Model(vars []int) core.Assignment {
	if o.phase != PhaseSAT {
		panic(&ContractError{Op: "Oracle.Model", Message: "called outside a SAT phase"})
	}
	out := make(core.Assignment, 0, len(vars))
	for _, v := range vars {
		lit := z.Dimacs2Lit(v)
		if o.g.Value(lit) {
			out = append(out, core.Literal(v))
		} else {
			out = append(out, core.Literal(-v))
		}
	}
	return out
}

// UnsatCore returns the subset of the current assumption literals that
// appear in the final conflict, valid only after an UNSAT result.
func (o *Oracle) UnsatCore() core.Cube {
	if o.phase != PhaseUNSAT {
		panic(&ContractError{Op: "Oracle.UnsatCore", Message: "called outside an UNSAT phase"})
	}
	whys := o.g.Why(nil)
	out := make(core.Cube, 0, len(whys))
	for _, m := range whys {
		out = append(out, fromZ(m))
	}
	return out
}
