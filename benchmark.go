// Package car re-exposes the CAR engine's construction under the
// module's root import path and offers a small benchmarking harness for
// comparing verdicts across configurations — the adapted descendant of
// the teacher's root-level Operation/Benchmark pair, generalized from
// timing ad hoc boolean closures to timing and cross-checking whole CAR
// runs.
package car

import (
	"time"

	"github.com/xDarkicex/car/config"
	"github.com/xDarkicex/car/engine"
	"github.com/xDarkicex/car/model"
)

// Run is the module's entry point: construct an Engine over m with cfg
// and drive it to a verdict.
func Run(m model.Model, cfg config.Config) *engine.Result {
	return engine.New(m, cfg).Run()
}

// RunResult pairs a benchmarked configuration's outcome with how long it
// took, so Benchmark can report both the verdict and the cost of
// reaching it.
type RunResult struct {
	// Name is a descriptive label for the configuration that produced
	// this result.
	Name     string
	Verdict  engine.Verdict
	Duration time.Duration
}

// Benchmark runs m under each of a set of named configurations and
// records each run's verdict and wall time. Useful for the regression
// property spec §8 calls for — running the same model at threshold 1
// and threshold ∞ and comparing verdicts — without writing that loop out
// by hand at every call site.
type Benchmark struct {
	model   model.Model
	configs []namedConfig

	// Results holds one RunResult per configuration, in Add order, after
	// Run executes.
	Results []RunResult
}

type namedConfig struct {
	name string
	cfg  config.Config
}

// NewBenchmark creates a benchmark harness over m. The harness starts
// with no configurations; add them with Add.
func NewBenchmark(m model.Model) *Benchmark {
	return &Benchmark{model: m}
}

// Add registers a named configuration to run when Run is called.
func (b *Benchmark) Add(name string, cfg config.Config) {
	b.configs = append(b.configs, namedConfig{name: name, cfg: cfg})
}

// Run executes every registered configuration in order, populating
// Results, and returns it for convenience.
func (b *Benchmark) Run() []RunResult {
	b.Results = make([]RunResult, 0, len(b.configs))
	for _, nc := range b.configs {
		start := time.Now()
		result := engine.New(b.model, nc.cfg).Run()
		b.Results = append(b.Results, RunResult{
			Name:     nc.name,
			Verdict:  result.Verdict,
			Duration: time.Since(start),
		})
	}
	return b.Results
}

// AllAgree reports whether every recorded result reached the same
// verdict — the property the threshold-1-vs-threshold-∞ regression
// check and the forward/backward round-trip check (spec §8) both boil
// down to.
func (b *Benchmark) AllAgree() bool {
	if len(b.Results) == 0 {
		return true
	}
	first := b.Results[0].Verdict
	for _, r := range b.Results[1:] {
		if r.Verdict != first {
			return false
		}
	}
	return true
}
