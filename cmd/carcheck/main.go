// Command carcheck runs the CAR reachability engine over an AIGER
// circuit and reports SAFE or UNSAFE, per spec §6's external CLI
// surface — a thin, out-of-core integration shell around the engine.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xDarkicex/car/aiger"
	"github.com/xDarkicex/car/config"
	"github.com/xDarkicex/car/engine"
	"github.com/xDarkicex/car/evidence"
)

var (
	flagForward   bool
	flagBackward  bool
	flagEvidence  bool
	flagVerbose   bool
	flagMinimalUC bool
	flagThreshold = thresholdValue(config.DefaultThreshold)
)

// thresholdValue implements pflag.Value so --threshold accepts either a
// positive call count or the literal "never", per spec §9's enumerated
// { threshold: positive integer, never: ∞ } configuration knob.
type thresholdValue config.Threshold

func (t *thresholdValue) String() string {
	if config.Threshold(*t) == config.NeverReconstruct {
		return "never"
	}
	return strconv.Itoa(int(*t))
}

func (t *thresholdValue) Set(s string) error {
	if s == "never" {
		*t = thresholdValue(config.NeverReconstruct)
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("threshold must be a positive integer or \"never\": %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("threshold must be positive, got %d", n)
	}
	*t = thresholdValue(n)
	return nil
}

func (t *thresholdValue) Type() string { return "threshold" }

var _ pflag.Value = (*thresholdValue)(nil)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "carcheck <circuit.aag>",
	Short: "Check a safety property of an AIGER circuit with CAR",
	Long: `carcheck decides whether the bad-state output of an AIGER 1.9
circuit is reachable from its initial states, using Complementary
Approximate Reachability. It writes <circuit.aag>.res with "0" on UNSAFE
(followed by the trace when --evidence is given), or "1" plus the
inductive invariant on SAFE.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVar(&flagForward, "forward", false, "search forward from init (the default)")
	rootCmd.Flags().BoolVar(&flagBackward, "backward", false, "search backward from the bad state instead of forward from init")
	rootCmd.MarkFlagsMutuallyExclusive("forward", "backward")
	rootCmd.Flags().BoolVar(&flagEvidence, "evidence", false, "emit the full counterexample trace on UNSAFE")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "log the parsed circuit size, the search direction and the verdict")
	rootCmd.Flags().BoolVar(&flagMinimalUC, "minimal-uc", false, "record the minimal-UC toggle in the config (the engine does not read it)")
	rootCmd.Flags().Var(&flagThreshold, "threshold", `solver-reconstruction call threshold: a positive integer, or "never"`)
}

func run(cmd *cobra.Command, args []string) error {
	logger := logrus.New()
	if flagVerbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("carcheck: %w", err)
	}
	defer f.Close()

	circuit, err := aiger.Parse(f)
	if err != nil {
		return fmt.Errorf("carcheck: parsing %s: %w", path, err)
	}
	logger.WithFields(logrus.Fields{
		"inputs":  circuit.NumInputs(),
		"latches": circuit.NumLatches(),
		"vars":    circuit.NumVars(),
	}).Debug("parsed circuit")

	cfg := config.Default()
	if flagBackward {
		cfg.Direction = config.Backward
	}
	cfg.MinimalUC = flagMinimalUC
	cfg.Threshold = config.Threshold(flagThreshold)

	logger.WithField("direction", cfg.Direction).Info("starting car")
	result := engine.New(circuit, cfg).Run()
	logger.WithField("verdict", result.Verdict).Info("car finished")

	outPath := path + ".res"
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("carcheck: %w", err)
	}
	defer out.Close()

	switch result.Verdict {
	case engine.Unsafe:
		if flagEvidence {
			if err := evidence.WriteUnsafe(out, result.Trace); err != nil {
				return fmt.Errorf("carcheck: writing evidence: %w", err)
			}
		} else {
			fmt.Fprintln(out, "0")
		}
	case engine.Safe:
		if err := evidence.WriteSafe(out, result.Invariant); err != nil {
			return fmt.Errorf("carcheck: writing evidence: %w", err)
		}
	}

	fmt.Println(strings.ToUpper(result.Verdict.String()))
	return nil
}
