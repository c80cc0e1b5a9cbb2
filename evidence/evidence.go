// Package evidence serializes an engine.Result to the on-disk evidence
// format described in spec §6: a verdict header line, then either the
// input/latch trace (UNSAFE) or the inductive invariant's cubes (SAFE).
// Evidence serialization is explicitly out of the CAR engine's core
// scope — it is a pure, external presentation of whatever engine.Result
// already computed.
package evidence

import (
	"bufio"
	"io"

	"github.com/xDarkicex/car/core"
	"github.com/xDarkicex/car/engine"
)

const (
	headerUnsafe = "0"
	headerSafe   = "1"
)

// WriteUnsafe writes the UNSAFE evidence format for tr: the header line,
// then the input sequence, then the latch-state sequence, one cube per
// line in each block.
func WriteUnsafe(w io.Writer, tr *engine.Trace) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(headerUnsafe + "\n"); err != nil {
		return err
	}
	for _, step := range tr.Steps {
		if _, err := bw.WriteString(step.Inputs.String() + "\n"); err != nil {
			return err
		}
	}
	for _, step := range tr.Steps {
		if _, err := bw.WriteString(step.State.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSafe writes the SAFE evidence format: the header line, then the
// set of cubes making up the inductive invariant, one per line.
func WriteSafe(w io.Writer, invariant core.Frame) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(headerSafe + "\n"); err != nil {
		return err
	}
	for _, cube := range invariant {
		if _, err := bw.WriteString(cube.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
