package evidence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/car/core"
	"github.com/xDarkicex/car/engine"
)

func TestWriteUnsafe(t *testing.T) {
	tr := &engine.Trace{
		Steps: []engine.TraceStep{
			{State: core.Cube{-1}, Inputs: nil},
			{State: core.Cube{1}, Inputs: core.Cube{2}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteUnsafe(&buf, tr))

	lines := buf.String()
	require.Contains(t, lines, "0\n")
	require.Contains(t, lines, "(2)\n")
	require.Contains(t, lines, "(1)\n")
	require.Contains(t, lines, "(-1)\n")
}

func TestWriteSafe(t *testing.T) {
	invariant := core.Frame{core.Cube{-1, 2}, core.Cube{3}}

	var buf bytes.Buffer
	require.NoError(t, WriteSafe(&buf, invariant))

	out := buf.String()
	require.Contains(t, out, "1\n")
	require.Contains(t, out, "(-1 ∧ 2)\n")
	require.Contains(t, out, "(3)\n")
}
