package compiler

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/testutil"
)

func names(c *circuit.Circuit) []string {
	var out []string
	for _, in := range c.Instructions {
		out = append(out, in.Name)
	}
	return out
}

func TestRzWordExactAngles(t *testing.T) {
	tests := []struct {
		theta float64
		want  []string
	}{
		{0, nil},
		{math.Pi / 4, []string{"t"}},
		{math.Pi / 2, []string{"s"}},
		{math.Pi, []string{"z"}},
		{-math.Pi / 2, []string{"sdg"}},
		{-math.Pi / 4, []string{"tdg"}},
		{7 * math.Pi / 4, []string{"tdg"}},
		{3 * math.Pi / 4, []string{"s", "t"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rzWord(tt.theta), "theta %v", tt.theta)
	}
}

func TestSynthesizeDiscreteExact(t *testing.T) {
	c := circuit.New("exact", 2)
	c.RZ(circuit.Num(math.Pi/2), 0)
	c.H(1)
	c.CX(0, 1)
	c.RX(circuit.Num(math.Pi/4), 1)
	c.RY(circuit.Num(-math.Pi/2), 0)
	c.P(circuit.Num(3*math.Pi/4), 1)

	out, err := New().SynthesizeDiscrete(context.Background(), c)
	require.NoError(t, err)

	for _, name := range names(out) {
		assert.Contains(t, CliffordT, name)
	}
	testutil.AssertEquivalent(t, c, out)
}

func TestSynthesizeDiscreteSingleRotation(t *testing.T) {
	c := circuit.New("s", 1)
	c.RZ(circuit.Num(math.Pi/2), 0)

	out, err := New().SynthesizeDiscrete(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"s"}, names(out))
}

func TestSynthesizeDiscreteApproximates(t *testing.T) {
	c := circuit.New("approx", 1)
	c.RZ(circuit.Num(0.3), 0)
	c.U(circuit.Num(1.2), circuit.Num(0.1), circuit.Num(-0.7), 0)

	out, err := New().SynthesizeDiscrete(context.Background(), c)
	require.NoError(t, err)
	require.NotEmpty(t, out.Instructions)
	for _, name := range names(out) {
		assert.Contains(t, []string{"h", "t", "tdg", "s", "sdg", "z"}, name)
	}
}

func TestSynthesizeDiscreteRejectsMeasurement(t *testing.T) {
	c := circuit.New("m", 1)
	c.RZ(circuit.Num(0.3), 0)
	c.MeasureAll()

	_, err := New().SynthesizeDiscrete(context.Background(), c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrCompilation))
}

func TestSynthesizeDiscreteRejectsUnboundParameter(t *testing.T) {
	c := circuit.New("free", 1)
	c.RZ(circuit.Param("theta"), 0)

	_, err := New().SynthesizeDiscrete(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bound parameters")
}

func TestSynthesizeDiscreteKeepsInput(t *testing.T) {
	c := circuit.New("keep", 1)
	c.RZ(circuit.Num(math.Pi/4), 0)

	_, err := New().SynthesizeDiscrete(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"rz"}, names(c))
}
