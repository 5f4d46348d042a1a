package bench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/mqtbench/cli/internal/errors"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, []string{"alg", "indep", "nativegates", "mapped"},
		[]string{ALG.String(), INDEP.String(), NATIVEGATES.String(), MAPPED.String()})
	assert.Equal(t, "Level(7)", Level(7).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"alg", ALG},
		{"INDEP", INDEP},
		{" nativegates ", NATIVEGATES},
		{"mapped", MAPPED},
		{"0", ALG},
		{"3", MAPPED},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("routed")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func TestNeedsTarget(t *testing.T) {
	for _, l := range Levels() {
		assert.Equal(t, l >= NATIVEGATES, l.NeedsTarget(), l.String())
	}
	assert.Panics(t, func() { Level(9).NeedsTarget() })
}
