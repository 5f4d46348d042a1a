package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffYAML_Identical(t *testing.T) {
	doc := []byte("name: ghz\nqubits: 5\n")
	out, err := DiffYAML("a", doc, "b", doc, false)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, DiffSummary(out), "No differences")
}

func TestDiffYAML_Changed(t *testing.T) {
	a := []byte("name: ghz\nqubits: 5\n")
	b := []byte("name: ghz\nqubits: 6\n")
	out, err := DiffYAML("a", a, "b", b, false)
	require.NoError(t, err)
	assert.Contains(t, out, "qubits")
}

func TestDiffYAML_BothEmpty(t *testing.T) {
	out, err := DiffYAML("a", nil, "b", nil, false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiffYAML_InvalidInput(t *testing.T) {
	_, err := DiffYAML("a", []byte("key: [unclosed"), "b", []byte("k: v"), false)
	assert.Error(t, err)
}
