package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/mqtbench/cli/internal/errors"
)

func saveSnapshot(t *testing.T, dir string, qubits string) string {
	t.Helper()
	out, err := execute(t, "generate", "--level", "alg", "--algorithm", "ghz", "--num-qubits", qubits,
		"--output-format", "snapshot", "--target-directory", dir)
	require.NoError(t, err)
	return strings.TrimSpace(out)
}

func TestDiff(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	three := saveSnapshot(t, dir, "3")
	four := saveSnapshot(t, dir, "4")

	out, err := execute(t, "diff", "--no-color", three, three)
	require.NoError(t, err)
	assert.Contains(t, out, "No differences.")

	out, err = execute(t, "diff", "--no-color", three, four)
	require.NoError(t, err)
	assert.Contains(t, out, "numQubits")
	assert.Contains(t, out, "path(s) differ.")
}

func TestDiff_IgnoresSnapshotIdentity(t *testing.T) {
	isolate(t)
	first := saveSnapshot(t, t.TempDir(), "3")
	second := saveSnapshot(t, t.TempDir(), "3")

	out, err := execute(t, "diff", "--no-color", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "No differences.")
}

func TestDiff_Errors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	snap := saveSnapshot(t, dir, "2")
	qasm := filepath.Join(dir, "plain.qasm")
	require.NoError(t, os.WriteFile(qasm, []byte("OPENQASM 3.0;\n"), 0o600))

	_, err := execute(t, "diff", snap, filepath.Join(dir, "missing.qsnap"))
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))

	_, err = execute(t, "diff", snap, qasm)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitExportError, oerrors.ExitCodeFromError(err))

	_, err = execute(t, "diff", snap)
	require.Error(t, err)
}
