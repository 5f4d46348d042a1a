package cmdutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqtbench/cli/internal/bench"
	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/output"
)

func captureLogs(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Verbose: verbose, Timestamps: output.BoolPtr(false)})
	output.SetLogWriter(&buf)
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })
	return &buf
}

func TestPrintGenerateError_DetailWithHint(t *testing.T) {
	logs := captureLogs(t, false)

	PrintGenerateError("generation failed",
		oerrors.NewValidationError("invalid level 'x'", "level", "valid levels: alg, indep"))

	out := logs.String()
	assert.Contains(t, out, "generation failed: invalid level 'x'")
	assert.Contains(t, out, "hint: valid levels: alg, indep")
}

func TestPrintGenerateError_PlainError(t *testing.T) {
	logs := captureLogs(t, false)

	PrintGenerateError("generation failed", errors.New("boom"))

	out := logs.String()
	assert.Contains(t, out, "generation failed")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "hint")
}

func summaryResult() *GenerateResult {
	c := circuit.New("ghz", 2)
	c.H(1)
	c.CX(1, 0)
	c.MeasureAll()
	return &GenerateResult{Circuit: c, Level: bench.INDEP, OptLevel: 2, Name: "ghz", Elapsed: 1500 * time.Microsecond}
}

func TestWriteGenerateSummary(t *testing.T) {
	logs := captureLogs(t, false)
	WriteGenerateSummary(summaryResult(), false)

	out := logs.String()
	assert.Contains(t, out, "ghz")
	assert.Contains(t, out, "indep generated")
	assert.NotContains(t, out, "gates=")
}

func TestWriteGenerateSummary_Verbose(t *testing.T) {
	logs := captureLogs(t, true)
	WriteGenerateSummary(summaryResult(), true)

	out := logs.String()
	assert.Contains(t, out, "gates=")
	assert.Contains(t, out, "depth=")
	assert.Contains(t, out, "gate count")
	assert.Contains(t, out, "gate=cx")
}

func TestWriteStructured(t *testing.T) {
	type entry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	v := []entry{{Name: "ghz", Count: 3}}

	var js bytes.Buffer
	require.NoError(t, WriteStructured(&js, output.FormatJSON, v))
	var decoded []entry
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, v, decoded)

	var ym bytes.Buffer
	require.NoError(t, WriteStructured(&ym, output.FormatYAML, v))
	assert.Equal(t, "- count: 3\n  name: ghz\n", ym.String())

	assert.Error(t, WriteStructured(&bytes.Buffer{}, output.FormatTable, v))
}
