package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DefaultConfigIsValid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.NoError(t, v.Validate(DefaultConfig()))
}

func TestValidator_RejectsBadValues(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Defaults.OptLevel = 4
	cfg.Output.Format = "qpy"

	err = v.Validate(cfg)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "defaults.optLevel")
	assert.Contains(t, fields, "output.format")
}

func TestValidator_ValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	t.Run("valid file", func(t *testing.T) {
		path := writeConfig(t, "output:\n  format: qasm2\ntracing:\n  sampleRate: 1\n")
		assert.NoError(t, v.ValidateFile(path))
	})

	t.Run("empty file", func(t *testing.T) {
		assert.NoError(t, v.ValidateFile(writeConfig(t, "")))
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "kubeconfig: ~/.kube/config\n")
		err := v.ValidateFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kubeconfig")
	})

	t.Run("sample rate out of range", func(t *testing.T) {
		path := writeConfig(t, "tracing:\n  sampleRate: 2.5\n")
		assert.Error(t, v.ValidateFile(path))
	})
}
