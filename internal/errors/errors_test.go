//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrCompilation)
	assert.NotEqual(t, ErrExport, ErrCompilation)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "Invalid opt_level '4'. Must be in the range [0, 3].",
		Location: "/tmp/config.yaml",
		Field:    "--optimization-level",
		Context:  map[string]string{"Level": "mapped"},
		Hint:     "Use a value between 0 and 3",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: /tmp/config.yaml")
	assert.Contains(t, output, "Field: --optimization-level")
	assert.Contains(t, output, "Level: mapped")
	assert.Contains(t, output, "Invalid opt_level '4'")
	assert.Contains(t, output, "Hint: Use a value between 0 and 3")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("unknown level", "--level", "Use alg, indep, nativegates or mapped")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "unknown level", detail.Message)
	assert.Equal(t, "--level", detail.Field)
}

func TestNewExportError(t *testing.T) {
	err := NewExportError("disk full", "/tmp/out.qasm", nil)

	assert.True(t, errors.Is(err, ErrExport))
	assert.Contains(t, err.Error(), "Location: /tmp/out.qasm")
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "schema check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "schema check failed")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "validation error", err: ErrValidation, wantCode: ExitValidationError},
		{name: "wrapped validation error", err: fmt.Errorf("ctx: %w", ErrValidation), wantCode: ExitValidationError},
		{name: "not found", err: NewNotFoundError("x", "", ""), wantCode: ExitNotFound},
		{name: "compilation", err: Wrap(ErrCompilation, "routing failed"), wantCode: ExitCompilationError},
		{name: "export", err: NewExportError("x", "", nil), wantCode: ExitExportError},
		{name: "explicit exit error", err: &ExitError{Code: 42, Err: errors.New("boom")}, wantCode: 42},
		{name: "unknown error", err: errors.New("boom"), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := NewValidationError("bad", "", "")
	err := &ExitError{Code: ExitValidationError, Err: inner}

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, inner.Error(), err.Error())
	assert.Equal(t, "Validation Error", ExitCodeName(err.Code))
}

func TestDetailErrorContextOrder(t *testing.T) {
	detail := &DetailError{
		Type:    "export failed",
		Message: "cannot write",
		Context: map[string]string{"format": "qasm3", "benchmark": "ghz", "level": "indep"},
	}

	output := detail.Error()
	b := strings.Index(output, "benchmark: ghz")
	f := strings.Index(output, "format: qasm3")
	l := strings.Index(output, "level: indep")
	assert.True(t, b >= 0 && b < f && f < l, output)
}
