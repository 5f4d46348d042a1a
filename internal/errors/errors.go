// Package errors provides sentinel errors and structured error details for the mqtbench CLI.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input: an unknown name, a bad
	// optimization level, a missing target, or conflicting arguments.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a benchmark, gateset, device, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrCompilation indicates the compiler service failed on a circuit.
	ErrCompilation = errors.New("compilation error")

	// ErrExport indicates a circuit could not be serialized or written.
	ErrExport = errors.New("export error")
)

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is a file path, optionally with a line number.
	Location string

	// Field is the offending flag or config key.
	Field string

	// Context contains additional key-value context.
	Context map[string]string

	// Hint provides actionable guidance.
	Hint string

	// Cause is the underlying error.
	Cause error
}

// Error renders the detail block shown on the terminal. Context keys are
// printed in sorted order.
func (e *DetailError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Error: %s\n", e.Type)
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s: %s\n", name, value)
		}
	}
	field("Location", e.Location)
	field("Field", e.Field)
	for _, k := range slices.Sorted(maps.Keys(e.Context)) {
		field(k, e.Context[k])
	}

	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, field, hint string) error {
	return &DetailError{
		Type:    "validation failed",
		Message: message,
		Field:   field,
		Hint:    hint,
		Cause:   ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewExportError creates an export error for a destination.
func NewExportError(message, location string, context map[string]string) error {
	return &DetailError{
		Type:     "export failed",
		Message:  message,
		Location: location,
		Context:  context,
		Cause:    ErrExport,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
