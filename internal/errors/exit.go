package errors

import "errors"

// Exit codes returned by the mqtbench binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid arguments or configuration.
	ExitValidationError = 2

	// ExitCompilationError indicates the compiler service rejected a circuit.
	ExitCompilationError = 3

	// ExitNotFound indicates a benchmark, target, or file was not found.
	ExitNotFound = 5

	// ExitExportError indicates the circuit could not be written.
	ExitExportError = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is set when the command layer already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrCompilation):
		return ExitCompilationError
	case errors.Is(err, ErrExport):
		return ExitExportError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitCompilationError:
		return "Compilation Error"
	case ExitNotFound:
		return "Not Found"
	case ExitExportError:
		return "Export Error"
	default:
		return "Unknown"
	}
}
