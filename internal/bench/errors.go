package bench

import (
	"fmt"

	oerrors "github.com/mqtbench/cli/internal/errors"
)

// InvalidArgumentError reports an illegal combination of benchmark, circuit
// and size.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

func (e *InvalidArgumentError) Unwrap() error {
	return oerrors.ErrValidation
}

// OptLevelError reports an optimization level outside [0, 3].
type OptLevelError struct {
	OptLevel int
}

func (e *OptLevelError) Error() string {
	return fmt.Sprintf("Invalid opt_level '%d'. Must be in the range [0, 3].", e.OptLevel)
}

func (e *OptLevelError) Unwrap() error {
	return oerrors.ErrValidation
}

// TargetRequiredError reports a target-dependent level requested without a
// target.
type TargetRequiredError struct {
	Level Level
}

func (e *TargetRequiredError) Error() string {
	return fmt.Sprintf("Target must be provided for '%s' level.", e.Level)
}

func (e *TargetRequiredError) Unwrap() error {
	return oerrors.ErrValidation
}

func validateOptLevel(optLevel int) error {
	if optLevel < 0 || optLevel > 3 {
		return &OptLevelError{OptLevel: optLevel}
	}
	return nil
}
