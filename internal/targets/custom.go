package targets

import (
	"fmt"

	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/target"
)

// customGates adds the vendor instructions a gateset may name but the
// generic generator does not know. They apply to every qubit combination
// and carry no calibration.
var customGates = map[string]func(*target.Target){
	"gpi":     global("gpi"),
	"gpi2":    global("gpi2"),
	"ms":      global("ms"),
	"zz":      global("zz"),
	"rxpi":    global("rxpi"),
	"rxpi2":   global("rxpi2"),
	"rxpi2dg": global("rxpi2dg"),
}

func global(name string) func(*target.Target) {
	return func(t *target.Target) { t.AddGlobal(name) }
}

// UnknownGateError is returned for a gate that is neither standard nor a
// known custom gate.
type UnknownGateError struct {
	Gate string
}

func (e *UnknownGateError) Error() string {
	return fmt.Sprintf("Gate '%s' not found in available custom gates.", e.Gate)
}

// Unwrap maps the error to the not-found sentinel.
func (e *UnknownGateError) Unwrap() error {
	return oerrors.ErrNotFound
}
