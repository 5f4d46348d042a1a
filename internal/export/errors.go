package export

import (
	"fmt"

	oerrors "github.com/mqtbench/cli/internal/errors"
)

// ExporterError is returned for every failure while serializing or writing
// a circuit. It matches oerrors.ErrExport.
type ExporterError struct {
	Message string
	// Path is the destination file, empty for streams.
	Path string
	Err  error
}

func (e *ExporterError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (Original error: %v)", e.Message, e.Err)
}

func (e *ExporterError) Unwrap() []error {
	if e.Err == nil {
		return []error{oerrors.ErrExport}
	}
	return []error{oerrors.ErrExport, e.Err}
}
