// Package export serializes benchmark circuits with a provenance header and
// derives their artifact filenames.
package export

import (
	"fmt"
	"strings"
)

// Format is a circuit serialization format.
type Format string

const (
	// FormatQASM2 is OpenQASM 2.0 text.
	FormatQASM2 Format = "qasm2"
	// FormatQASM3 is OpenQASM 3.0 text.
	FormatQASM3 Format = "qasm3"
	// FormatSnapshot is the binary snapshot container.
	FormatSnapshot Format = "snapshot"
)

// DefaultFormat is used when no format is chosen.
const DefaultFormat = FormatQASM3

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatQASM2, FormatQASM3, FormatSnapshot}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Extension returns the canonical filename extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatQASM2, FormatQASM3:
		return "qasm"
	case FormatSnapshot:
		return "qsnap"
	default:
		return string(f)
	}
}

// IsText reports whether the format is written to text streams.
func (f Format) IsText() bool {
	return f == FormatQASM2 || f == FormatQASM3
}

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	switch f {
	case FormatQASM2, FormatQASM3, FormatSnapshot:
		return true
	}
	return false
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", unsupportedFormat(Format(s))
	}
	return f, nil
}

func unsupportedFormat(f Format) error {
	names := make([]string, 0, len(Formats()))
	for _, v := range Formats() {
		names = append(names, "'"+v.String()+"'")
	}
	return &ExporterError{
		Message: fmt.Sprintf("Unsupported output format %s. Supported formats are [%s].", f, strings.Join(names, ", ")),
	}
}
