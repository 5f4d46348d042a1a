package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mqtbench/cli/internal/bench"
	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/compiler"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/target"
	"github.com/mqtbench/cli/internal/tracing"
)

// Stream is a destination tagged with the kind of data it accepts.
type Stream interface {
	io.Writer
	Binary() bool
}

type stream struct {
	io.Writer
	binary bool
}

func (s stream) Binary() bool { return s.binary }

// TextStream marks w as accepting text.
func TextStream(w io.Writer) Stream {
	return stream{Writer: w}
}

// BinaryStream marks w as accepting binary data.
func BinaryStream(w io.Writer) Stream {
	return stream{Writer: w, binary: true}
}

// StreamFor wraps w with the stream kind format expects.
func StreamFor(w io.Writer, format Format) Stream {
	if format.IsText() {
		return TextStream(w)
	}
	return BinaryStream(w)
}

// Options carries the optional inputs of an export.
type Options struct {
	// Target describes NATIVEGATES and MAPPED circuits in the header.
	Target *target.Target
	// Equivalences supplies gate definitions. Defaults to the session library.
	Equivalences *compiler.EquivalenceLibrary
	Tracer       trace.Tracer
}

func (o Options) equivalences() *compiler.EquivalenceLibrary {
	if o.Equivalences != nil {
		return o.Equivalences
	}
	return compiler.Session()
}

// WriteCircuit writes c to dst in format, preceded by the provenance header.
// QASM needs a text stream and snapshots a binary one.
func WriteCircuit(ctx context.Context, dst Stream, c *circuit.Circuit, level bench.Level, format Format, opts Options) (err error) {
	if opts.Tracer != nil {
		_, span := tracing.Start(ctx, opts.Tracer, tracing.SpanExport,
			attribute.String(tracing.AttrBenchmark, c.Name),
			attribute.String(tracing.AttrLevel, level.String()),
			attribute.String(tracing.AttrFormat, format.String()),
		)
		defer func() { tracing.End(span, err) }()
	}

	if !format.IsValid() {
		return unsupportedFormat(format)
	}
	header, err := GenerateHeader(format, level, opts.Target)
	if err != nil {
		return &ExporterError{Message: "Failed to generate header.", Err: err}
	}

	if format.IsText() {
		if dst.Binary() {
			return &ExporterError{Message: "QASM output requires a *text* stream."}
		}
		if _, err := io.WriteString(dst, header); err != nil {
			return &ExporterError{Message: "Failed to write QASM stream.", Err: err}
		}
		if err := writeQASM(dst, c, format, opts.equivalences()); err != nil {
			return &ExporterError{Message: "Failed to write QASM stream.", Err: err}
		}
		return nil
	}

	if !dst.Binary() {
		return &ExporterError{Message: "Snapshot output requires a *binary* stream."}
	}
	if err := writeSnapshot(dst, c, header); err != nil {
		return &ExporterError{Message: "Failed to write snapshot stream.", Err: err}
	}
	return nil
}

// SaveCircuit writes c to <dir>/<filename>.<ext> and returns the path. A
// partially written file is removed on failure.
func SaveCircuit(ctx context.Context, c *circuit.Circuit, filename string, level bench.Level, format Format, dir string, opts Options) (string, error) {
	if !format.IsValid() {
		return "", unsupportedFormat(format)
	}
	path := filepath.Join(dir, filename+"."+format.Extension())
	fail := func(err error) error {
		return &ExporterError{
			Message: fmt.Sprintf("Failed to write %s file to %s.", strings.ToUpper(format.String()), path),
			Path:    path,
			Err:     err,
		}
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fail(err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fail(err)
	}

	werr := WriteCircuit(ctx, StreamFor(f, format), c, level, format, opts)
	cerr := f.Close()
	if werr == nil && cerr != nil {
		werr = fail(cerr)
	}
	if werr != nil {
		_ = os.Remove(path)
		return "", werr
	}

	output.Debug("saved circuit", "benchmark", c.Name, "format", format, "file", path)
	return path, nil
}
