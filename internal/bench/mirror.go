package bench

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/tracing"
)

// MirrorSuffix is appended to the name of a mirrored circuit.
const MirrorSuffix = "_mirror"

// Mirror returns c followed by its inverse, separated by a barrier on the
// active qubits, with the active qubits measured at the end. The input is
// not modified.
//
// A mapped circuit keeps its initial layout. Its final layout is reset to
// the identity because the inverse half undoes the routing permutation.
func Mirror(c *circuit.Circuit) (*circuit.Circuit, error) {
	forward := c.Copy()
	forward.RemoveFinalMeasurements()

	inverse, err := forward.Inverse()
	if err != nil {
		return nil, err
	}

	out := forward.Copy()
	out.Name = c.Name + MirrorSuffix
	out.Duration = 0
	if active := forward.ActiveQubits(); len(active) > 0 {
		out.Barrier(active...)
	}
	if err := out.Compose(inverse); err != nil {
		return nil, err
	}
	out.MeasureActive()

	if out.Layout != nil {
		out.Layout.Final = circuit.TrivialPermutation(out.NumQubits)
	}
	return out, nil
}

// Mirror wraps the package-level Mirror in a span.
func (g *Generator) Mirror(ctx context.Context, c *circuit.Circuit) (_ *circuit.Circuit, err error) {
	_, span := tracing.Start(ctx, g.tracer, tracing.SpanMirror,
		attribute.String(tracing.AttrBenchmark, c.Name),
		attribute.Int(tracing.AttrQubits, c.NumQubits),
	)
	defer func() { tracing.End(span, err) }()

	out, err := Mirror(c)
	if err != nil {
		return nil, err
	}
	output.Debug("mirrored", "benchmark", out.Name, "qubits", out.NumQubits, "gates", out.Size())
	return out, nil
}
