package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names for the level pipeline.
const (
	SpanALG         = "bench.alg"
	SpanINDEP       = "bench.indep"
	SpanNativeGates = "bench.nativegates"
	SpanMapped      = "bench.mapped"
	SpanMirror      = "bench.mirror"
	SpanExport      = "bench.export"
)

// Span attribute keys.
const (
	AttrBenchmark = "benchmark.name"
	AttrQubits    = "benchmark.qubits"
	AttrLevel     = "benchmark.level"
	AttrTarget    = "target.description"
	AttrOptLevel  = "compiler.opt_level"
	AttrGates     = "circuit.gates"
	AttrDepth     = "circuit.depth"
	AttrFormat    = "output.format"
)

// Start opens a span with attributes.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
