package tracing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	ctx, span := provider.Tracer().Start(context.Background(), "noop-span")
	require.NotNil(t, ctx)
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, Exporter: "file"})
	require.Error(t, err)
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, Exporter: "zipkin"})
	require.ErrorContains(t, err, "unsupported exporter type")
}

func TestNewProvider_FileExporterWritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "spans.jsonl")

	provider, err := NewProvider(context.Background(), Config{
		Enabled:    true,
		Exporter:   "file",
		FilePath:   path,
		SampleRate: 1.0,
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := Start(context.Background(), provider.Tracer(), SpanINDEP,
		attribute.String(AttrBenchmark, "ghz"),
		attribute.Int(AttrQubits, 5),
	)
	End(span, nil)

	require.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], `"name":"bench.indep"`)
	require.Contains(t, lines[0], `"benchmark.name":"ghz"`)
	require.Contains(t, lines[0], `"status":"OK"`)
}
