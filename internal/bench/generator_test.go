package bench

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mqtbench/cli/internal/benchmarks"
	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/compiler"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/target"
	"github.com/mqtbench/cli/internal/targets"
	"github.com/mqtbench/cli/internal/testutil"
)

// countingCompiler records how often the pipeline reaches the compiler.
type countingCompiler struct {
	*compiler.Transpiler
	calls int
}

func (c *countingCompiler) Transpile(ctx context.Context, qc *circuit.Circuit, opts compiler.Options) (*circuit.Circuit, error) {
	c.calls++
	return c.Transpiler.Transpile(ctx, qc, opts)
}

func newCompiler() *countingCompiler {
	return &countingCompiler{Transpiler: compiler.New(compiler.WithEquivalences(compiler.StandardEquivalences()))}
}

func newGenerator(opts ...Option) *Generator {
	base := []Option{
		WithBenchmarks(benchmarks.New()),
		WithTargets(targets.New()),
		WithCompiler(newCompiler()),
	}
	return New(append(base, opts...)...)
}

func gatesetTarget(t *testing.T, name string, n int) *target.Target {
	t.Helper()
	tgt, err := targets.New().TargetForGateset(name, n)
	require.NoError(t, err)
	return tgt
}

func TestOptionsValidate(t *testing.T) {
	qc := circuit.New("c", 2)
	tgt := target.New(2, "t")
	tests := []struct {
		name    string
		opts    Options
		wantMsg string
	}{
		{"name and circuit", Options{Benchmark: "ghz", Circuit: qc}, "mutually exclusive"},
		{"circuit with size", Options{Circuit: qc, Size: 3}, "`circuit_size` must be omitted"},
		{"neither", Options{Size: 3}, "either a benchmark name or a circuit is required"},
		{"zero size", Options{Benchmark: "ghz"}, "`circuit_size` must be a positive integer"},
		{"negative size", Options{Benchmark: "ghz", Size: -2}, "`circuit_size` must be a positive integer"},
		{"nativegates without target", Options{Benchmark: "ghz", Size: 3, Level: NATIVEGATES}, "Target must be provided for 'nativegates' level."},
		{"mapped without target", Options{Benchmark: "ghz", Size: 3, Level: MAPPED}, "Target must be provided for 'mapped' level."},
		{"opt level 4", Options{Benchmark: "ghz", Size: 3, Level: INDEP, OptLevel: 4}, "Invalid opt_level '4'. Must be in the range [0, 3]."},
		{"opt level -1", Options{Benchmark: "ghz", Size: 3, Level: MAPPED, Target: tgt, OptLevel: -1}, "Invalid opt_level '-1'. Must be in the range [0, 3]."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}

	assert.NoError(t, Options{Benchmark: "ghz", Size: 3, OptLevel: 9}.Validate(), "alg ignores the opt level")
	assert.NoError(t, Options{Circuit: qc, Level: NATIVEGATES, Target: tgt}.Validate())
}

func TestValidationHappensBeforeWork(t *testing.T) {
	comp := newCompiler()
	g := newGenerator(WithCompiler(comp))
	catalog := benchmarks.New()
	g.benchmarks = catalog

	_, err := g.Get(context.Background(), Options{Benchmark: "ghz", Size: 3, Level: INDEP, OptLevel: 4})
	var optErr *OptLevelError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, 4, optErr.OptLevel)
	assert.Zero(t, comp.calls)
	assert.Empty(t, catalog.Imported())

	qc, err := g.Alg(context.Background(), Options{Benchmark: "ghz", Size: 3})
	require.NoError(t, err)
	for _, l := range []int{-1, 4} {
		_, err = g.Indep(context.Background(), qc, l)
		assert.ErrorAs(t, err, &optErr)
		_, err = g.NativeGates(context.Background(), qc, gatesetTarget(t, "ibm_falcon", 3), l)
		assert.ErrorAs(t, err, &optErr)
		_, err = g.Mapped(context.Background(), qc, gatesetTarget(t, "ibm_falcon", 3), l)
		assert.ErrorAs(t, err, &optErr)
	}
	assert.Zero(t, comp.calls)

	_, err = g.Mapped(context.Background(), qc, nil, 2)
	var tgtErr *TargetRequiredError
	require.ErrorAs(t, err, &tgtErr)
	assert.Equal(t, MAPPED, tgtErr.Level)
}

func TestUnknownBenchmark(t *testing.T) {
	_, err := newGenerator().Get(context.Background(), Options{Benchmark: "shor", Size: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
	assert.Contains(t, err.Error(), "'shor' is not a supported benchmark")
}

func TestAlg(t *testing.T) {
	g := newGenerator()
	qc, err := g.Get(context.Background(), Options{Benchmark: "ghz", Size: 5})
	require.NoError(t, err)
	assert.Equal(t, "ghz", qc.Name)
	assert.Equal(t, 5, qc.NumQubits)
	assert.Nil(t, qc.Layout)
}

func TestAlgBindsParameters(t *testing.T) {
	g := newGenerator()

	bound, err := g.Alg(context.Background(), Options{Benchmark: "vqe_su2", Size: 3})
	require.NoError(t, err)
	assert.Empty(t, bound.Parameters())
	for _, in := range bound.Instructions {
		for _, p := range in.Params {
			v, ok := p.Value()
			require.True(t, ok)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 2*math.Pi)
		}
	}

	again, err := g.Alg(context.Background(), Options{Benchmark: "vqe_su2", Size: 3})
	require.NoError(t, err)
	assert.Equal(t, bound, again, "binding must be reproducible")

	free, err := g.Alg(context.Background(), Options{Benchmark: "vqe_su2", Size: 3, KeepParameters: true})
	require.NoError(t, err)
	assert.Len(t, free.Parameters(), 24)
}

func TestAlgCopiesSuppliedCircuit(t *testing.T) {
	qc := circuit.New("custom", 2)
	qc.RX(circuit.Param("a"), 0)
	qc.CX(0, 1)

	out, err := newGenerator().Alg(context.Background(), Options{Circuit: qc})
	require.NoError(t, err)
	assert.Empty(t, out.Parameters())
	assert.Equal(t, []string{"a"}, qc.Parameters(), "input must stay unbound")
	assert.Equal(t, "custom", out.Name)
}

func TestBindRandomParametersUsesNaturalOrder(t *testing.T) {
	a := circuit.New("a", 1)
	a.RX(circuit.Param("theta_10"), 0)
	a.RX(circuit.Param("theta_2"), 0)
	b := circuit.New("b", 1)
	b.RX(circuit.Param("theta_2"), 0)
	b.RX(circuit.Param("theta_10"), 0)

	BindRandomParameters(a)
	BindRandomParameters(b)
	assert.InDelta(t, a.Instructions[0].Params[0].MustValue(), b.Instructions[1].Params[0].MustValue(), 0)
	assert.InDelta(t, a.Instructions[1].Params[0].MustValue(), b.Instructions[0].Params[0].MustValue(), 0)
}

// strip returns c without final measurements.
func strip(c *circuit.Circuit) *circuit.Circuit {
	out := c.Copy()
	out.RemoveFinalMeasurements()
	return out
}

func TestIndep(t *testing.T) {
	g := newGenerator()
	standard := append(circuit.StandardGates(), "measure", "barrier")
	alg, err := g.Alg(context.Background(), Options{Benchmark: "qft", Size: 3})
	require.NoError(t, err)

	for level := 0; level <= 3; level++ {
		out, err := g.Get(context.Background(), Options{Benchmark: "qft", Size: 3, Level: INDEP, OptLevel: level})
		require.NoError(t, err)
		assert.Nil(t, out.Layout)
		assert.Empty(t, out.Parameters())
		for _, in := range out.Instructions {
			assert.Contains(t, standard, in.Name)
		}
		testutil.AssertEquivalent(t, strip(alg), strip(out))
	}
}

func TestNativeGates(t *testing.T) {
	gatesets := []string{"ibm_falcon", "ibm_eagle", "ibm_heron", "ionq_aria", "ionq_forte", "iqm", "quantinuum", "rigetti"}
	for _, name := range gatesets {
		t.Run(name, func(t *testing.T) {
			g := newGenerator()
			tgt := gatesetTarget(t, name, 3)
			alg, err := g.Alg(context.Background(), Options{Benchmark: "qftentangled", Size: 3})
			require.NoError(t, err)

			out, err := g.Get(context.Background(), Options{
				Benchmark: "qftentangled", Size: 3, Level: NATIVEGATES, Target: tgt, OptLevel: 1,
			})
			require.NoError(t, err)
			assert.Nil(t, out.Layout)
			assert.Zero(t, out.Duration)
			for _, in := range out.Instructions {
				assert.True(t, in.Name == "barrier" || tgt.HasOperation(in.Name), in.Name)
			}
			testutil.AssertEquivalent(t, strip(alg), strip(out))
		})
	}
}

func TestNativeGatesInjectsVendorRulesOnce(t *testing.T) {
	comp := newCompiler()
	g := newGenerator(WithCompiler(comp))
	tgt := gatesetTarget(t, "ionq_aria", 2)
	before := comp.Equivalences().Len()

	for i := 0; i < 2; i++ {
		_, err := g.Get(context.Background(), Options{Benchmark: "ghz", Size: 2, Level: NATIVEGATES, Target: tgt})
		require.NoError(t, err)
	}
	assert.True(t, comp.Equivalences().Has("ionq/cx-ms"))
	assert.Greater(t, comp.Equivalences().Len(), before)

	after := comp.Equivalences().Len()
	_, err := g.Get(context.Background(), Options{Benchmark: "ghz", Size: 2, Level: NATIVEGATES, Target: tgt})
	require.NoError(t, err)
	assert.Equal(t, after, comp.Equivalences().Len())
}

func TestNativeGatesCliffordT(t *testing.T) {
	g := newGenerator()
	tgt := gatesetTarget(t, targets.CliffordT, 2)

	qc := circuit.New("rot", 2)
	qc.H(0)
	qc.RZ(circuit.Num(0.3), 0)
	qc.CX(0, 1)
	qc.MeasureAll()

	out, err := g.Get(context.Background(), Options{Circuit: qc, Level: NATIVEGATES, Target: tgt, OptLevel: 1})
	require.NoError(t, err)
	assert.Nil(t, out.Layout)
	for _, in := range out.Instructions {
		assert.True(t, in.Name == "barrier" || slices.Contains(compiler.CliffordT, in.Name) || in.Name == "measure", in.Name)
	}
	assert.Equal(t, 2, out.CountOps()["measure"])
	assert.NotContains(t, out.CountOps(), "rz")
}

func TestMapped(t *testing.T) {
	g := newGenerator()
	device, err := targets.New().Device("ibm_falcon_27")
	require.NoError(t, err)

	out, err := g.Get(context.Background(), Options{Benchmark: "ghz", Size: 5, Level: MAPPED, Target: device, OptLevel: 2})
	require.NoError(t, err)
	require.NotNil(t, out.Layout)
	assert.Len(t, out.Layout.Initial, 5)
	assert.Equal(t, 27, out.NumQubits)
	assert.Positive(t, out.Duration)
	for _, in := range out.Instructions {
		if in.Name == "barrier" {
			continue
		}
		assert.True(t, device.Supports(in.Name, in.Qubits), "%s on %v", in.Name, in.Qubits)
	}
}

func TestMappedTooLarge(t *testing.T) {
	device, err := targets.New().Device("iqm_crystal_5")
	require.NoError(t, err)
	_, err = newGenerator().Get(context.Background(), Options{Benchmark: "ghz", Size: 6, Level: MAPPED, Target: device})
	assert.Error(t, err)
}

func TestGetMirror(t *testing.T) {
	out, err := newGenerator().Get(context.Background(), Options{Benchmark: "ghz", Size: 3, Level: INDEP, OptLevel: 2, Mirror: true})
	require.NoError(t, err)
	assert.Equal(t, "ghz_mirror", out.Name)
	testutil.AssertIdentity(t, strip(out))
}

func TestSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	g := newGenerator(WithTracer(tp.Tracer("test")))

	device, err := targets.New().Device("ionq_aria_25")
	require.NoError(t, err)
	_, err = g.Get(context.Background(), Options{Benchmark: "ghz", Size: 3, Level: MAPPED, Target: device, Mirror: true})
	require.NoError(t, err)

	var names []string
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"bench.alg", "bench.mapped", "bench.mirror"}, names)
}
