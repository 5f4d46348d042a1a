// Package bench runs the level pipeline: it builds a benchmark circuit and
// compiles it to the requested level, optionally mirroring the result.
package bench

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mqtbench/cli/internal/benchmarks"
	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/compiler"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/target"
	"github.com/mqtbench/cli/internal/targets"
	"github.com/mqtbench/cli/internal/tracing"
)

const (
	// DefaultOptLevel is the optimization level used when none is chosen.
	DefaultOptLevel = 2

	// Seed drives parameter binding and every compiler call.
	Seed = 10
)

// Options selects one benchmark. Exactly one of Benchmark (with Size) or
// Circuit must be set.
type Options struct {
	Benchmark string
	Size      int
	Circuit   *circuit.Circuit

	Level Level
	// Target is a gateset target for NATIVEGATES and a device for MAPPED.
	Target   *target.Target
	OptLevel int

	// KeepParameters leaves free parameters unbound.
	KeepParameters bool
	Mirror         bool
}

// Validate checks argument legality without doing any work.
func (o Options) Validate() error {
	if err := o.validateSource(); err != nil {
		return err
	}
	if o.Level.NeedsTarget() && o.Target == nil {
		return &TargetRequiredError{Level: o.Level}
	}
	if o.Level != ALG {
		return validateOptLevel(o.OptLevel)
	}
	return nil
}

func (o Options) validateSource() error {
	switch {
	case o.Circuit != nil && o.Benchmark != "":
		return &InvalidArgumentError{Message: "a benchmark name and a circuit are mutually exclusive."}
	case o.Circuit != nil && o.Size != 0:
		return &InvalidArgumentError{Message: "`circuit_size` must be omitted when `benchmark` is a circuit."}
	case o.Circuit == nil && o.Benchmark == "":
		return &InvalidArgumentError{Message: "either a benchmark name or a circuit is required."}
	case o.Circuit == nil && o.Size <= 0:
		return &InvalidArgumentError{Message: "`circuit_size` must be a positive integer when `benchmark` is a name."}
	}
	return nil
}

// Generator builds benchmarks. It is safe for sequential reuse.
type Generator struct {
	benchmarks *benchmarks.Catalog
	targets    *targets.Catalog
	compiler   compiler.Service
	tracer     trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithBenchmarks replaces the benchmark catalog.
func WithBenchmarks(c *benchmarks.Catalog) Option {
	return func(g *Generator) { g.benchmarks = c }
}

// WithTargets replaces the gateset and device catalog.
func WithTargets(c *targets.Catalog) Option {
	return func(g *Generator) { g.targets = c }
}

// WithCompiler replaces the compilation service.
func WithCompiler(s compiler.Service) Option {
	return func(g *Generator) { g.compiler = s }
}

// WithTracer records pipeline spans on t.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) { g.tracer = t }
}

// New returns a generator over the process-wide catalogs and compiler.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.benchmarks == nil {
		g.benchmarks = benchmarks.Default()
	}
	if g.targets == nil {
		g.targets = targets.Default()
	}
	if g.compiler == nil {
		g.compiler = compiler.New()
	}
	if g.tracer == nil {
		g.tracer = tracing.Disabled().Tracer()
	}
	return g
}

// Compiler returns the compilation service.
func (g *Generator) Compiler() compiler.Service {
	return g.compiler
}

// Get validates opts, runs the pipeline up to opts.Level and mirrors the
// result when asked.
//
// Each compiled level starts from the ALG circuit:
//  1. ALG:         build or accept the circuit, bind free parameters
//  2. INDEP:       compile to the generic basis
//  3. NATIVEGATES: translate to the target vocabulary, no layout
//  4. MAPPED:      translate, lay out and route on the target
func (g *Generator) Get(ctx context.Context, opts Options) (*circuit.Circuit, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	alg, err := g.Alg(ctx, opts)
	if err != nil {
		return nil, err
	}

	var out *circuit.Circuit
	switch opts.Level {
	case ALG:
		out = alg
	case INDEP:
		out, err = g.Indep(ctx, alg, opts.OptLevel)
	case NATIVEGATES:
		out, err = g.NativeGates(ctx, alg, opts.Target, opts.OptLevel)
	case MAPPED:
		out, err = g.Mapped(ctx, alg, opts.Target, opts.OptLevel)
	default:
		panic(unhandledLevel(opts.Level))
	}
	if err != nil {
		return nil, err
	}

	if opts.Mirror {
		return g.Mirror(ctx, out)
	}
	return out, nil
}

// Alg returns the algorithm-level circuit. A supplied circuit is copied.
// Free parameters are bound to seeded values unless opts.KeepParameters.
func (g *Generator) Alg(ctx context.Context, opts Options) (_ *circuit.Circuit, err error) {
	_, span := tracing.Start(ctx, g.tracer, tracing.SpanALG,
		attribute.String(tracing.AttrBenchmark, opts.Benchmark),
		attribute.String(tracing.AttrLevel, ALG.String()),
	)
	defer func() { tracing.End(span, err) }()

	if err := opts.validateSource(); err != nil {
		return nil, err
	}
	var c *circuit.Circuit
	if opts.Circuit != nil {
		c = opts.Circuit.Copy()
	} else {
		c, err = g.benchmarks.Create(opts.Benchmark, opts.Size)
		if err != nil {
			return nil, err
		}
	}

	if !opts.KeepParameters {
		BindRandomParameters(c)
	}
	span.SetAttributes(attribute.Int(tracing.AttrQubits, c.NumQubits))
	output.Debug("built circuit", "benchmark", c.Name, "level", ALG, "qubits", c.NumQubits, "gates", c.Size())
	return c, nil
}

// BindRandomParameters binds every free parameter, in natural name order,
// to a value drawn uniformly from [0, 2π) by a generator seeded with Seed.
func BindRandomParameters(c *circuit.Circuit) {
	names := c.Parameters()
	if len(names) == 0 {
		return
	}
	rng := rand.New(rand.NewPCG(Seed, 0))
	values := make(map[string]float64, len(names))
	for _, name := range names {
		values[name] = rng.Float64() * 2 * math.Pi
	}
	c.AssignParameters(values)
}

// Indep compiles c to the generic basis.
func (g *Generator) Indep(ctx context.Context, c *circuit.Circuit, optLevel int) (_ *circuit.Circuit, err error) {
	if err := validateOptLevel(optLevel); err != nil {
		return nil, err
	}
	ctx, span := g.stage(ctx, tracing.SpanINDEP, c, INDEP, nil, optLevel)
	defer func() { tracing.End(span, err) }()

	start := time.Now()
	out, err := g.compiler.Transpile(ctx, c, compiler.Options{OptimizationLevel: optLevel, Seed: Seed})
	if err != nil {
		return nil, err
	}
	g.logStage(out, INDEP, nil, optLevel, start)
	return out, nil
}

// NativeGates translates c to the vocabulary of tgt without assigning
// physical qubits. The clifford+t gateset first synthesises rotations over
// the discrete gates.
func (g *Generator) NativeGates(ctx context.Context, c *circuit.Circuit, tgt *target.Target, optLevel int) (_ *circuit.Circuit, err error) {
	if err := validateOptLevel(optLevel); err != nil {
		return nil, err
	}
	if tgt == nil {
		return nil, &TargetRequiredError{Level: NATIVEGATES}
	}
	ctx, span := g.stage(ctx, tracing.SpanNativeGates, c, NATIVEGATES, tgt, optLevel)
	defer func() { tracing.End(span, err) }()

	start := time.Now()
	if tgt.Description == targets.CliffordT {
		c, err = g.synthesizeCliffordT(ctx, c, optLevel)
		if err != nil {
			return nil, err
		}
	}

	targets.InjectVendorEquivalences(g.compiler.Equivalences(), tgt.Description)
	out, err := g.compiler.Transpile(ctx, c, compiler.Options{
		OptimizationLevel: optLevel,
		Seed:              Seed,
		Target:            tgt,
		DisableLayout:     true,
		DisableRouting:    true,
		DisableScheduling: true,
	})
	if err != nil {
		return nil, err
	}
	g.logStage(out, NATIVEGATES, tgt, optLevel, start)
	return out, nil
}

// synthesizeCliffordT compiles c to Clifford+T plus rotations, then
// approximates the rotations on the measurement-free circuit and measures
// every qubit again.
func (g *Generator) synthesizeCliffordT(ctx context.Context, c *circuit.Circuit, optLevel int) (*circuit.Circuit, error) {
	rotations, err := g.targets.TargetForGateset(targets.CliffordTRotations, c.NumQubits)
	if err != nil {
		return nil, err
	}
	compiled, err := g.compiler.Transpile(ctx, c, compiler.Options{
		OptimizationLevel: optLevel,
		Seed:              Seed,
		Target:            rotations,
		DisableLayout:     true,
		DisableRouting:    true,
		DisableScheduling: true,
	})
	if err != nil {
		return nil, err
	}
	compiled.RemoveFinalMeasurements()

	out, err := g.compiler.SynthesizeDiscrete(ctx, compiled)
	if err != nil {
		return nil, err
	}
	out.MeasureAll()
	output.Debug("synthesized rotations", "benchmark", c.Name, "gates", out.Size())
	return out, nil
}

// Mapped compiles c onto tgt, including layout and routing.
func (g *Generator) Mapped(ctx context.Context, c *circuit.Circuit, tgt *target.Target, optLevel int) (_ *circuit.Circuit, err error) {
	if err := validateOptLevel(optLevel); err != nil {
		return nil, err
	}
	if tgt == nil {
		return nil, &TargetRequiredError{Level: MAPPED}
	}
	ctx, span := g.stage(ctx, tracing.SpanMapped, c, MAPPED, tgt, optLevel)
	defer func() { tracing.End(span, err) }()

	start := time.Now()
	targets.InjectVendorEquivalences(g.compiler.Equivalences(), tgt.Description)
	out, err := g.compiler.Transpile(ctx, c, compiler.Options{
		OptimizationLevel: optLevel,
		Seed:              Seed,
		Target:            tgt,
	})
	if err != nil {
		return nil, err
	}
	g.logStage(out, MAPPED, tgt, optLevel, start)
	return out, nil
}

func (g *Generator) stage(ctx context.Context, name string, c *circuit.Circuit, level Level, tgt *target.Target, optLevel int) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(tracing.AttrBenchmark, c.Name),
		attribute.String(tracing.AttrLevel, level.String()),
		attribute.Int(tracing.AttrOptLevel, optLevel),
		attribute.Int(tracing.AttrQubits, c.NumQubits),
	}
	if tgt != nil {
		attrs = append(attrs, attribute.String(tracing.AttrTarget, tgt.Description))
	}
	return tracing.Start(ctx, g.tracer, name, attrs...)
}

func (g *Generator) logStage(out *circuit.Circuit, level Level, tgt *target.Target, optLevel int, start time.Time) {
	keyvals := []any{
		"benchmark", out.Name,
		"level", level,
		"opt_level", optLevel,
		"qubits", out.NumQubits,
		"gates", out.Size(),
		"duration", time.Since(start).Round(time.Microsecond),
	}
	if tgt != nil {
		keyvals = append(keyvals, "target", tgt.Description)
	}
	output.Debug("compiled", keyvals...)
}
