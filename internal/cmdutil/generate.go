package cmdutil

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/mqtbench/cli/internal/bench"
	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/cmdtypes"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/export"
	"github.com/mqtbench/cli/internal/index"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/target"
	"github.com/mqtbench/cli/internal/targets"
)

// GenerateOpts holds the inputs for Generate.
type GenerateOpts struct {
	Algorithm string
	NumQubits int
	Level     bench.Level
	// TargetName is a gateset for NATIVEGATES and a device for MAPPED.
	TargetName       string
	OptLevel         int
	RandomParameters bool
	Mirror           bool

	// Config is the fully loaded global configuration.
	Config *cmdtypes.GlobalConfig
	// Targets defaults to the process-wide catalog.
	Targets *targets.Catalog
	// Generator defaults to one built over Targets with the configured tracer.
	Generator *bench.Generator
}

// GenerateResult is a compiled benchmark ready for export.
type GenerateResult struct {
	Circuit *circuit.Circuit
	Target  *target.Target
	Level   bench.Level
	// NumQubits is the requested benchmark size. A mapped circuit spans
	// the whole device, so its width differs.
	NumQubits int
	OptLevel  int
	Mirror    bool
	Name      string
	Elapsed   time.Duration
	// Equivalences used by the compiler, needed to define custom gates.
	Generator *bench.Generator
}

// size is the benchmark size used in filenames and index rows.
func (r *GenerateResult) size() int {
	if r.NumQubits > 0 {
		return r.NumQubits
	}
	return r.Circuit.NumQubits
}

// ResolveTarget builds the target a level compiles against, or nil for
// levels that need none.
func ResolveTarget(catalog *targets.Catalog, level bench.Level, name string, numQubits int) (*target.Target, error) {
	switch level {
	case bench.NATIVEGATES:
		return catalog.TargetForGateset(name, numQubits)
	case bench.MAPPED:
		return catalog.Device(name)
	default:
		return nil, nil
	}
}

// Generate resolves the target and runs the level pipeline behind a spinner.
//
// On failure it returns an *ExitError with the appropriate exit code and
// the Printed flag set.
func Generate(ctx context.Context, opts GenerateOpts) (*GenerateResult, error) {
	if opts.Config == nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}
	catalog := opts.Targets
	if catalog == nil {
		catalog = targets.Default()
	}
	gen := opts.Generator
	if gen == nil {
		gen = bench.New(bench.WithTargets(catalog), bench.WithTracer(opts.Config.Tracer()))
	}

	tgt, err := ResolveTarget(catalog, opts.Level, opts.TargetName, opts.NumQubits)
	if err != nil {
		PrintGenerateError("resolving target failed", err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	output.Debug("generating benchmark",
		"benchmark", opts.Algorithm,
		"level", opts.Level,
		"qubits", opts.NumQubits,
		"target", opts.TargetName,
		"opt_level", opts.OptLevel,
		"mirror", opts.Mirror,
	)

	var c *circuit.Circuit
	start := time.Now()
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var genErr error
		c, genErr = gen.Get(ctx, bench.Options{
			Benchmark:      opts.Algorithm,
			Size:           opts.NumQubits,
			Level:          opts.Level,
			Target:         tgt,
			OptLevel:       opts.OptLevel,
			KeepParameters: !opts.RandomParameters,
			Mirror:         opts.Mirror,
		})
		return genErr
	}, output.WithTitle(fmt.Sprintf("Generating %s (%s, %d qubits)...", opts.Algorithm, opts.Level, opts.NumQubits)))
	if err != nil {
		PrintGenerateError("generation failed", err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	return &GenerateResult{
		Circuit:   c,
		Target:    tgt,
		Level:     opts.Level,
		NumQubits: opts.NumQubits,
		OptLevel:  opts.OptLevel,
		Mirror:    opts.Mirror,
		Name:      opts.Algorithm,
		Elapsed:   time.Since(start),
		Generator: gen,
	}, nil
}

// EmitOpts controls where Emit writes a result.
type EmitOpts struct {
	Format export.Format
	// Save forces a file even for text formats.
	Save      bool
	Directory string
	Config    *cmdtypes.GlobalConfig
}

// Emit prints QASM to w, or saves the circuit, prints its path to w and
// records it in the artifact index. Binary formats are always saved.
// It returns the saved path, empty when the circuit went to w.
func Emit(ctx context.Context, w io.Writer, result *GenerateResult, opts EmitOpts) (string, error) {
	exportOpts := export.Options{
		Target:       result.Target,
		Equivalences: result.Generator.Compiler().Equivalences(),
		Tracer:       opts.Config.Tracer(),
	}

	if opts.Format.IsText() && !opts.Save {
		if err := export.WriteCircuit(ctx, export.TextStream(w), result.Circuit, result.Level, opts.Format, exportOpts); err != nil {
			PrintGenerateError("writing circuit failed", err)
			return "", &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
		}
		return "", nil
	}

	filename, err := export.GenerateFilename(result.Name, result.Level, result.size(),
		result.Target, result.OptLevel, result.Mirror)
	if err != nil {
		return "", &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
	}
	path, err := export.SaveCircuit(ctx, result.Circuit, filename, result.Level, opts.Format, opts.Directory, exportOpts)
	if err != nil {
		PrintGenerateError("saving circuit failed", err)
		return "", &oerrors.ExitError{Code: oerrors.ExitExportError, Err: err, Printed: true}
	}
	fmt.Fprintln(w, path)

	RecordArtifact(ctx, opts.Config, opts.Directory, index.Artifact{
		Path:      path,
		Benchmark: result.Name,
		Level:     result.Level.String(),
		NumQubits: result.size(),
		Target:    targetName(result.Target),
		OptLevel:  result.OptLevel,
		Mirror:    result.Mirror,
		Format:    opts.Format.String(),
	})
	return path, nil
}

// RecordArtifact stores a in the index under dir when the index is enabled.
// Failures are logged; the artifact itself is already on disk.
func RecordArtifact(ctx context.Context, cfg *cmdtypes.GlobalConfig, dir string, a index.Artifact) {
	settings := cfg.Settings()
	if !settings.Index.Enabled {
		return
	}
	x, err := index.Open(settings.IndexPathFor(dir))
	if err != nil {
		output.Warn("artifact index unavailable", "error", err)
		return
	}
	defer x.Close()

	if abs, err := filepath.Abs(a.Path); err == nil {
		a.Path = abs
	}
	if _, err := x.Record(ctx, a); err != nil {
		output.Warn("recording artifact failed", "path", a.Path, "error", err)
	}
}

func targetName(tgt *target.Target) string {
	if tgt == nil {
		return ""
	}
	return tgt.Description
}
