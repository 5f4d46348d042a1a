// Package compiler is the reference compilation service: basis
// translation, optimization, layout, routing and scheduling of circuits
// against a target.
package compiler

import (
	"context"
	"fmt"
	"slices"

	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/target"
	"github.com/mqtbench/cli/internal/version"
)

// Options selects the passes of one Transpile call.
type Options struct {
	OptimizationLevel int
	Seed              uint64

	// Target restricts the vocabulary and, unless layout is disabled,
	// the connectivity.
	Target *target.Target
	// BasisGates is used when Target is nil. Empty means the standard gates.
	BasisGates []string

	DisableLayout     bool
	DisableRouting    bool
	DisableScheduling bool
}

// Service is the compilation backend used by the level pipeline.
type Service interface {
	Transpile(ctx context.Context, c *circuit.Circuit, opts Options) (*circuit.Circuit, error)
	SynthesizeDiscrete(ctx context.Context, c *circuit.Circuit) (*circuit.Circuit, error)
	Equivalences() *EquivalenceLibrary
	Version() string
}

// Transpiler implements Service.
type Transpiler struct {
	lib   *EquivalenceLibrary
	plans planCache
}

var _ Service = (*Transpiler)(nil)

// Option configures a Transpiler.
type Option func(*Transpiler)

// WithEquivalences replaces the session equivalence library.
func WithEquivalences(lib *EquivalenceLibrary) Option {
	return func(t *Transpiler) { t.lib = lib }
}

// New returns a Transpiler backed by the session equivalence library.
func New(opts ...Option) *Transpiler {
	t := &Transpiler{}
	for _, opt := range opts {
		opt(t)
	}
	if t.lib == nil {
		t.lib = Session()
	}
	return t
}

// Equivalences returns the library used for basis translation.
func (t *Transpiler) Equivalences() *EquivalenceLibrary {
	return t.lib
}

// Version identifies the compiler in provenance headers.
func (t *Transpiler) Version() string {
	return version.CompilerVersion()
}

func basisFor(opts Options) []string {
	var basis []string
	switch {
	case opts.Target != nil:
		basis = opts.Target.Operations()
	case len(opts.BasisGates) > 0:
		basis = slices.Clone(opts.BasisGates)
	default:
		basis = circuit.StandardGates()
	}
	if !slices.Contains(basis, "measure") {
		basis = append(basis, "measure")
	}
	slices.Sort(basis)
	return basis
}

// Transpile compiles c. The input is not modified.
func (t *Transpiler) Transpile(ctx context.Context, c *circuit.Circuit, opts Options) (*circuit.Circuit, error) {
	if opts.OptimizationLevel < 0 || opts.OptimizationLevel > 3 {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("Invalid opt_level '%d'. Must be in the range [0, 3].", opts.OptimizationLevel),
			"optimization_level", "")
	}
	if err := c.Validate(); err != nil {
		return nil, oerrors.Wrap(oerrors.ErrCompilation, err.Error())
	}

	basis := basisFor(opts)
	out := c.Copy()
	level := opts.OptimizationLevel

	if level >= 1 {
		cancelAndMerge(out)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Target != nil && !opts.DisableLayout {
		routed, err := layoutAndRoute(out, opts.Target, opts.Seed, !opts.DisableRouting)
		if err != nil {
			return nil, err
		}
		out = routed
	}

	if err := t.translate(out, basis); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if level >= 1 {
		rounds := 1
		if level == 3 {
			rounds = 8
		}
		for i := 0; i < rounds; i++ {
			gain := cancelAndMerge(out)
			if level >= 2 {
				gain += t.fuseSingleQubitRuns(out, basis)
			}
			if gain == 0 {
				break
			}
		}
	}

	if opts.Target != nil && out.Layout != nil {
		if err := fixDirection(out, opts.Target); err != nil {
			return nil, err
		}
	}
	if err := checkBasis(out, basis); err != nil {
		return nil, err
	}

	out.Duration = 0
	if opts.Target != nil && out.Layout != nil && !opts.DisableScheduling {
		out.Duration = schedule(out, opts.Target)
	}

	output.Debug("transpiled",
		"circuit", out.Name,
		"opt_level", level,
		"gates", out.Size(),
		"depth", out.Depth(),
	)
	return out, nil
}
