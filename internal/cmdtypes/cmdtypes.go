// Package cmdtypes provides shared types for the cmd package and cmdutil.
// It is separate from internal/cmd to avoid import cycles between
// internal/cmd and internal/cmdutil.
package cmdtypes

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/mqtbench/cli/internal/config"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/tracing"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	Config     *config.Config
	ConfigPath string // resolved --config path
	Verbose    bool

	// Loader exposes raw config file values for precedence resolution.
	Loader *config.Loader

	// Tracing is set once logging is configured. Nil means tracing is off.
	Tracing *tracing.Provider
}

// Tracer returns the active tracer, or a no-op tracer before setup.
func (g *GlobalConfig) Tracer() trace.Tracer {
	if g == nil || g.Tracing == nil {
		return tracing.Disabled().Tracer()
	}
	return g.Tracing.Tracer()
}

// Settings returns the loaded configuration, falling back to defaults.
func (g *GlobalConfig) Settings() *config.Config {
	if g == nil || g.Config == nil {
		return config.DefaultConfig()
	}
	return g.Config
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitValidationError  = oerrors.ExitValidationError
	ExitCompilationError = oerrors.ExitCompilationError
	ExitNotFound         = oerrors.ExitNotFound
	ExitExportError      = oerrors.ExitExportError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
