// Package cmd provides CLI command implementations.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/config"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/tracing"
	"github.com/mqtbench/cli/internal/version"
)

// rootFlags holds the raw persistent flag values.
type rootFlags struct {
	config     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the mqtbench CLI.
func NewRootCmd() *cobra.Command {
	var (
		flags rootFlags
		cfg   cmdtypes.GlobalConfig
	)

	rootCmd := &cobra.Command{
		Use:   "mqtbench",
		Short: "Quantum circuit benchmark generator",
		Long: `mqtbench generates quantum computing benchmark circuits.

Each benchmark can be compiled to one of four levels:
  - alg:          the algorithm as written
  - indep:        compiled to a generic gate set
  - nativegates:  compiled to a gateset's native gates
  - mapped:       compiled, laid out, and routed for a device`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, &flags, &cfg)
		},
		PersistentPostRunE: func(c *cobra.Command, _ []string) error {
			return shutdownTracing(contextOf(c), &cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Path to config file (env: MQTBENCH_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewGenerateCmd(&cfg))
	rootCmd.AddCommand(NewListCmd(&cfg))
	rootCmd.AddCommand(NewDiffCmd(&cfg))
	rootCmd.AddCommand(NewConfigCmd(&cfg))
	rootCmd.AddCommand(NewVersionCmd(&cfg))

	return rootCmd
}

// initializeGlobals loads configuration, sets up logging, and starts tracing.
func initializeGlobals(c *cobra.Command, flags *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	configPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: flags.config})
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	loader := config.NewLoader()
	loaded, err := loader.Load(configPath.String())
	if err != nil {
		// Commands that do not need config (version, config init) still work.
		output.Debug("config load error", "error", err)
		loaded = config.DefaultConfig()
	}

	cfg.Config = loaded
	cfg.Loader = loader
	cfg.ConfigPath = configPath.String()
	cfg.Verbose = flags.verbose

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	config.LogResolvedValues([]config.ResolvedValue{configPath})
	info := version.Get()
	output.Debug("mqtbench started", "version", info.Version, "compiler", info.Compiler)

	traceFile := loaded.Tracing.FilePath
	if loaded.Tracing.Enabled && loaded.Tracing.Exporter == "file" {
		if traceFile, err = config.TraceFilePath(traceFile); err != nil {
			output.Warn("resolving trace file failed", "error", err)
		}
	}
	provider, err := tracing.NewProvider(contextOf(c), tracing.Config{
		Enabled:      loaded.Tracing.Enabled,
		Exporter:     loaded.Tracing.Exporter,
		FilePath:     traceFile,
		OTLPEndpoint: loaded.Tracing.Endpoint,
		SampleRate:   loaded.Tracing.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	})
	if err != nil {
		output.Warn("tracing disabled", "error", err)
		provider = tracing.Disabled()
	}
	cfg.Tracing = provider

	return nil
}

func shutdownTracing(ctx context.Context, cfg *cmdtypes.GlobalConfig) error {
	if cfg.Tracing == nil {
		return nil
	}
	if err := cfg.Tracing.Shutdown(ctx); err != nil {
		output.Warn("flushing traces failed", "error", err)
	}
	return nil
}

func contextOf(c *cobra.Command) context.Context {
	if ctx := c.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
