package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mqtbench/cli/internal/bench"
	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/cmdutil"
	"github.com/mqtbench/cli/internal/config"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/export"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.GenerateFlags

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single benchmark",
		Long: `Generate a single benchmark circuit and print or save it.

QASM output goes to stdout unless --save is given. Snapshots are always
saved to --target-directory and the saved path is printed. Saved files are
recorded in the artifact index (see 'mqtbench list artifacts').`,
		Example: `  # GHZ state at algorithm level
  mqtbench generate --level alg --algorithm ghz --num-qubits 5

  # QFT compiled to IBM Falcon native gates
  mqtbench generate --level nativegates --algorithm qft --num-qubits 8 --target ibm_falcon

  # Mirror circuit mapped onto a device, saved as a snapshot
  mqtbench generate --level mapped --algorithm ghz --num-qubits 5 \
      --target ibm_falcon_27 --mirror --output-format snapshot --save`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runGenerate(c, cfg, &flags)
		},
	}

	flags.AddTo(c)

	return c
}

func runGenerate(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags *cmdutil.GenerateFlags) error {
	flags.Complete(c)

	defaults := config.DefaultConfig()
	optLevel, optRV, err := cmdutil.ResolveInt(c, cfg, cmdutil.Setting{
		Flag: "optimization-level", Key: "defaults.optLevel", Default: defaults.Defaults.OptLevel,
	})
	if err != nil {
		return exitError(err)
	}
	format, formatRV, err := cmdutil.ResolveString(c, cfg, cmdutil.Setting{
		Flag: "output-format", Key: "output.format", Default: defaults.Output.Format,
	})
	if err != nil {
		return exitError(err)
	}
	dir, dirRV, err := cmdutil.ResolveString(c, cfg, cmdutil.Setting{
		Flag: "target-directory", Key: "output.directory", Default: defaults.Output.Directory,
	})
	if err != nil {
		return exitError(err)
	}
	config.LogResolvedValues([]config.ResolvedValue{optRV, formatRV, dirRV})

	flags.OptLevel = optLevel
	flags.OutputFormat = format
	flags.TargetDirectory = dir

	level, outFormat, err := flags.Parse()
	if err != nil {
		return exitError(err)
	}
	if level == bench.ALG {
		flags.OptLevel = 0
	}

	ctx := c.Context()
	result, err := cmdutil.Generate(ctx, cmdutil.GenerateOpts{
		Algorithm:        flags.Algorithm,
		NumQubits:        flags.NumQubits,
		Level:            level,
		TargetName:       flags.Target,
		OptLevel:         flags.OptLevel,
		RandomParameters: flags.RandomParameters,
		Mirror:           flags.Mirror,
		Config:           cfg,
	})
	if err != nil {
		return err
	}
	cmdutil.WriteGenerateSummary(result, cfg.Verbose)

	_, err = cmdutil.Emit(ctx, c.OutOrStdout(), result, cmdutil.EmitOpts{
		Format:    outFormat,
		Save:      flags.Save || outFormat == export.FormatSnapshot,
		Directory: flags.TargetDirectory,
		Config:    cfg,
	})
	return err
}

// exitError attaches the exit code matching err.
func exitError(err error) error {
	return &cmdtypes.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
}
