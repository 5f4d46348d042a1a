package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show mqtbench version information.

Displays:
  - mqtbench version, commit, and build date
  - Go version
  - Compiler service version written into circuit headers
  - CUE SDK version (embedded in CLI)`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(_ *cobra.Command, _ []string) error {
	output.Println(version.Get().String())
	return nil
}
