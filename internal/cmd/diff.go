package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mqtbench/cli/internal/cmdtypes"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/export"
	"github.com/mqtbench/cli/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var noColor bool

	c := &cobra.Command{
		Use:   "diff <a.qsnap> <b.qsnap>",
		Short: "Compare the circuits of two snapshots",
		Long: `Compare the circuits held by two snapshot files and print a
structural diff. Headers, ids and creation times are ignored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, args[0], args[1], !noColor && output.IsStdoutTTY())
		},
	}

	c.Flags().BoolVar(&noColor, "no-color", false, "Disable colored diff output")

	return c
}

func runDiff(c *cobra.Command, pathA, pathB string, useColor bool) error {
	a, err := readSnapshotYAML(pathA)
	if err != nil {
		return exitError(err)
	}
	b, err := readSnapshotYAML(pathB)
	if err != nil {
		return exitError(err)
	}

	body, err := output.DiffYAML(pathA, a, pathB, b, useColor)
	if err != nil {
		return fmt.Errorf("comparing snapshots: %w", err)
	}
	if body != "" {
		fmt.Fprintln(c.OutOrStdout(), body)
	}
	fmt.Fprintln(c.OutOrStdout(), output.DiffSummary(body))
	return nil
}

func readSnapshotYAML(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("snapshot file not found", path, "")
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := export.SnapshotYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
