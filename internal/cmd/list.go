package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mqtbench/cli/internal/bench"
	"github.com/mqtbench/cli/internal/benchmarks"
	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/cmdutil"
	"github.com/mqtbench/cli/internal/index"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/targets"
)

// NewListCmd creates the list command group.
func NewListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List benchmarks, gatesets, devices, or saved artifacts",
		Long: `List the available benchmarks, gatesets and devices, or the
circuits saved by 'mqtbench generate'.`,
	}

	c.AddCommand(newListBenchmarksCmd(benchmarks.Default()))
	c.AddCommand(newListGatesetsCmd(targets.Default()))
	c.AddCommand(newListDevicesCmd(targets.Default()))
	c.AddCommand(newListArtifactsCmd(cfg))

	return c
}

type benchmarkEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newListBenchmarksCmd(catalog *benchmarks.Catalog) *cobra.Command {
	var flags cmdutil.ListFlags
	c := &cobra.Command{
		Use:   "benchmarks",
		Short: "List the available benchmarks",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := flags.Format()
			if err != nil {
				return exitError(err)
			}
			names, err := catalog.Names()
			if err != nil {
				return exitError(err)
			}
			descriptions, err := catalog.Descriptions()
			if err != nil {
				return exitError(err)
			}

			entries := make([]benchmarkEntry, 0, len(names))
			tbl := output.NewTable("NAME", "DESCRIPTION")
			for _, name := range names {
				entries = append(entries, benchmarkEntry{Name: name, Description: descriptions[name]})
				tbl.Row(name, descriptions[name])
			}
			return writeList(c.OutOrStdout(), format, tbl, entries)
		},
	}
	flags.AddTo(c)
	return c
}

type gatesetEntry struct {
	Name  string   `json:"name"`
	Gates []string `json:"gates"`
}

func newListGatesetsCmd(catalog *targets.Catalog) *cobra.Command {
	var flags cmdutil.ListFlags
	c := &cobra.Command{
		Use:   "gatesets",
		Short: "List the gatesets accepted by --level nativegates",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := flags.Format()
			if err != nil {
				return exitError(err)
			}
			names, err := catalog.GatesetNames()
			if err != nil {
				return exitError(err)
			}

			entries := make([]gatesetEntry, 0, len(names))
			tbl := output.NewTable("NAME", "GATES")
			for _, name := range names {
				gates, err := catalog.Gateset(name)
				if err != nil {
					return exitError(err)
				}
				entries = append(entries, gatesetEntry{Name: name, Gates: gates})
				tbl.Row(name, strings.Join(gates, " "))
			}
			return writeList(c.OutOrStdout(), format, tbl, entries)
		},
	}
	flags.AddTo(c)
	return c
}

type deviceEntry struct {
	Name        string   `json:"name"`
	NumQubits   int      `json:"numQubits"`
	Gates       []string `json:"gates"`
	Couplings   int      `json:"couplings"`
	AllToAll    bool     `json:"allToAll"`
	Description string   `json:"description"`
}

func newListDevicesCmd(catalog *targets.Catalog) *cobra.Command {
	var flags cmdutil.ListFlags
	c := &cobra.Command{
		Use:   "devices",
		Short: "List the devices accepted by --level mapped",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := flags.Format()
			if err != nil {
				return exitError(err)
			}
			names, err := catalog.DeviceNames()
			if err != nil {
				return exitError(err)
			}

			entries := make([]deviceEntry, 0, len(names))
			tbl := output.NewTable("NAME", "QUBITS", "GATES", "COUPLING")
			for _, name := range names {
				dev, err := catalog.Device(name)
				if err != nil {
					return exitError(err)
				}
				edges := dev.CouplingMap()
				e := deviceEntry{
					Name:        name,
					NumQubits:   dev.NumQubits,
					Gates:       dev.Operations(),
					Couplings:   len(edges),
					AllToAll:    edges == nil,
					Description: dev.Description,
				}
				entries = append(entries, e)

				coupling := "all-to-all"
				if !e.AllToAll {
					coupling = fmt.Sprintf("%d edges", e.Couplings)
				}
				tbl.Row(name, strconv.Itoa(e.NumQubits), strings.Join(e.Gates, " "), coupling)
			}
			return writeList(c.OutOrStdout(), format, tbl, entries)
		},
	}
	flags.AddTo(c)
	return c
}

func newListArtifactsCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		flags  cmdutil.ListFlags
		filter cmdutil.ArtifactFilterFlags
	)
	c := &cobra.Command{
		Use:   "artifacts",
		Short: "List circuits saved by 'mqtbench generate'",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := flags.Format()
			if err != nil {
				return exitError(err)
			}
			if filter.Level != "" {
				level, err := bench.ParseLevel(filter.Level)
				if err != nil {
					return exitError(err)
				}
				filter.Level = level.String()
			}

			settings := cfg.Settings()
			dir := filter.TargetDirectory
			if dir == "" {
				dir = settings.Output.Directory
			}
			artifacts, err := listArtifacts(c.Context(), settings.IndexPathFor(dir),
				index.Filter{Benchmark: filter.Benchmark, Level: filter.Level})
			if err != nil {
				return exitError(err)
			}

			tbl := output.NewTable("PATH", "LEVEL", "QUBITS", "TARGET", "OPT", "MIRROR", "FORMAT", "CREATED")
			for _, a := range artifacts {
				tbl.Row(a.Path, a.Level, strconv.Itoa(a.NumQubits), a.Target, strconv.Itoa(a.OptLevel),
					strconv.FormatBool(a.Mirror), a.Format, a.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			}
			tbl.CellStyle(func(_, col int, cell string) lipgloss.Style {
				if col == 1 {
					return output.LevelStyle(cell)
				}
				return lipgloss.NewStyle()
			})
			return writeList(c.OutOrStdout(), format, tbl, artifacts)
		},
	}
	flags.AddTo(c)
	filter.AddTo(c)
	return c
}

// listArtifacts reads the index at path. A missing index lists nothing.
func listArtifacts(ctx context.Context, path string, f index.Filter) ([]index.Artifact, error) {
	artifacts := []index.Artifact{}
	exists, err := fileExists(path)
	if err != nil || !exists {
		return artifacts, err
	}

	x, err := index.Open(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	found, err := x.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return append(artifacts, found...), nil
}

// writeList renders tbl for table output, or entries as YAML or JSON.
func writeList(w io.Writer, format output.OutputFormat, tbl *output.Table, entries any) error {
	if format == output.FormatTable {
		if tbl.Len() == 0 {
			_, err := fmt.Fprintln(w, "No entries.")
			return err
		}
		_, err := fmt.Fprintln(w, tbl.String())
		return err
	}
	return cmdutil.WriteStructured(w, format, entries)
}
