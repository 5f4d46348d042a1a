// Package cmdutil provides shared command utilities for the mqtbench
// subcommands. It centralizes flag groups, generation orchestration, and
// output helpers.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mqtbench/cli/internal/bench"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/export"
	"github.com/mqtbench/cli/internal/output"
)

// GenerateFlags holds the flags of `mqtbench generate`.
type GenerateFlags struct {
	Level            string
	Algorithm        string
	NumQubits        int
	OptLevel         int
	Target           string
	RandomParameters bool
	OutputFormat     string
	TargetDirectory  string
	Save             bool
	Mirror           bool
}

// AddTo registers the generate flags on the given cobra command.
func (f *GenerateFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Level, "level", "",
		`Level to generate benchmarks for ("alg", "indep", "nativegates" or "mapped")`)
	cmd.Flags().StringVar(&f.Algorithm, "algorithm", "",
		"Name of the benchmark (e.g. 'ghz', 'qft')")
	cmd.Flags().IntVar(&f.NumQubits, "num-qubits", 0,
		"Number of qubits for the benchmark")
	cmd.Flags().IntVar(&f.OptLevel, "optimization-level", bench.DefaultOptLevel,
		"Compiler optimization level (0-3, default: from config)")
	cmd.Flags().StringVar(&f.Target, "target", "",
		"Gateset for nativegates or device for mapped (e.g. 'ibm_falcon' or 'ibm_falcon_127')")
	cmd.Flags().BoolVar(&f.RandomParameters, "random-parameters", true,
		"Assign random values to free parameters")
	cmd.Flags().Bool("no-random-parameters", false,
		"Keep free parameters unbound")
	cmd.Flags().StringVar(&f.OutputFormat, "output-format", export.DefaultFormat.String(),
		fmt.Sprintf("Output format %v (default: from config)", formatNames()))
	cmd.Flags().StringVar(&f.TargetDirectory, "target-directory", ".",
		"Directory to save the output file (default: from config)")
	cmd.Flags().BoolVar(&f.Save, "save", false,
		"Save the output to a file instead of printing to stdout")
	cmd.Flags().BoolVar(&f.Mirror, "mirror", false,
		"Generate the mirror circuit (circuit followed by its inverse)")

	_ = cmd.MarkFlagRequired("level")
	_ = cmd.MarkFlagRequired("algorithm")
	_ = cmd.MarkFlagRequired("num-qubits")
	cmd.MarkFlagsMutuallyExclusive("random-parameters", "no-random-parameters")
}

// Complete folds --no-random-parameters into RandomParameters.
func (f *GenerateFlags) Complete(cmd *cobra.Command) {
	if no, err := cmd.Flags().GetBool("no-random-parameters"); err == nil && no {
		f.RandomParameters = false
	}
}

// Parse validates the flag values and returns the level and output format.
func (f *GenerateFlags) Parse() (bench.Level, export.Format, error) {
	level, err := bench.ParseLevel(f.Level)
	if err != nil {
		return 0, "", err
	}
	format, err := export.ParseFormat(f.OutputFormat)
	if err != nil {
		return 0, "", oerrors.NewValidationError(err.Error(), "output-format", "")
	}
	if f.NumQubits <= 0 {
		return 0, "", oerrors.NewValidationError(
			fmt.Sprintf("--num-qubits must be a positive integer, got %d", f.NumQubits),
			"num-qubits", "")
	}
	if level.NeedsTarget() && f.Target == "" {
		return 0, "", oerrors.NewValidationError(
			fmt.Sprintf("Target must be provided for '%s' level.", level),
			"target", "list candidates with 'mqtbench list gatesets' or 'mqtbench list devices'")
	}
	return level, format, nil
}

func formatNames() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// ListFlags holds the output flag shared by the list subcommands.
type ListFlags struct {
	Output string
}

// AddTo registers the list flags on the given cobra command.
func (f *ListFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Output, "output", "o", output.FormatTable.String(),
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidFormats(), ", ")))
}

// Format validates and returns the output format.
func (f *ListFlags) Format() (output.OutputFormat, error) {
	format, ok := output.ParseOutputFormat(f.Output)
	if !ok {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("invalid output format %q", f.Output), "output",
			"valid formats: "+strings.Join(output.ValidFormats(), ", "))
	}
	return format, nil
}

// ArtifactFilterFlags narrows `mqtbench list artifacts`.
type ArtifactFilterFlags struct {
	Benchmark       string
	Level           string
	TargetDirectory string
}

// AddTo registers the artifact filter flags on the given cobra command.
func (f *ArtifactFilterFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Benchmark, "benchmark", "",
		"Only list artifacts of this benchmark")
	cmd.Flags().StringVar(&f.Level, "level", "",
		"Only list artifacts of this level")
	cmd.Flags().StringVar(&f.TargetDirectory, "target-directory", "",
		"Directory whose index is read (default: from config)")
}
