package cmdutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"sigs.k8s.io/yaml"

	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/output"
)

// PrintGenerateError prints a pipeline or export error in a user-friendly
// format. Structured errors print their message and hint on separate lines;
// other errors fall back to the key-value log format.
func PrintGenerateError(msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(fmt.Sprintf("%s: %s", msg, detail.Message))
		if detail.Hint != "" {
			output.Info("hint: " + detail.Hint)
		}
		return
	}
	output.Error(msg, "error", err)
}

// WriteGenerateSummary logs one line per generated circuit (always shown),
// with gate counts when verbose.
func WriteGenerateSummary(result *GenerateResult, verbose bool) {
	benchLog := output.BenchmarkLogger(result.Name)

	if !verbose {
		benchLog.Info(output.FormatCheckmark(fmt.Sprintf("%s generated", result.Level)),
			"qubits", result.Circuit.NumQubits)
		return
	}

	keyvals := []interface{}{
		"qubits", result.Circuit.NumQubits,
		"gates", result.Circuit.Size(),
		"depth", result.Circuit.Depth(),
		"opt_level", result.OptLevel,
		"duration", result.Elapsed.Round(time.Millisecond),
	}
	if result.Target != nil {
		keyvals = append(keyvals, "target", result.Target.Description)
	}
	benchLog.Info(output.FormatCheckmark(fmt.Sprintf("%s generated", result.Level)), keyvals...)
	counts := result.Circuit.CountOps()
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		benchLog.Debug("gate count", "gate", name, "count", counts[name])
	}
}

// WriteStructured writes v to w as YAML or JSON.
func WriteStructured(w io.Writer, format output.OutputFormat, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case output.FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case output.FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s output: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
