package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/mqtbench/cli/internal/bench"
	"github.com/mqtbench/cli/internal/registry"
	"github.com/mqtbench/cli/internal/target"
	"github.com/mqtbench/cli/internal/version"
)

// InfoURL is printed in every header.
const InfoURL = "https://www.cda.cit.tum.de/mqtbench/"

var now = time.Now

// GenerateHeader returns the provenance comment block written before every
// exported circuit, including the trailing blank line. NATIVEGATES and
// MAPPED headers also describe tgt.
func GenerateHeader(format Format, level bench.Level, tgt *target.Target) (string, error) {
	lines := []string{
		"// Benchmark created by MQT Bench on " + now().Format(time.DateOnly),
		"// For more info: " + InfoURL,
		"// MQT Bench version: " + version.Version,
		"// Compiler version: " + version.CompilerVersion(),
		"// Output format: " + format.String(),
	}

	if level.NeedsTarget() {
		if tgt == nil {
			return "", &bench.TargetRequiredError{Level: level}
		}
		lines = append(lines,
			"// Level: "+level.String(),
			"// Target: "+tgt.Description,
			"// Used gateset: "+registry.QuoteList(tgt.Operations()),
		)
		if level == bench.MAPPED {
			lines = append(lines, "// Coupling map: "+couplingMap(tgt))
		}
	}
	return strings.Join(lines, "\n") + "\n\n", nil
}

func couplingMap(tgt *target.Target) string {
	edges := tgt.CouplingMap()
	if len(edges) == 0 {
		return "all-to-all"
	}
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = fmt.Sprintf("[%d, %d]", e[0], e[1])
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
