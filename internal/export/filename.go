package export

import (
	"fmt"
	"strings"

	"github.com/mqtbench/cli/internal/bench"
	"github.com/mqtbench/cli/internal/target"
)

// GenerateFilename returns the artifact name, without extension, for a
// benchmark at a level. The result depends only on the arguments and is
// used as a persistent key.
//
//	alg:                  <name>_alg[_mirror]_<n>
//	indep:                <name>_indep[_mirror]_opt<o>_<n>
//	nativegates, mapped:  <name>_<level>[_mirror]_<target>_opt<o>_<n>
//
// <target> is the first word of the target description.
func GenerateFilename(name string, level bench.Level, numQubits int, tgt *target.Target, optLevel int, mirror bool) (string, error) {
	base := name + "_" + level.String()
	if mirror {
		base += bench.MirrorSuffix
	}

	switch level {
	case bench.ALG:
		return fmt.Sprintf("%s_%d", base, numQubits), nil
	case bench.INDEP:
		return fmt.Sprintf("%s_opt%d_%d", base, optLevel, numQubits), nil
	case bench.NATIVEGATES, bench.MAPPED:
		if tgt == nil {
			return "", &bench.TargetRequiredError{Level: level}
		}
		return fmt.Sprintf("%s_%s_opt%d_%d", base, targetWord(tgt.Description), optLevel, numQubits), nil
	default:
		return "", fmt.Errorf("unknown level %s", level)
	}
}

func targetWord(description string) string {
	fields := strings.Fields(description)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
