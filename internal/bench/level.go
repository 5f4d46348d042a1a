package bench

import (
	"fmt"
	"strings"

	oerrors "github.com/mqtbench/cli/internal/errors"
)

// Level selects how far a benchmark is compiled. Levels are ordered; ALG is
// the source and MAPPED is terminal.
type Level int

const (
	ALG Level = iota
	INDEP
	NATIVEGATES
	MAPPED
)

// Levels returns every level in pipeline order.
func Levels() []Level {
	return []Level{ALG, INDEP, NATIVEGATES, MAPPED}
}

// String returns the lower-case level name used in filenames and flags.
func (l Level) String() string {
	switch l {
	case ALG:
		return "alg"
	case INDEP:
		return "indep"
	case NATIVEGATES:
		return "nativegates"
	case MAPPED:
		return "mapped"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// NeedsTarget reports whether the level compiles against a target.
func (l Level) NeedsTarget() bool {
	switch l {
	case ALG, INDEP:
		return false
	case NATIVEGATES, MAPPED:
		return true
	default:
		panic(unhandledLevel(l))
	}
}

// ParseLevel accepts a level name, case-insensitively, or its index 0-3.
func ParseLevel(s string) (Level, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Levels() {
		if key == l.String() || key == fmt.Sprint(int(l)) {
			return l, nil
		}
	}
	return 0, oerrors.NewValidationError(
		fmt.Sprintf("invalid level '%s'", s), "level",
		"valid levels: alg, indep, nativegates, mapped")
}

func unhandledLevel(l Level) string {
	return fmt.Sprintf("bench: unhandled level %d", int(l))
}
