package cmdutil

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/config"
	oerrors "github.com/mqtbench/cli/internal/errors"
)

// Setting pairs a command flag with the config key it overrides.
type Setting struct {
	Flag    string
	Key     string
	Default any
}

// Resolve applies flag > env > config > default to one setting. The flag
// only counts when the user set it explicitly.
func Resolve(cmd *cobra.Command, cfg *cmdtypes.GlobalConfig, s Setting) config.ResolvedValue {
	opts := config.ResolveOptions{
		Key:     s.Key,
		Env:     config.EnvCandidate(s.Key),
		Default: s.Default,
	}
	if f := cmd.Flags().Lookup(s.Flag); f != nil && f.Changed {
		opts.Flag = config.Set(f.Value.String())
	}
	if cfg != nil && cfg.Loader != nil {
		if v, ok := cfg.Loader.FileValue(s.Key); ok {
			opts.Config = config.Set(v)
		}
	}
	return config.Resolve(opts)
}

// ResolveString resolves a string setting.
func ResolveString(cmd *cobra.Command, cfg *cmdtypes.GlobalConfig, s Setting) (string, config.ResolvedValue, error) {
	rv := Resolve(cmd, cfg, s)
	v, err := cast.ToStringE(rv.Value)
	if err != nil {
		return "", rv, settingError(rv, err)
	}
	return v, rv, nil
}

// ResolveInt resolves an integer setting.
func ResolveInt(cmd *cobra.Command, cfg *cmdtypes.GlobalConfig, s Setting) (int, config.ResolvedValue, error) {
	rv := Resolve(cmd, cfg, s)
	v, err := cast.ToIntE(rv.Value)
	if err != nil {
		return 0, rv, settingError(rv, err)
	}
	return v, rv, nil
}

func settingError(rv config.ResolvedValue, err error) error {
	return oerrors.NewValidationError(
		fmt.Sprintf("invalid value %v for %s from %s: %v", rv.Value, rv.Key, rv.Source, err),
		rv.Key, "")
}
