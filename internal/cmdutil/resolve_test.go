package cmdutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/config"
	oerrors "github.com/mqtbench/cli/internal/errors"
)

func optLevelCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("optimization-level", 2, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func loadedConfig(t *testing.T, content string) *cmdtypes.GlobalConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	loader := config.NewLoader()
	cfg, err := loader.Load(path)
	require.NoError(t, err)
	return &cmdtypes.GlobalConfig{Config: cfg, Loader: loader}
}

var optLevelSetting = Setting{Flag: "optimization-level", Key: "defaults.optLevel", Default: 2}

func TestResolveInt_Precedence(t *testing.T) {
	t.Setenv("MQTBENCH_OPT_LEVEL", "")

	tests := []struct {
		name       string
		args       []string
		env        string
		file       string
		want       int
		wantSource config.ConfigSource
	}{
		{"default", nil, "", "", 2, config.SourceDefault},
		{"config", nil, "", "defaults:\n  optLevel: 1\n", 1, config.SourceConfig},
		{"env over config", nil, "0", "defaults:\n  optLevel: 1\n", 0, config.SourceEnv},
		{"flag over env", []string{"--optimization-level", "3"}, "0", "defaults:\n  optLevel: 1\n", 3, config.SourceFlag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MQTBENCH_OPT_LEVEL", tt.env)
			cfg := loadedConfig(t, tt.file)

			got, rv, err := ResolveInt(optLevelCmd(t, tt.args...), cfg, optLevelSetting)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSource, rv.Source)
		})
	}
}

func TestResolve_RecordsShadowedValues(t *testing.T) {
	t.Setenv("MQTBENCH_OPT_LEVEL", "")
	cfg := loadedConfig(t, "defaults:\n  optLevel: 1\n")

	rv := Resolve(optLevelCmd(t, "--optimization-level", "3"), cfg, optLevelSetting)
	assert.Equal(t, config.SourceFlag, rv.Source)
	assert.Contains(t, rv.Shadowed, config.SourceConfig)
	assert.Contains(t, rv.Shadowed, config.SourceDefault)
}

func TestResolve_WithoutLoader(t *testing.T) {
	t.Setenv("MQTBENCH_OPT_LEVEL", "")

	got, rv, err := ResolveInt(optLevelCmd(t), &cmdtypes.GlobalConfig{}, optLevelSetting)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, config.SourceDefault, rv.Source)
}

func TestResolveInt_RejectsNonNumbers(t *testing.T) {
	t.Setenv("MQTBENCH_OPT_LEVEL", "high")

	_, _, err := ResolveInt(optLevelCmd(t), nil, optLevelSetting)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
	assert.Contains(t, err.Error(), "defaults.optLevel")
}

func TestResolveString(t *testing.T) {
	t.Setenv("MQTBENCH_OUTPUT_FORMAT", "")
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("output-format", "qasm3", "")
	cfg := loadedConfig(t, "output:\n  format: snapshot\n")

	got, rv, err := ResolveString(cmd, cfg, Setting{Flag: "output-format", Key: "output.format", Default: "qasm3"})
	require.NoError(t, err)
	assert.Equal(t, "snapshot", got)
	assert.Equal(t, config.SourceConfig, rv.Source)
}
