package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FlagPrecedence(t *testing.T) {
	result := Resolve(ResolveOptions{
		Key:     "defaults.optLevel",
		Flag:    Set(3),
		Env:     Set("1"),
		Config:  Set(0),
		Default: 2,
	})

	assert.Equal(t, 3, result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "1", result.Shadowed[SourceEnv])
	assert.Equal(t, 0, result.Shadowed[SourceConfig])
	assert.Equal(t, 2, result.Shadowed[SourceDefault])
}

func TestResolve_EnvPrecedence(t *testing.T) {
	result := Resolve(ResolveOptions{
		Key:     "output.format",
		Env:     Set("qasm2"),
		Config:  Set("snapshot"),
		Default: "qasm3",
	})

	assert.Equal(t, "qasm2", result.String())
	assert.Equal(t, SourceEnv, result.Source)
	assert.NotContains(t, result.Shadowed, SourceFlag)
}

func TestResolve_ConfigFallback(t *testing.T) {
	result := Resolve(ResolveOptions{Key: "k", Config: Set("from-file")})

	assert.Equal(t, "from-file", result.Value)
	assert.Equal(t, SourceConfig, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestResolve_Default(t *testing.T) {
	result := Resolve(ResolveOptions{Key: "k", Default: "."})

	assert.Equal(t, ".", result.Value)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestEnvCandidate(t *testing.T) {
	t.Setenv("MQTBENCH_OUTPUT_DIRECTORY", "/env/dir")
	c := EnvCandidate("output.directory")
	assert.True(t, c.Set)
	assert.Equal(t, "/env/dir", c.Value)

	assert.False(t, EnvCandidate("tracing.endpoint").Set)
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv("MQTBENCH_CONFIG", "/env/config.yaml")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/config.yaml"})
		require.NoError(t, err)
		assert.Equal(t, "/flag/config.yaml", result.String())
		assert.Equal(t, SourceFlag, result.Source)
		assert.Equal(t, "/env/config.yaml", result.Shadowed[SourceEnv])
	})

	t.Run("default path", func(t *testing.T) {
		t.Setenv("MQTBENCH_CONFIG", "")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)
		assert.Equal(t, SourceDefault, result.Source)
		assert.Equal(t, "config.yaml", filepath.Base(result.String()))
	})
}
