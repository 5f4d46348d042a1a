package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "qasm3", cfg.Output.Format)
	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, 2, cfg.Defaults.OptLevel)
	assert.True(t, cfg.Index.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestConfig_IndexPath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".mqtbench/index.db", cfg.IndexPath())
	assert.Equal(t, "out/.mqtbench/index.db", cfg.IndexPathFor("out"))

	cfg.Output.Directory = "/data/bench"
	assert.Equal(t, "/data/bench/.mqtbench/index.db", cfg.IndexPath())

	cfg.Index.Path = "/var/lib/index.db"
	assert.Equal(t, "/var/lib/index.db", cfg.IndexPath())
	assert.Equal(t, "/var/lib/index.db", cfg.IndexPathFor("out"))
}
