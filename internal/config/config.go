// Package config provides configuration loading and management.
package config

import "path/filepath"

// OutputConfig controls where and how circuits are written.
type OutputConfig struct {
	// Format is the default circuit output format.
	// Env: MQTBENCH_OUTPUT_FORMAT, Default: "qasm3"
	Format string `mapstructure:"format" json:"format,omitempty" yaml:"format,omitempty"`

	// Directory is the default target directory for saved circuits.
	// Env: MQTBENCH_OUTPUT_DIRECTORY, Default: "."
	Directory string `mapstructure:"directory" json:"directory,omitempty" yaml:"directory,omitempty"`
}

// DefaultsConfig holds defaults for generation parameters.
type DefaultsConfig struct {
	// OptLevel is the default compiler optimization level.
	// Env: MQTBENCH_OPT_LEVEL, Default: 2
	OptLevel int `mapstructure:"optLevel" json:"optLevel" yaml:"optLevel"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// IndexConfig controls the local artifact index.
type IndexConfig struct {
	// Enabled records every saved circuit in the index.
	// Env: MQTBENCH_INDEX_ENABLED, Default: true
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file.
	// Env: MQTBENCH_INDEX_PATH, Default: <output.directory>/.mqtbench/index.db
	Path string `mapstructure:"path" json:"path,omitempty" yaml:"path,omitempty"`
}

// TracingConfig controls span export for the level pipeline.
type TracingConfig struct {
	// Enabled turns span export on.
	// Env: MQTBENCH_TRACING_ENABLED, Default: false
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`

	// Exporter is one of "stdout", "file" or "otlp".
	Exporter string `mapstructure:"exporter" json:"exporter,omitempty" yaml:"exporter,omitempty"`

	// Endpoint is the OTLP gRPC endpoint.
	Endpoint string `mapstructure:"endpoint" json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// FilePath receives spans when Exporter is "file".
	FilePath string `mapstructure:"filePath" json:"filePath,omitempty" yaml:"filePath,omitempty"`

	// SampleRate is the fraction of traces sampled, in [0, 1].
	SampleRate float64 `mapstructure:"sampleRate" json:"sampleRate" yaml:"sampleRate"`
}

// Config represents the mqtbench CLI configuration.
// Loaded from ~/.mqtbench/config.yaml, validated against the embedded CUE schema.
type Config struct {
	Output   OutputConfig   `mapstructure:"output" json:"output" yaml:"output"`
	Defaults DefaultsConfig `mapstructure:"defaults" json:"defaults" yaml:"defaults"`
	Log      LogConfig      `mapstructure:"log" json:"log" yaml:"log"`
	Index    IndexConfig    `mapstructure:"index" json:"index" yaml:"index"`
	Tracing  TracingConfig  `mapstructure:"tracing" json:"tracing" yaml:"tracing"`
}

// Default values.
const (
	DefaultOutputFormat = "qasm3"
	DefaultDirectory    = "."
	DefaultOptLevel     = 2
	DefaultExporter     = "stdout"
	DefaultEndpoint     = "localhost:4317"
	DefaultSampleRate   = 1.0
)

// DefaultConfig returns a Config with all default values populated.
// Used by `mqtbench config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:    DefaultOutputFormat,
			Directory: DefaultDirectory,
		},
		Defaults: DefaultsConfig{OptLevel: DefaultOptLevel},
		Index:    IndexConfig{Enabled: true},
		Tracing: TracingConfig{
			Exporter:   DefaultExporter,
			Endpoint:   DefaultEndpoint,
			SampleRate: DefaultSampleRate,
		},
	}
}

// IndexPath returns the configured index path, or the default location
// under the output directory.
func (c *Config) IndexPath() string {
	return c.IndexPathFor(c.Output.Directory)
}

// IndexPathFor returns the configured index path, or the default location
// under dir.
func (c *Config) IndexPathFor(dir string) string {
	if c.Index.Path != "" {
		return c.Index.Path
	}
	if dir == "" {
		dir = DefaultDirectory
	}
	return filepath.Join(dir, ".mqtbench", "index.db")
}
