package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for mqtbench configuration.
const envPrefix = "MQTBENCH"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v    *viper.Viper
	file *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.directory", defaults.Output.Directory)
	v.SetDefault("defaults.optLevel", defaults.Defaults.OptLevel)
	v.SetDefault("index.enabled", defaults.Index.Enabled)
	v.SetDefault("index.path", "")
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.endpoint", defaults.Tracing.Endpoint)
	v.SetDefault("tracing.filePath", "")
	v.SetDefault("tracing.sampleRate", defaults.Tracing.SampleRate)

	for key, env := range envOverrides {
		_ = v.BindEnv(key, env)
	}

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	// A missing file is fine: defaults and env still apply.
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	l.file = viper.New()
	l.file.SetConfigFile(expandedPath)
	l.file.SetConfigType("yaml")
	if err := l.file.ReadInConfig(); err != nil {
		l.file = nil
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// FileValue returns the raw value of key as written in the config file,
// ignoring environment overrides and defaults.
func (l *Loader) FileValue(key string) (any, bool) {
	if l.file == nil || !l.file.IsSet(key) {
		return nil, false
	}
	return l.file.Get(key), true
}

// EnvVar returns the environment variable name bound to a config key.
func EnvVar(key string) string {
	if name, ok := envOverrides[key]; ok {
		return name
	}
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

var envOverrides = map[string]string{
	"defaults.optLevel":  "MQTBENCH_OPT_LEVEL",
	"log.timestamps":     "MQTBENCH_LOG_TIMESTAMPS",
	"tracing.sampleRate": "MQTBENCH_TRACING_SAMPLE_RATE",
	"tracing.filePath":   "MQTBENCH_TRACING_FILE_PATH",
}
