package config

import (
	"fmt"
	"os"

	"github.com/mqtbench/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Candidate is one possible value for a setting.
type Candidate struct {
	Value any
	Set   bool
}

// Set returns a candidate that is present.
func Set(value any) Candidate {
	return Candidate{Value: value, Set: true}
}

// ResolveOptions lists the candidates for a single setting.
type ResolveOptions struct {
	Key     string
	Flag    Candidate
	Env     Candidate
	Config  Candidate
	Default any
}

// ResolvedValue records the winning value for a key and what it shadowed.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}

// Resolve applies the precedence flag > env > config > default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Value:    opts.Default,
		Source:   SourceDefault,
		Shadowed: make(map[ConfigSource]any),
	}

	ordered := []struct {
		source    ConfigSource
		candidate Candidate
	}{
		{SourceFlag, opts.Flag},
		{SourceEnv, opts.Env},
		{SourceConfig, opts.Config},
	}

	won := false
	for _, c := range ordered {
		if !c.candidate.Set {
			continue
		}
		if !won {
			result.Value = c.candidate.Value
			result.Source = c.source
			won = true
			continue
		}
		result.Shadowed[c.source] = c.candidate.Value
	}
	if won && opts.Default != nil {
		result.Shadowed[SourceDefault] = opts.Default
	}

	return result
}

// EnvCandidate looks up the environment variable bound to key.
func EnvCandidate(key string) Candidate {
	if v, ok := os.LookupEnv(EnvVar(key)); ok && v != "" {
		return Set(v)
	}
	return Candidate{}
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) MQTBENCH_CONFIG env, (3) ~/.mqtbench/config.yaml
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}

	flag := Candidate{}
	if opts.FlagValue != "" {
		flag = Set(opts.FlagValue)
	}
	env := Candidate{}
	if v := os.Getenv("MQTBENCH_CONFIG"); v != "" {
		env = Set(v)
	}

	return Resolve(ResolveOptions{
		Key:     "config",
		Flag:    flag,
		Env:     env,
		Default: paths.ConfigFile,
	}), nil
}

// String returns the resolved value as a string.
func (r ResolvedValue) String() string {
	if s, ok := r.Value.(string); ok {
		return s
	}
	return fmt.Sprint(r.Value)
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
