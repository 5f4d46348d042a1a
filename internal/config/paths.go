package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for mqtbench.
type Paths struct {
	// ConfigFile is the path to the config file (~/.mqtbench/config.yaml).
	ConfigFile string

	// HomeDir is the mqtbench home directory (~/.mqtbench).
	HomeDir string

	// TraceFile receives spans from the file exporter when
	// tracing.filePath is unset (~/.mqtbench/traces.jsonl).
	TraceFile string
}

// DefaultPaths returns the default paths for mqtbench.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".mqtbench")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
		TraceFile:  filepath.Join(home, "traces.jsonl"),
	}, nil
}

// GetConfigFile returns the config file path.
// If MQTBENCH_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("MQTBENCH_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// TraceFilePath returns the expanded trace file for the file exporter:
// configured, or the default under the home directory.
func TraceFilePath(configured string) (string, error) {
	if configured != "" {
		return ExpandPath(configured)
	}
	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.TraceFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
