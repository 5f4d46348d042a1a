package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/config"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new mqtbench configuration file",
		Long: `Create a new mqtbench configuration file with default values.

The configuration file is created at ~/.mqtbench/config.yaml by default.
Use --config flag or MQTBENCH_CONFIG to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runConfigInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := configFilePath(cfg)
	if err != nil {
		return err
	}

	exists, err := fileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err:  fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	header := []byte("# mqtbench CLI Configuration\n# Validate with: mqtbench config vet\n\n")
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", path)
	return nil
}

// configFilePath returns the resolved, expanded config file path.
func configFilePath(cfg *cmdtypes.GlobalConfig) (string, error) {
	path := ""
	if cfg != nil {
		path = cfg.ConfigPath
	}
	if path == "" {
		resolved, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{})
		if err != nil {
			return "", fmt.Errorf("getting config file path: %w", err)
		}
		path = resolved.String()
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return expanded, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
