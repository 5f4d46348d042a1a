package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mqtbench/cli/internal/cmdtypes"
	"github.com/mqtbench/cli/internal/config"
	oerrors "github.com/mqtbench/cli/internal/errors"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the mqtbench configuration file",
		Long: `Validate the mqtbench configuration file against the embedded schema.

The command validates the configuration file at ~/.mqtbench/config.yaml by default.
Use --config flag or MQTBENCH_CONFIG to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := configFilePath(cfg)
	if err != nil {
		return err
	}

	exists, err := fileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitNotFound,
			Err:  oerrors.NewNotFoundError("config file not found", path, "create one with 'mqtbench config init'"),
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err, Printed: true}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}
