package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/config"
	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the tctrl configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Only known keys are set, with values of the right type

The config path is resolved using precedence:
  --config flag > TCTRL_CONFIG env > ~/.tctrl/config.yaml

Examples:
  # Validate default configuration
  tctrl config vet

  # Validate custom config path
  tctrl config vet --config /path/to/config.yaml`,
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	configPath, err := targetPath(cfg)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}

	output.Debug("validating config", "path", configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configPath,
			Hint:     "Run 'tctrl config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidateFile(configPath); err != nil {
		var verrs config.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		output.Error(fmt.Sprintf("config validation failed: %s", configPath))
		for _, v := range verrs {
			output.Error("  "+v.Field, "reason", v.Message)
		}
		return cmdtypes.Printed(oerrors.NewValidationError(
			fmt.Sprintf("%d invalid field(s)", len(verrs)), configPath, "", ""))
	}

	if _, err := config.NewLoader().Load(configPath); err != nil {
		return oerrors.NewValidationError(err.Error(), configPath, "", "")
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+configPath))
	return nil
}
