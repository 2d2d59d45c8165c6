package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/config"
	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the tctrl configuration.

Creates ~/.tctrl/config.yaml (or the file named by --config / TCTRL_CONFIG)
with every key set to its default and commented.

Examples:
  # Initialize configuration
  tctrl config init

  # Overwrite existing configuration
  tctrl config init --force`,
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	configPath, err := targetPath(cfg)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: configPath,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	// Owner-only permissions: 0700 directory, 0600 file.
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark("Configuration initialized at "+configPath))
	fmt.Fprintln(w, "Validate with: tctrl config vet")
	return nil
}

// targetPath is the resolved config path, or the default location when
// configuration was not resolved.
func targetPath(cfg *cmdtypes.GlobalConfig) (string, error) {
	if cfg != nil && cfg.ConfigPath != "" {
		return config.ExpandPath(cfg.ConfigPath)
	}
	paths, err := config.DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}
