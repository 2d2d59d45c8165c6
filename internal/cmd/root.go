// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdconfig "github.com/tctrl/cli/internal/cmd/config"
	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/cmdutil"
	"github.com/tctrl/cli/internal/config"
	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/output"
)

// globalFlags holds the persistent flags of the root command.
type globalFlags struct {
	config     string
	output     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the tctrl CLI.
func NewRootCmd() *cobra.Command {
	cfg := &cmdtypes.GlobalConfig{}
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tctrl",
		Short: "Control schema toolkit",
		Long: `tctrl reads, validates, queries and normalizes control schemas.

A control schema describes an app as a tree of modules, each exposing typed
params, together with shared option lists and module type templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return initializeGlobals(c, cfg, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: TCTRL_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "yaml", "Document format: yaml, json (env: TCTRL_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewProcessCmd(cfg))
	rootCmd.AddCommand(NewVetCmd(cfg))
	rootCmd.AddCommand(NewShowCmd(cfg))
	rootCmd.AddCommand(NewParamsCmd(cfg))
	rootCmd.AddCommand(NewGetCmd(cfg))
	rootCmd.AddCommand(NewDiffCmd(cfg))
	rootCmd.AddCommand(cmdconfig.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads configuration, resolves every key against the
// flags of the executing command and sets up logging.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags *globalFlags) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: flags.config,
	})
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	loader := config.NewLoader()
	if _, err := loader.Load(pathResult.ConfigPath); err != nil {
		// Commands that do not depend on the file keep working; config vet
		// reports the problem.
		output.Debug("config load error", "path", pathResult.ConfigPath, "error", err)
	}

	resolved, values, err := loader.ResolveAll(cmdutil.FlagValues(c))
	if err != nil {
		return err
	}

	format, ok := output.ParseFormat(resolved.Output)
	if !ok {
		return oerrors.NewValidationError(
			fmt.Sprintf("unsupported output format %q", resolved.Output),
			"", "output",
			fmt.Sprintf("Use one of: %v", output.ValidFormats()),
		)
	}

	cfg.Config = resolved
	cfg.ConfigPath = pathResult.ConfigPath
	cfg.ConfigSource = pathResult.Source
	cfg.Format = format
	cfg.Resolved = values
	cfg.Verbose = flags.verbose

	output.SetupLogging(output.LogConfig{
		Verbose:    flags.verbose,
		Timestamps: resolved.Log.Timestamps,
	})

	if flags.verbose {
		output.Debug("initializing CLI",
			"config", pathResult.ConfigPath,
			"configSource", pathResult.Source,
			"output", format,
		)
		config.LogResolvedValues(values)
	}

	return nil
}
