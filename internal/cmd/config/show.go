package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/config"
	"github.com/tctrl/cli/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved configuration",
		Long: `Show every configuration key, its value and where the value came from
(flag, env, config or default).`,
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintf(c.OutOrStdout(), "Config file: %s (%s)\n\n", cfg.ConfigPath, cfg.ConfigSource)
			fmt.Fprintln(c.OutOrStdout(), resolvedTable(cfg.Resolved).String())
			return nil
		},
	}
}

func resolvedTable(values []config.ResolvedValue) *output.Table {
	t := output.NewTable("KEY", "VALUE", "SOURCE", "SHADOWED")
	for _, v := range values {
		t.Row(v.Key, fmt.Sprint(v.Value), string(v.Source), shadowed(v.Shadowed))
	}
	return t
}

func shadowed(values map[config.ConfigSource]any) string {
	parts := make([]string, 0, len(values))
	for source, value := range values {
		parts = append(parts, fmt.Sprintf("%s=%v", source, value))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
