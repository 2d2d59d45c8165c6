package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/cmdutil"
	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/output"
	"github.com/tctrl/cli/internal/processing"
)

// NewGetCmd creates the get command.
func NewGetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var embed bool

	c := &cobra.Command{
		Use:   "get <file|-> <path>",
		Short: "Print one node of a schema",
		Long: `Print the module or param at a path.

Segments name child modules; a final segment starting with '@' names a param.
Paths are relative to the app or absolute.

Examples:
  tctrl get show.yaml master
  tctrl get show.yaml master/@speed -o json
  tctrl get show.yaml /show/deck/l1/@opacity --embed`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			app, err := cmdutil.LoadSchema(args[0], c.InOrStdin())
			if err != nil {
				return err
			}
			if embed {
				app = processing.Process(app, processing.Options{
					EmbedModuleTypes: true,
					EmbedOptionLists: true,
				})
			}

			node := resolveNode(app, args[1])
			if node == nil {
				return oerrors.NewNotFoundError("nothing at path", args[1],
					"Module segments are keys; params are '@key' and must come last.")
			}
			return output.WriteNode(c.OutOrStdout(), node, cfg.OutputFormat())
		},
	}

	c.Flags().BoolVar(&embed, "embed", false, "Embed module types and option lists first")

	return c
}
