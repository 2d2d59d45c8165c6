package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/cmdutil"
	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/output"
	"github.com/tctrl/cli/internal/processing"
	"github.com/tctrl/cli/internal/schema"
)

// NewParamsCmd creates the params command.
func NewParamsCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var embed bool

	c := &cobra.Command{
		Use:   "params <file|-> [module path]",
		Short: "List params as a table",
		Long: `List the params of every module, or of the modules below one module path.

Paths are relative to the app ("master/fx") or absolute ("/show/master/fx").

Examples:
  tctrl params show.yaml
  tctrl params show.yaml deck/l1 --embed`,
		Args: cobra.RangeArgs(1, 2),
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

			var root schema.Container = app
			if len(args) == 2 {
				m, ok := resolveNode(app, args[1]).(*schema.ModuleSpec)
				if !ok {
					return oerrors.NewNotFoundError("no module at path", args[1],
						"Use 'tctrl show' to list module paths.")
				}
				root = m
			}

			table := output.ParamTable(root)
			if table.Len() == 0 {
				fmt.Fprintln(c.OutOrStdout(), "No params")
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), table.String())
			return nil
		},
	}

	c.Flags().BoolVar(&embed, "embed", false, "Embed module types and option lists first")

	return c
}

// resolveNode looks up an absolute path ("/app/...") or a path relative to
// the app.
func resolveNode(app *schema.AppSchema, path string) schema.Node {
	if strings.HasPrefix(path, "/") {
		return schema.ResolveAbsolute(app, path)
	}
	return schema.EvaluatePath(app, path)
}
