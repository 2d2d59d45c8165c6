package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/cmdutil"
	"github.com/tctrl/cli/internal/output"
	"github.com/tctrl/cli/internal/processing"
)

// showOptions holds the flags for the show command.
type showOptions struct {
	params bool
	all    bool
}

// NewShowCmd creates the show command.
func NewShowCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &showOptions{}

	c := &cobra.Command{
		Use:   "show <file|->",
		Short: "Print the module tree of a schema",
		Long: `Print the module hierarchy of a schema as a tree.

Examples:
  tctrl show show.yaml
  tctrl show show.yaml --params --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			app, err := cmdutil.LoadSchema(args[0], c.InOrStdin())
			if err != nil {
				return err
			}
			if opts.all {
				app = processing.Process(app, processing.AllOptions())
			}
			fmt.Fprintln(c.OutOrStdout(), output.RenderSchemaTree(app, output.TreeOptions{Params: opts.params}))
			return nil
		},
	}

	c.Flags().BoolVar(&opts.params, "params", false, "List params under each module")
	c.Flags().BoolVar(&opts.all, "all", false, "Normalize the schema before printing")

	return c
}
