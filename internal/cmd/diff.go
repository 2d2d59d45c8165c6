package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/cmdutil"
	"github.com/tctrl/cli/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var exitCode bool

	c := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Compare two schemas",
		Long: `Compare two schema documents by document path.

Both documents are parsed and compared in their clean form, so formatting,
key order of absent fields and JSON versus YAML do not show up as changes.

Examples:
  tctrl diff show-v1.yaml show-v2.yaml
  tctrl diff show.yaml build/show.json --exit-code`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			from, err := cmdutil.LoadSchema(args[0], c.InOrStdin())
			if err != nil {
				return err
			}
			to, err := cmdutil.LoadSchema(args[1], c.InOrStdin())
			if err != nil {
				return err
			}

			w := c.OutOrStdout()
			result, err := output.DiffNodes(from, to, output.DiffOptions{
				FromName: args[0],
				ToName:   args[1],
				Color:    output.ColorEnabled(w),
			})
			if err != nil {
				return err
			}
			if !result.HasChanges() {
				fmt.Fprintln(w, "No changes")
				return nil
			}
			fmt.Fprint(w, result.Report)
			if exitCode {
				return &cmdtypes.ExitError{Code: 1, Err: fmt.Errorf("%d change(s)", result.Changes), Printed: true}
			}
			return nil
		},
	}

	c.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with 1 when the schemas differ")

	return c
}
