package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/cmdutil"
	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/loader"
	"github.com/tctrl/cli/internal/output"
	"github.com/tctrl/cli/internal/processing"
	"github.com/tctrl/cli/internal/schema"
)

// processOptions holds the flags for the process command.
type processOptions struct {
	steps cmdutil.ProcessFlags
	diff  bool
	watch bool
	out   string
}

// NewProcessCmd creates the process command.
func NewProcessCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &processOptions{}

	c := &cobra.Command{
		Use:   "process <file|->",
		Short: "Normalize a schema",
		Long: `Normalize a schema document and write the result.

Steps (all off by default, see also the process.* config keys):
  --embed-module-types   instantiate moduleType templates into modules
  --embed-option-lists   copy shared option lists into params
  --param-groups         declare every param group key a module uses
  --child-groups         declare every child group key a container uses

The shared tables are removed after embedding unless --strip-module-types=false
or --strip-option-lists=false is given. The input file is never modified.

Examples:
  # Run every step and print YAML
  tctrl process show.yaml --all

  # Read stdin, write JSON to a file
  cat show.yaml | tctrl process - --embed-option-lists --out show.json

  # Show what normalization changes
  tctrl process show.yaml --all --diff

  # Re-run whenever the file is saved
  tctrl process show.yaml --all --watch --out build/show.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runProcess(c, args[0], cfg, opts)
		},
	}

	opts.steps.AddTo(c)
	c.Flags().BoolVar(&opts.diff, "diff", false, "Print the differences between input and result instead of the result")
	c.Flags().BoolVar(&opts.watch, "watch", false, "Re-run when the input file changes")
	c.Flags().StringVar(&opts.out, "out", "", "Write the result to a file instead of stdout")

	return c
}

func runProcess(c *cobra.Command, path string, cfg *cmdtypes.GlobalConfig, opts *processOptions) error {
	if opts.watch && path == loader.Stdin {
		return oerrors.NewValidationError("--watch needs a file, not stdin", "", "watch", "")
	}

	if err := processOnce(c, path, cfg, opts); err != nil {
		if !opts.watch {
			return err
		}
		// Keep watching: the next save may fix the document.
		warnWatchFailure(path, err)
	}
	if !opts.watch {
		return nil
	}

	watcher, err := loader.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	output.Info("watching for changes", "file", path)

	err = watcher.Run(c.Context(), func() {
		if err := processOnce(c, path, cfg, opts); err != nil {
			warnWatchFailure(path, err)
			return
		}
		output.Info("processed", "file", path)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// warnWatchFailure reports a failed run in watch mode. Errors already
// printed are not repeated.
func warnWatchFailure(path string, err error) {
	var exitErr *cmdtypes.ExitError
	if errors.As(err, &exitErr) && exitErr.Printed {
		output.Warn("process failed, waiting for changes", "file", path)
		return
	}
	output.Warn("process failed, waiting for changes", "file", path, "err", err)
}

// processOnce loads, normalizes and writes the schema once.
func processOnce(c *cobra.Command, path string, cfg *cmdtypes.GlobalConfig, opts *processOptions) error {
	app, err := cmdutil.LoadSchema(path, c.InOrStdin())
	if err != nil {
		return err
	}

	pipeline := opts.steps.Options(c, cfg.Process())
	strict := cfg.Process().Strict

	var collector processing.Collector
	if strict {
		pipeline.OnMissingOptionList = collector.OnMissingOptionList
		if pipeline.EmbedModuleTypes {
			collector.CheckModuleTypes(app)
		}
	} else {
		log := output.SchemaLogger(app.Key)
		pipeline.OnMissingOptionList = func(ref string, p *schema.ParamSpec) {
			log.Warn("option list not found", "optionList", ref, "param", p.Path)
		}
	}

	result := processing.Process(app, pipeline)

	if err := collector.Err(path); err != nil {
		cmdutil.PrintValidationError("strict processing failed", err)
		return cmdtypes.Printed(err)
	}

	if opts.diff {
		return writeProcessDiff(c.OutOrStdout(), path, app, result)
	}

	if opts.out != "" {
		format := cfg.OutputFormat()
		if !c.Flags().Changed("output") {
			format = output.FormatForPath(opts.out)
		}
		if err := output.WriteNodeFile(opts.out, result, format); err != nil {
			return err
		}
		output.Debug("wrote schema", "file", opts.out, "format", format)
		return nil
	}

	return output.WriteNode(c.OutOrStdout(), result, cfg.OutputFormat())
}

func writeProcessDiff(w io.Writer, path string, before, after *schema.AppSchema) error {
	result, err := output.DiffNodes(before, after, output.DiffOptions{
		FromName: path,
		ToName:   "processed",
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
	return nil
}
