package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/cmdtypes"
	"github.com/tctrl/cli/internal/cmdutil"
	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/loader"
	"github.com/tctrl/cli/internal/output"
	"github.com/tctrl/cli/internal/processing"
	"github.com/tctrl/cli/internal/schema"
	"github.com/tctrl/cli/internal/validate"
)

// NewVetCmd creates the vet command.
func NewVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet <file|->...",
		Short: "Validate schema documents",
		Long: `Validate one or more schema documents.

Checks performed:
  1. The document matches the schema structure (unknown keys, value types)
  2. Every app, module, param, part and group has the fields it requires
  3. Sibling keys are unique (children, params, optionLists, moduleTypes)

Unresolved moduleType and optionList references are reported as warnings,
or as errors when strict processing is configured (process.strict).

Examples:
  tctrl vet show.yaml
  tctrl vet apps/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runVet(c, args, cfg)
		},
	}
}

func runVet(c *cobra.Command, paths []string, cfg *cmdtypes.GlobalConfig) error {
	v, err := validate.New()
	if err != nil {
		return err
	}

	var firstErr error
	for _, path := range paths {
		if err := vetFile(c, v, path, cfg.Process().Strict); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func vetFile(c *cobra.Command, v *validate.Validator, path string, strict bool) error {
	doc, err := loader.Read(path, c.InOrStdin())
	if err != nil {
		cmdutil.PrintValidationError("could not read schema", err)
		return cmdtypes.Printed(err)
	}

	if err := v.Document(doc.Name, doc.Data); err != nil {
		cmdutil.PrintValidationError("validation failed", err)
		return cmdtypes.Printed(err)
	}

	app, err := doc.App()
	if err != nil {
		cmdutil.PrintValidationError("validation failed", err)
		return cmdtypes.Printed(err)
	}

	if errs := schema.CheckUnique(app); len(errs) > 0 {
		cmdutil.PrintDuplicateKeys(doc.Name, errs)
		return cmdtypes.Printed(oerrors.NewValidationError(
			fmt.Sprintf("%d duplicate key(s)", len(errs)), doc.Name, "key", ""))
	}

	refs := append(processing.UnresolvedModuleTypes(app), processing.UnresolvedOptionLists(app)...)
	if strict {
		var collector processing.Collector
		collector.Add(refs...)
		if err := collector.Err(doc.Name); err != nil {
			cmdutil.PrintValidationError("validation failed", err)
			return cmdtypes.Printed(err)
		}
	}
	log := output.SchemaLogger(app.Key)
	for _, r := range refs {
		log.Warn("unresolved reference", "kind", r.Kind, "key", r.Key, "path", r.Path)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Schema is valid: "+doc.Name))
	return nil
}
