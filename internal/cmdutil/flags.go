// Package cmdutil provides shared command utilities. It centralizes flag
// group management, config key to flag mapping, schema loading and error
// printing for the tctrl commands.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/tctrl/cli/internal/config"
	"github.com/tctrl/cli/internal/processing"
)

// ConfigFlags maps config keys to the command-line flag that overrides them.
// A command that does not define the flag simply never overrides the key.
var ConfigFlags = map[string]string{
	config.KeyOutput:              "output",
	config.KeyLogTimestamps:       "timestamps",
	config.KeyEmbedModuleTypes:    "embed-module-types",
	config.KeyEmbedOptionLists:    "embed-option-lists",
	config.KeyGenerateParamGroups: "param-groups",
	config.KeyGenerateChildGroups: "child-groups",
	config.KeyStrict:              "strict",
}

// FlagValues collects the flags of cmd that override config keys. Only flags
// the user set explicitly count as set.
func FlagValues(cmd *cobra.Command) map[string]config.FlagValue {
	values := make(map[string]config.FlagValue, len(ConfigFlags))
	for key, name := range ConfigFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		values[key] = config.FlagValue{Set: true, Value: f.Value.String()}
	}
	return values
}

// ProcessFlags holds the normalization flags of `tctrl process`.
type ProcessFlags struct {
	EmbedModuleTypes bool
	EmbedOptionLists bool
	StripModuleTypes bool
	StripOptionLists bool
	ParamGroups      bool
	ChildGroups      bool
	All              bool
	Strict           bool
}

// AddTo registers the process flags on the given cobra command.
func (f *ProcessFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.EmbedModuleTypes, "embed-module-types", false,
		"Instantiate moduleType templates into referencing modules (env: TCTRL_PROCESS_EMBEDMODULETYPES)")
	cmd.Flags().BoolVar(&f.EmbedOptionLists, "embed-option-lists", false,
		"Copy shared option lists into referencing params (env: TCTRL_PROCESS_EMBEDOPTIONLISTS)")
	cmd.Flags().BoolVar(&f.StripModuleTypes, "strip-module-types", false,
		"Remove the moduleTypes table (default: same as --embed-module-types)")
	cmd.Flags().BoolVar(&f.StripOptionLists, "strip-option-lists", false,
		"Remove the optionLists table (default: same as --embed-option-lists)")
	cmd.Flags().BoolVar(&f.ParamGroups, "param-groups", false,
		"Declare every param group key used by a module (env: TCTRL_PROCESS_GENERATEPARAMGROUPS)")
	cmd.Flags().BoolVar(&f.ChildGroups, "child-groups", false,
		"Declare every child group key used under a container (env: TCTRL_PROCESS_GENERATECHILDGROUPS)")
	cmd.Flags().BoolVar(&f.All, "all", false,
		"Run every embedding and generation step")
	cmd.Flags().BoolVar(&f.Strict, "strict", false,
		"Fail when a moduleType or optionList reference does not resolve (env: TCTRL_PROCESS_STRICT)")
}

// Options builds pipeline options from the resolved process config. The
// step flags have already been folded into resolved by config resolution;
// only --all and the strip flags are read here.
func (f *ProcessFlags) Options(cmd *cobra.Command, resolved config.ProcessConfig) processing.Options {
	opts := processing.Options{
		EmbedModuleTypes:    resolved.EmbedModuleTypes,
		EmbedOptionLists:    resolved.EmbedOptionLists,
		GenerateParamGroups: resolved.GenerateParamGroups,
		GenerateChildGroups: resolved.GenerateChildGroups,
	}
	if f.All {
		opts = processing.AllOptions()
	}
	if cmd.Flags().Changed("strip-module-types") {
		strip := f.StripModuleTypes
		opts.StripModuleTypes = &strip
	}
	if cmd.Flags().Changed("strip-option-lists") {
		strip := f.StripOptionLists
		opts.StripOptionLists = &strip
	}
	return opts
}
