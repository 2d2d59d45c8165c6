// Package processing implements the schema normalization pipeline: embedding
// of shared module type templates and option lists, group synthesis, and
// stripping of the shared tables once they are no longer referenced.
package processing

import (
	"github.com/tctrl/cli/internal/output"
	"github.com/tctrl/cli/internal/schema"
)

// MissingOptionListFunc is called once for every param whose optionList
// reference does not resolve. The param is left without options.
type MissingOptionListFunc func(ref string, param *schema.ParamSpec)

// Options selects the pipeline steps to run.
type Options struct {
	// EmbedModuleTypes instantiates module type templates into modules that
	// reference them.
	EmbedModuleTypes bool

	// StripModuleTypes clears the app's moduleTypes table. Nil means
	// "same as EmbedModuleTypes".
	StripModuleTypes *bool

	// EmbedOptionLists copies shared option lists into params that reference
	// them.
	EmbedOptionLists bool

	// StripOptionLists clears the app's optionLists table. Nil means
	// "same as EmbedOptionLists".
	StripOptionLists *bool

	// GenerateParamGroups adds a paramGroups entry for every param group key
	// not yet declared by its module.
	GenerateParamGroups bool

	// GenerateChildGroups adds a childGroups entry for every child group key
	// not yet declared by its parent, including the app root.
	GenerateChildGroups bool

	// OnMissingOptionList receives unresolved optionList references. When nil
	// they are logged as warnings.
	OnMissingOptionList MissingOptionListFunc
}

// AllOptions enables every embedding and generation step, with stripping
// following the embed flags.
func AllOptions() Options {
	return Options{
		EmbedModuleTypes:    true,
		EmbedOptionLists:    true,
		GenerateParamGroups: true,
		GenerateChildGroups: true,
	}
}

func (o Options) stripModuleTypes() bool {
	if o.StripModuleTypes != nil {
		return *o.StripModuleTypes
	}
	return o.EmbedModuleTypes
}

func (o Options) stripOptionLists() bool {
	if o.StripOptionLists != nil {
		return *o.StripOptionLists
	}
	return o.EmbedOptionLists
}

// Process returns a normalized copy of app. The input is never modified and
// no node of the result is shared with it. Unresolved references are not
// errors: see Options.OnMissingOptionList and UnresolvedModuleTypes.
func Process(app *schema.AppSchema, opts Options) *schema.AppSchema {
	if app == nil {
		return nil
	}
	out := app.DeepCopy()
	log := output.SchemaLogger(out.Key)

	if opts.EmbedModuleTypes {
		n := embedModuleTypes(out)
		log.Debug("embedded module types", "modules", n)
	}
	if opts.EmbedOptionLists {
		onMissing := opts.OnMissingOptionList
		if onMissing == nil {
			onMissing = func(ref string, p *schema.ParamSpec) {
				log.Warn("unresolved option list", "optionList", ref, "param", p.Path)
			}
		}
		n := embedOptionLists(out, onMissing)
		log.Debug("embedded option lists", "params", n)
	}
	if opts.GenerateParamGroups {
		n := generateParamGroups(out)
		log.Debug("generated param groups", "groups", n)
	}
	if opts.GenerateChildGroups {
		n := generateChildGroups(out)
		log.Debug("generated child groups", "groups", n)
	}
	if opts.stripOptionLists() {
		out.OptionLists = nil
		log.Debug("stripped option lists")
	}
	if opts.stripModuleTypes() {
		out.ModuleTypes = nil
		log.Debug("stripped module types")
	}
	return out
}
