package processing

import (
	"fmt"

	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/schema"
)

// Reference is a by-key reference that did not resolve.
type Reference struct {
	// Kind is "optionList" or "moduleType".
	Kind string

	// Key is the referenced key.
	Key string

	// Path is the path of the node holding the reference.
	Path string
}

// Collector gathers unresolved references for strict processing.
type Collector struct {
	refs []Reference
}

// OnMissingOptionList records an unresolved option list. It matches
// MissingOptionListFunc.
func (c *Collector) OnMissingOptionList(ref string, p *schema.ParamSpec) {
	c.refs = append(c.refs, Reference{Kind: "optionList", Key: ref, Path: p.Path})
}

// CheckModuleTypes records every module of app whose moduleType does not
// name an entry of app's moduleTypes table.
func (c *Collector) CheckModuleTypes(app *schema.AppSchema) {
	c.Add(UnresolvedModuleTypes(app)...)
}

// Add records references found elsewhere, such as by UnresolvedOptionLists.
func (c *Collector) Add(refs ...Reference) {
	c.refs = append(c.refs, refs...)
}

// References returns everything collected so far.
func (c *Collector) References() []Reference {
	return c.refs
}

// Err returns nil when nothing was collected, otherwise an error wrapping
// errors.ErrReference that lists every reference by node path. References
// held by the same node are listed together.
func (c *Collector) Err(location string) error {
	if len(c.refs) == 0 {
		return nil
	}
	refs := make(map[string]string, len(c.refs))
	for _, r := range c.refs {
		path := r.Path
		if path == "" {
			path = "(no path)"
		}
		desc := fmt.Sprintf("%s %q", r.Kind, r.Key)
		if prev, ok := refs[path]; ok {
			desc = prev + ", " + desc
		}
		refs[path] = desc
	}
	msg := fmt.Sprintf("%d reference(s) could not be resolved", len(c.refs))
	return oerrors.NewReferenceError(msg, location, refs)
}

// UnresolvedModuleTypes lists modules whose moduleType is set but unknown.
func UnresolvedModuleTypes(app *schema.AppSchema) []Reference {
	var refs []Reference
	schema.WalkModules(app, func(m *schema.ModuleSpec, _ schema.Container) {
		if m.ModuleType != "" && app.GetModuleType(m.ModuleType) == nil {
			refs = append(refs, Reference{Kind: "moduleType", Key: m.ModuleType, Path: m.Path})
		}
	})
	return refs
}

// UnresolvedOptionLists lists params whose optionList is set but names no
// entry of app's optionLists table.
func UnresolvedOptionLists(app *schema.AppSchema) []Reference {
	var refs []Reference
	schema.WalkModules(app, func(m *schema.ModuleSpec, _ schema.Container) {
		for _, p := range m.Params {
			if p.OptionList != "" && app.GetOptionList(p.OptionList) == nil {
				refs = append(refs, Reference{Kind: "optionList", Key: p.OptionList, Path: p.Path})
			}
		}
	})
	return refs
}
