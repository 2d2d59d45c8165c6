package processing

import (
	"strings"

	"github.com/tctrl/cli/internal/schema"
)

// embedModuleTypes instantiates module type templates and returns the number
// of modules that received params.
//
// A module's existing params are treated as instance overrides when they
// name a strict subset of the template's params. A module is left untouched
// when its type does not resolve, when it carries a param the template does
// not declare, or when it already holds every template param. Template param
// groups are copied into any module of a resolved type that has none.
func embedModuleTypes(app *schema.AppSchema) int {
	types := make(map[string]*schema.ModuleTypeSpec, len(app.ModuleTypes))
	for _, t := range app.ModuleTypes {
		if _, dup := types[t.Key]; !dup {
			types[t.Key] = t
		}
	}

	embedded := 0
	schema.WalkModules(app, func(m *schema.ModuleSpec, parent schema.Container) {
		if m.ModuleType == "" {
			return
		}
		t, ok := types[m.ModuleType]
		if !ok {
			return
		}
		if m.Path == "" {
			m.Path = schema.JoinPath(parent.NodePath(), m.Key)
		}
		if len(m.ParamGroups) == 0 && len(t.ParamGroups) > 0 {
			m.ParamGroups = t.DeepCopy().ParamGroups
		}
		overrides, ok := overridesFor(t, m)
		if !ok {
			return
		}

		params := make([]*schema.ParamSpec, 0, len(t.Params))
		for _, tp := range t.Params {
			p := tp.DeepCopy()
			p.Path = instancePath(m.Path, tp)
			for _, part := range p.Parts {
				part.Path = schema.JoinPath(p.Path, part.Key)
			}
			if o, found := overrides[tp.Key]; found {
				overlay(p, o)
			}
			params = append(params, p)
		}
		m.Params = params
		embedded++
	})
	return embedded
}

// overridesFor indexes m's params by key and reports whether the template
// should be instantiated into m.
func overridesFor(t *schema.ModuleTypeSpec, m *schema.ModuleSpec) (map[string]*schema.ParamSpec, bool) {
	if len(m.Params) == 0 {
		return nil, true
	}
	templ := make(map[string]bool, len(t.Params))
	for _, tp := range t.Params {
		templ[tp.Key] = true
	}

	overrides := make(map[string]*schema.ParamSpec, len(m.Params))
	for _, p := range m.Params {
		if !templ[p.Key] {
			return nil, false
		}
		overrides[p.Key] = p
	}
	if len(overrides) == len(templ) {
		return nil, false
	}
	return overrides, true
}

// instancePath is the absolute path of template param tp instantiated into
// the module at modulePath. Template-relative paths start with ':'.
func instancePath(modulePath string, tp *schema.ParamSpec) string {
	if strings.HasPrefix(tp.Path, ":") {
		return modulePath + tp.Path
	}
	return modulePath + ":" + tp.Key
}

// overlay copies the instance-level values of o onto p. Everything else
// comes from the template.
func overlay(p, o *schema.ParamSpec) {
	o = o.DeepCopy()
	if o.Value != nil {
		p.Value = o.Value
	}
	if o.ValueIndex != nil {
		p.ValueIndex = o.ValueIndex
	}
	for _, op := range o.Parts {
		if op.Value == nil {
			continue
		}
		if part := p.GetPart(op.Key); part != nil {
			part.Value = op.Value
		}
	}
}

// embedOptionLists copies shared options into every param that references a
// list and has no options of its own. It returns the number of params that
// received options.
func embedOptionLists(app *schema.AppSchema, onMissing MissingOptionListFunc) int {
	lists := make(map[string]*schema.OptionList, len(app.OptionLists))
	for _, l := range app.OptionLists {
		if _, dup := lists[l.Key]; !dup {
			lists[l.Key] = l
		}
	}

	embedded := 0
	schema.WalkModules(app, func(m *schema.ModuleSpec, _ schema.Container) {
		for _, p := range m.Params {
			if p.OptionList == "" || len(p.Options) > 0 {
				continue
			}
			l, ok := lists[p.OptionList]
			if !ok {
				onMissing(p.OptionList, p)
				continue
			}
			p.Options = l.DeepCopy().Options
			embedded++
		}
	})
	return embedded
}
