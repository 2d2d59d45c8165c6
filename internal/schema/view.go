package schema

// Node is any schema entity with a key and a clean view.
type Node interface {
	NodeKey() string
	Dict() Dict
}

// Compile-time assertions.
var (
	_ Node = (*AppSchema)(nil)
	_ Node = (*ModuleSpec)(nil)
	_ Node = (*ModuleTypeSpec)(nil)
	_ Node = (*ParamSpec)(nil)
	_ Node = (*ParamPartSpec)(nil)
	_ Node = (*OptionList)(nil)
	_ Node = ParamOption{}
	_ Node = GroupInfo{}
)

func (o ParamOption) NodeKey() string     { return o.Key }
func (l *OptionList) NodeKey() string     { return l.Key }
func (p *ParamPartSpec) NodeKey() string  { return p.Key }
func (p *ParamSpec) NodeKey() string      { return p.Key }
func (g GroupInfo) NodeKey() string       { return g.Key }
func (t *ModuleTypeSpec) NodeKey() string { return t.Key }
func (m *ModuleSpec) NodeKey() string     { return m.Key }
func (a *AppSchema) NodeKey() string      { return a.Key }

// Dict returns the clean view of the option.
func (o ParamOption) Dict() Dict {
	var d Dict
	d.put("key", o.Key)
	d.put("label", o.Label)
	return d
}

// Dict returns the clean view of the option list.
func (l *OptionList) Dict() Dict {
	var d Dict
	d.put("key", l.Key)
	d.put("label", l.Label)
	d.put("options", optionDicts(l.Options))
	return d
}

// Dict returns the clean view of the part.
func (p *ParamPartSpec) Dict() Dict {
	var d Dict
	d.put("key", p.Key)
	d.put("path", p.Path)
	d.put("label", p.Label)
	d.put("minLimit", floatValue(p.MinLimit))
	d.put("maxLimit", floatValue(p.MaxLimit))
	d.put("minNorm", floatValue(p.MinNorm))
	d.put("maxNorm", floatValue(p.MaxNorm))
	d.put("default", p.DefaultVal)
	d.put("value", p.Value)
	return d
}

// Dict returns the clean view of the param, with Properties merged in last.
func (p *ParamSpec) Dict() Dict {
	var d Dict
	d.put("key", p.Key)
	d.put("type", p.Type.String())
	d.put("path", p.Path)
	d.put("label", p.Label)
	d.put("otherType", p.OtherType)
	if p.Length > 0 {
		d.put("length", p.Length)
	}
	d.put("minLimit", floatValue(p.MinLimit))
	d.put("maxLimit", floatValue(p.MaxLimit))
	d.put("minNorm", floatValue(p.MinNorm))
	d.put("maxNorm", floatValue(p.MaxNorm))
	d.put("default", p.DefaultVal)
	d.put("value", p.Value)
	if p.ValueIndex != nil {
		d.put("valueIndex", *p.ValueIndex)
	}
	if len(p.Parts) > 0 {
		parts := make([]Dict, len(p.Parts))
		for i, part := range p.Parts {
			parts[i] = part.Dict()
		}
		d.put("parts", parts)
	}
	d.put("style", p.Style)
	d.put("group", p.Group)
	d.put("options", optionDicts(p.Options))
	d.put("optionList", p.OptionList)
	d.put("help", p.Help)
	d.put("offHelp", p.OffHelp)
	d.put("buttonText", p.ButtonText)
	d.put("buttonOffText", p.ButtonOffText)
	d.put("tags", p.Tags)
	for _, e := range p.Properties {
		if !isEmpty(e.Value) {
			d.Set(e.Key, e.Value)
		}
	}
	return d
}

// Dict returns the clean view of the group.
func (g GroupInfo) Dict() Dict {
	var d Dict
	d.put("key", g.Key)
	d.put("label", g.Label)
	d.put("tags", g.Tags)
	return d
}

// Dict returns the clean view of the module type.
func (t *ModuleTypeSpec) Dict() Dict {
	var d Dict
	d.put("key", t.Key)
	d.put("label", t.Label)
	d.put("params", paramDicts(t.Params))
	d.put("paramGroups", groupDicts(t.ParamGroups))
	return d
}

// Dict returns the clean view of the module.
func (m *ModuleSpec) Dict() Dict {
	var d Dict
	d.put("key", m.Key)
	d.put("label", m.Label)
	d.put("path", m.Path)
	d.put("tags", m.Tags)
	d.put("moduleType", m.ModuleType)
	d.put("group", m.Group)
	d.put("paramGroups", groupDicts(m.ParamGroups))
	d.put("childGroups", groupDicts(m.ChildGroups))
	d.put("params", paramDicts(m.Params))
	d.put("children", moduleDicts(m.Children))
	return d
}

// Dict returns the clean view of the connection.
func (c ConnectionInfo) Dict() Dict {
	var d Dict
	d.put("type", c.ConnType)
	d.put("host", c.Host)
	if c.Port != 0 {
		d.put("port", c.Port)
	}
	return d
}

// Dict returns the clean view of the app. The path is always included.
func (a *AppSchema) Dict() Dict {
	var d Dict
	d.put("key", a.Key)
	d.put("label", a.Label)
	d.Set("path", a.Path())
	d.put("tags", a.Tags)
	d.put("description", a.Description)
	d.put("children", moduleDicts(a.Children))
	d.put("childGroups", groupDicts(a.ChildGroups))
	if len(a.Connections) > 0 {
		conns := make([]Dict, len(a.Connections))
		for i, c := range a.Connections {
			conns[i] = c.Dict()
		}
		d.put("connections", conns)
	}
	if len(a.OptionLists) > 0 {
		lists := make([]Dict, len(a.OptionLists))
		for i, l := range a.OptionLists {
			lists[i] = l.Dict()
		}
		d.put("optionLists", lists)
	}
	if len(a.ModuleTypes) > 0 {
		types := make([]Dict, len(a.ModuleTypes))
		for i, t := range a.ModuleTypes {
			types[i] = t.Dict()
		}
		d.put("moduleTypes", types)
	}
	return d
}

// MarshalJSON encodes the app's clean view.
func (a *AppSchema) MarshalJSON() ([]byte, error) {
	return a.Dict().MarshalJSON()
}

// MarshalYAML encodes the app's clean view.
func (a *AppSchema) MarshalYAML() (any, error) {
	return a.Dict().MarshalYAML()
}

func floatValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func optionDicts(opts []ParamOption) []Dict {
	if len(opts) == 0 {
		return nil
	}
	out := make([]Dict, len(opts))
	for i, o := range opts {
		out[i] = o.Dict()
	}
	return out
}

func groupDicts(groups []GroupInfo) []Dict {
	if len(groups) == 0 {
		return nil
	}
	out := make([]Dict, len(groups))
	for i, g := range groups {
		out[i] = g.Dict()
	}
	return out
}

func paramDicts(params []*ParamSpec) []Dict {
	if len(params) == 0 {
		return nil
	}
	out := make([]Dict, len(params))
	for i, p := range params {
		out[i] = p.Dict()
	}
	return out
}

func moduleDicts(modules []*ModuleSpec) []Dict {
	if len(modules) == 0 {
		return nil
	}
	out := make([]Dict, len(modules))
	for i, m := range modules {
		out[i] = m.Dict()
	}
	return out
}
