package schema

// DeepCopy returns a copy of the app that shares no mutable state with a.
func (a *AppSchema) DeepCopy() *AppSchema {
	if a == nil {
		return nil
	}
	out := &AppSchema{
		Key:         a.Key,
		Label:       a.Label,
		Tags:        copyStrings(a.Tags),
		Description: a.Description,
		Children:    copyModules(a.Children),
		ChildGroups: copyGroups(a.ChildGroups),
	}
	if a.Connections != nil {
		out.Connections = append([]ConnectionInfo(nil), a.Connections...)
	}
	if a.OptionLists != nil {
		out.OptionLists = make([]*OptionList, len(a.OptionLists))
		for i, l := range a.OptionLists {
			out.OptionLists[i] = l.DeepCopy()
		}
	}
	if a.ModuleTypes != nil {
		out.ModuleTypes = make([]*ModuleTypeSpec, len(a.ModuleTypes))
		for i, t := range a.ModuleTypes {
			out.ModuleTypes[i] = t.DeepCopy()
		}
	}
	return out
}

// DeepCopy returns a copy of the module and its descendants.
func (m *ModuleSpec) DeepCopy() *ModuleSpec {
	if m == nil {
		return nil
	}
	return &ModuleSpec{
		Key:         m.Key,
		Label:       m.Label,
		Path:        m.Path,
		ModuleType:  m.ModuleType,
		Group:       m.Group,
		Tags:        copyStrings(m.Tags),
		Params:      copyParams(m.Params),
		Children:    copyModules(m.Children),
		ParamGroups: copyGroups(m.ParamGroups),
		ChildGroups: copyGroups(m.ChildGroups),
	}
}

// DeepCopy returns a copy of the module type.
func (t *ModuleTypeSpec) DeepCopy() *ModuleTypeSpec {
	if t == nil {
		return nil
	}
	return &ModuleTypeSpec{
		Key:         t.Key,
		Label:       t.Label,
		Params:      copyParams(t.Params),
		ParamGroups: copyGroups(t.ParamGroups),
	}
}

// DeepCopy returns a copy of the param, including parts, options and
// properties.
func (p *ParamSpec) DeepCopy() *ParamSpec {
	if p == nil {
		return nil
	}
	out := *p
	out.Tags = copyStrings(p.Tags)
	out.MinLimit = copyFloat(p.MinLimit)
	out.MaxLimit = copyFloat(p.MaxLimit)
	out.MinNorm = copyFloat(p.MinNorm)
	out.MaxNorm = copyFloat(p.MaxNorm)
	out.DefaultVal = copyValue(p.DefaultVal)
	out.Value = copyValue(p.Value)
	if p.ValueIndex != nil {
		out.ValueIndex = Int(*p.ValueIndex)
	}
	if p.Parts != nil {
		out.Parts = make([]*ParamPartSpec, len(p.Parts))
		for i, part := range p.Parts {
			out.Parts[i] = part.DeepCopy()
		}
	}
	out.Options = copyOptions(p.Options)
	if p.Properties != nil {
		out.Properties = copyValue(p.Properties).(Dict)
	}
	return &out
}

// DeepCopy returns a copy of the part.
func (p *ParamPartSpec) DeepCopy() *ParamPartSpec {
	if p == nil {
		return nil
	}
	out := *p
	out.MinLimit = copyFloat(p.MinLimit)
	out.MaxLimit = copyFloat(p.MaxLimit)
	out.MinNorm = copyFloat(p.MinNorm)
	out.MaxNorm = copyFloat(p.MaxNorm)
	out.DefaultVal = copyValue(p.DefaultVal)
	out.Value = copyValue(p.Value)
	return &out
}

// DeepCopy returns a copy of the option list.
func (l *OptionList) DeepCopy() *OptionList {
	if l == nil {
		return nil
	}
	return &OptionList{
		Key:     l.Key,
		Label:   l.Label,
		Options: copyOptions(l.Options),
	}
}

func copyModules(in []*ModuleSpec) []*ModuleSpec {
	if in == nil {
		return nil
	}
	out := make([]*ModuleSpec, len(in))
	for i, m := range in {
		out[i] = m.DeepCopy()
	}
	return out
}

func copyParams(in []*ParamSpec) []*ParamSpec {
	if in == nil {
		return nil
	}
	out := make([]*ParamSpec, len(in))
	for i, p := range in {
		out[i] = p.DeepCopy()
	}
	return out
}

func copyGroups(in []GroupInfo) []GroupInfo {
	if in == nil {
		return nil
	}
	out := make([]GroupInfo, len(in))
	for i, g := range in {
		out[i] = GroupInfo{Key: g.Key, Label: g.Label, Tags: copyStrings(g.Tags)}
	}
	return out
}

func copyOptions(in []ParamOption) []ParamOption {
	if in == nil {
		return nil
	}
	return append([]ParamOption(nil), in...)
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	return Float(*f)
}

// copyValue deep-copies an open value as produced by the document decoder:
// Dicts, lists, plain maps, and scalars.
func copyValue(v any) any {
	switch t := v.(type) {
	case Dict:
		out := make(Dict, len(t))
		for i, e := range t {
			out[i] = Entry{Key: e.Key, Value: copyValue(e.Value)}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = copyValue(item)
		}
		return out
	case []float64:
		return append([]float64(nil), t...)
	case []int:
		return append([]int(nil), t...)
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
