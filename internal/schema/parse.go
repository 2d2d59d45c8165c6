package schema

import (
	"fmt"

	oerrors "github.com/tctrl/cli/internal/errors"
)

// SchemaError reports a malformed boundary document. Fragment holds the
// offending object literal.
type SchemaError struct {
	Kind     string
	Message  string
	Fragment any
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if key := fragmentKey(e.Fragment); key != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Kind, key, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Message)
}

// Unwrap lets callers match malformed input with errors.Is(err, ErrValidation).
func (e *SchemaError) Unwrap() error {
	return oerrors.ErrValidation
}

func fragmentKey(fragment any) string {
	d, ok := fragment.(Dict)
	if !ok {
		return ""
	}
	k, _ := d.Get("key")
	s, _ := k.(string)
	return s
}

func schemaErr(kind string, fragment any, format string, args ...any) error {
	return &SchemaError{Kind: kind, Message: fmt.Sprintf(format, args...), Fragment: fragment}
}

// paramKeys are the param attributes with a typed field. Anything else is
// kept in Properties.
var paramKeys = map[string]bool{
	"key": true, "type": true, "path": true, "label": true, "otherType": true,
	"length": true, "minLimit": true, "maxLimit": true, "minNorm": true,
	"maxNorm": true, "default": true, "value": true, "valueIndex": true,
	"parts": true, "style": true, "group": true, "options": true,
	"optionList": true, "help": true, "offHelp": true, "buttonText": true,
	"buttonOffText": true, "tags": true,
}

// fieldReader pulls typed fields out of one object literal, remembering the
// first failure so constructors can read every field and check once.
type fieldReader struct {
	kind string
	obj  Dict
	err  error
}

func newReader(kind string, v any) (*fieldReader, error) {
	obj, ok := v.(Dict)
	if !ok {
		return nil, schemaErr(kind, v, "expected an object, got %T", v)
	}
	return &fieldReader{kind: kind, obj: obj}, nil
}

func (r *fieldReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = schemaErr(r.kind, r.obj, format, args...)
	}
}

func (r *fieldReader) required(key string) string {
	v, ok := r.obj.Get(key)
	if !ok || v == nil {
		r.fail("missing required field %q", key)
		return ""
	}
	s := r.scalar(key, v)
	if s == "" && r.err == nil {
		r.fail("field %q must not be empty", key)
	}
	return s
}

func (r *fieldReader) str(key string) string {
	v, ok := r.obj.Get(key)
	if !ok || v == nil {
		return ""
	}
	return r.scalar(key, v)
}

func (r *fieldReader) scalar(key string, v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t)
	}
	r.fail("field %q must be a string, got %T", key, v)
	return ""
}

func (r *fieldReader) number(key string) *float64 {
	v, ok := r.obj.Get(key)
	if !ok || v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		r.fail("field %q must be a number, got %T", key, v)
		return nil
	}
	return &f
}

func (r *fieldReader) integer(key string) *int {
	v, ok := r.obj.Get(key)
	if !ok || v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok || f != float64(int(f)) {
		r.fail("field %q must be an integer, got %v", key, v)
		return nil
	}
	i := int(f)
	return &i
}

func (r *fieldReader) raw(key string) any {
	v, _ := r.obj.Get(key)
	return v
}

func (r *fieldReader) stringList(key string) []string {
	items := r.list(key)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, r.scalar(key, item))
	}
	return out
}

// list returns the items under key. Absent, null, and empty lists all read
// as nil so that they are not emitted on output.
func (r *fieldReader) list(key string) []any {
	v, ok := r.obj.Get(key)
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		r.fail("field %q must be a list, got %T", key, v)
		return nil
	}
	return items
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// OptionFromValue builds an option from a bare string (used as key and
// label) or a {key, label} object.
func OptionFromValue(v any) (ParamOption, error) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return ParamOption{}, schemaErr("option", v, "empty option")
		}
		return ParamOption{Key: t, Label: t}, nil
	case Dict:
		r := &fieldReader{kind: "option", obj: t}
		opt := ParamOption{Key: r.required("key"), Label: r.str("label")}
		return opt, r.err
	}
	return ParamOption{}, schemaErr("option", v, "expected a string or object, got %T", v)
}

func optionsFromValues(items []any) ([]ParamOption, error) {
	if len(items) == 0 {
		return nil, nil
	}
	opts := make([]ParamOption, 0, len(items))
	for _, item := range items {
		opt, err := OptionFromValue(item)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// OptionListFromDict builds an option list from its object literal.
func OptionListFromDict(obj Dict) (*OptionList, error) {
	r := &fieldReader{kind: "option list", obj: obj}
	l := &OptionList{
		Key:   r.required("key"),
		Label: r.str("label"),
	}
	items := r.list("options")
	if r.err != nil {
		return nil, r.err
	}
	opts, err := optionsFromValues(items)
	if err != nil {
		return nil, err
	}
	l.Options = opts
	return l, nil
}

// PartFromDict builds a param part from its object literal.
func PartFromDict(obj Dict) (*ParamPartSpec, error) {
	r := &fieldReader{kind: "param part", obj: obj}
	part := &ParamPartSpec{
		Key:        r.required("key"),
		Path:       r.str("path"),
		Label:      r.str("label"),
		MinLimit:   r.number("minLimit"),
		MaxLimit:   r.number("maxLimit"),
		MinNorm:    r.number("minNorm"),
		MaxNorm:    r.number("maxNorm"),
		DefaultVal: r.raw("default"),
		Value:      r.raw("value"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return part, nil
}

// ParamFromDict builds a param from its object literal. The type name is
// matched case-insensitively; an unknown name yields ParamTypeOther with the
// name kept as OtherType.
func ParamFromDict(obj Dict) (*ParamSpec, error) {
	r := &fieldReader{kind: "param", obj: obj}
	key := r.required("key")
	typeName := r.required("type")
	if r.err != nil {
		return nil, r.err
	}

	ptype, known := ParseParamType(typeName)
	p := &ParamSpec{
		Key:           key,
		Type:          ptype,
		Path:          r.str("path"),
		Label:         r.str("label"),
		OtherType:     r.str("otherType"),
		MinLimit:      r.number("minLimit"),
		MaxLimit:      r.number("maxLimit"),
		MinNorm:       r.number("minNorm"),
		MaxNorm:       r.number("maxNorm"),
		DefaultVal:    r.raw("default"),
		Value:         r.raw("value"),
		ValueIndex:    r.integer("valueIndex"),
		Style:         r.str("style"),
		Group:         r.str("group"),
		OptionList:    r.str("optionList"),
		Help:          r.str("help"),
		OffHelp:       r.str("offHelp"),
		ButtonText:    r.str("buttonText"),
		ButtonOffText: r.str("buttonOffText"),
		Tags:          r.stringList("tags"),
	}
	if !known && p.OtherType == "" {
		p.OtherType = typeName
	}
	if n := r.integer("length"); n != nil {
		p.Length = *n
	}
	partItems := r.list("parts")
	optionItems := r.list("options")
	if r.err != nil {
		return nil, r.err
	}

	for _, item := range partItems {
		pr, err := newReader("param part", item)
		if err != nil {
			return nil, err
		}
		part, err := PartFromDict(pr.obj)
		if err != nil {
			return nil, err
		}
		p.Parts = append(p.Parts, part)
	}

	opts, err := optionsFromValues(optionItems)
	if err != nil {
		return nil, err
	}
	p.Options = opts

	for _, e := range obj {
		if !paramKeys[e.Key] && e.Key != "" {
			p.Properties = append(p.Properties, Entry{Key: e.Key, Value: e.Value})
		}
	}
	return p, nil
}

func paramsFromValues(items []any) ([]*ParamSpec, error) {
	var params []*ParamSpec
	for _, item := range items {
		r, err := newReader("param", item)
		if err != nil {
			return nil, err
		}
		p, err := ParamFromDict(r.obj)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// GroupFromDict builds a group from its object literal.
func GroupFromDict(obj Dict) (GroupInfo, error) {
	r := &fieldReader{kind: "group", obj: obj}
	g := GroupInfo{
		Key:   r.required("key"),
		Label: r.str("label"),
		Tags:  r.stringList("tags"),
	}
	return g, r.err
}

func groupsFromValues(items []any) ([]GroupInfo, error) {
	var groups []GroupInfo
	for _, item := range items {
		r, err := newReader("group", item)
		if err != nil {
			return nil, err
		}
		g, err := GroupFromDict(r.obj)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ConnectionFromDict builds a connection from its object literal.
func ConnectionFromDict(obj Dict) (ConnectionInfo, error) {
	r := &fieldReader{kind: "connection", obj: obj}
	c := ConnectionInfo{
		ConnType: r.required("type"),
		Host:     r.str("host"),
	}
	if port := r.integer("port"); port != nil {
		c.Port = *port
	}
	return c, r.err
}

// ModuleTypeFromDict builds a module type from its object literal.
func ModuleTypeFromDict(obj Dict) (*ModuleTypeSpec, error) {
	r := &fieldReader{kind: "module type", obj: obj}
	t := &ModuleTypeSpec{
		Key:   r.required("key"),
		Label: r.str("label"),
	}
	paramItems := r.list("params")
	groupItems := r.list("paramGroups")
	if r.err != nil {
		return nil, r.err
	}
	var err error
	if t.Params, err = paramsFromValues(paramItems); err != nil {
		return nil, err
	}
	if t.ParamGroups, err = groupsFromValues(groupItems); err != nil {
		return nil, err
	}
	return t, nil
}

// ModuleFromDict builds a module and its descendants from an object literal.
func ModuleFromDict(obj Dict) (*ModuleSpec, error) {
	r := &fieldReader{kind: "module", obj: obj}
	m := &ModuleSpec{
		Key:        r.required("key"),
		Label:      r.str("label"),
		Path:       r.str("path"),
		ModuleType: r.str("moduleType"),
		Group:      r.str("group"),
		Tags:       r.stringList("tags"),
	}
	paramGroupItems := r.list("paramGroups")
	childGroupItems := r.list("childGroups")
	paramItems := r.list("params")
	childItems := r.list("children")
	if r.err != nil {
		return nil, r.err
	}

	var err error
	if m.ParamGroups, err = groupsFromValues(paramGroupItems); err != nil {
		return nil, err
	}
	if m.ChildGroups, err = groupsFromValues(childGroupItems); err != nil {
		return nil, err
	}
	if m.Params, err = paramsFromValues(paramItems); err != nil {
		return nil, err
	}
	if m.Children, err = modulesFromValues(childItems); err != nil {
		return nil, err
	}
	return m, nil
}

func modulesFromValues(items []any) ([]*ModuleSpec, error) {
	var modules []*ModuleSpec
	for _, item := range items {
		r, err := newReader("module", item)
		if err != nil {
			return nil, err
		}
		m, err := ModuleFromDict(r.obj)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// AppFromDict builds a complete app schema from its object literal and
// assigns any paths the document left out.
func AppFromDict(obj Dict) (*AppSchema, error) {
	r := &fieldReader{kind: "app", obj: obj}
	app := &AppSchema{
		Key:         r.required("key"),
		Label:       r.str("label"),
		Tags:        r.stringList("tags"),
		Description: r.str("description"),
	}
	childItems := r.list("children")
	groupItems := r.list("childGroups")
	connItems := r.list("connections")
	listItems := r.list("optionLists")
	typeItems := r.list("moduleTypes")
	if r.err != nil {
		return nil, r.err
	}

	var err error
	if app.Children, err = modulesFromValues(childItems); err != nil {
		return nil, err
	}
	if app.ChildGroups, err = groupsFromValues(groupItems); err != nil {
		return nil, err
	}
	for _, item := range connItems {
		cr, err := newReader("connection", item)
		if err != nil {
			return nil, err
		}
		c, err := ConnectionFromDict(cr.obj)
		if err != nil {
			return nil, err
		}
		app.Connections = append(app.Connections, c)
	}
	for _, item := range listItems {
		lr, err := newReader("option list", item)
		if err != nil {
			return nil, err
		}
		l, err := OptionListFromDict(lr.obj)
		if err != nil {
			return nil, err
		}
		app.OptionLists = append(app.OptionLists, l)
	}
	for _, item := range typeItems {
		tr, err := newReader("module type", item)
		if err != nil {
			return nil, err
		}
		t, err := ModuleTypeFromDict(tr.obj)
		if err != nil {
			return nil, err
		}
		app.ModuleTypes = append(app.ModuleTypes, t)
	}

	AssignPaths(app)
	return app, nil
}
