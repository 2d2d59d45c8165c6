// Package schema provides the entity model of a remotely-controllable
// application schema: an app root holding a tree of modules, each owning
// parameters, plus shared option lists and module type templates.
//
// Every node has a clean ordered view (Dict) used for serialization and for
// structural equality. Nodes are plain values; transforms such as the
// normalization pipeline operate on a DeepCopy and never mutate their input.
package schema

import "strings"

// ParamType enumerates the kinds of parameter values.
type ParamType int

// Parameter types. The zero value is ParamTypeOther.
const (
	ParamTypeOther ParamType = iota
	ParamTypeBool
	ParamTypeString
	ParamTypeInt
	ParamTypeFloat
	ParamTypeIVec
	ParamTypeFVec
	ParamTypeMenu
	ParamTypeTrigger
)

var paramTypeNames = [...]string{
	ParamTypeOther:   "other",
	ParamTypeBool:    "bool",
	ParamTypeString:  "string",
	ParamTypeInt:     "int",
	ParamTypeFloat:   "float",
	ParamTypeIVec:    "ivec",
	ParamTypeFVec:    "fvec",
	ParamTypeMenu:    "menu",
	ParamTypeTrigger: "trigger",
}

// String returns the lowercase name used on the wire.
func (t ParamType) String() string {
	if t < 0 || int(t) >= len(paramTypeNames) {
		return paramTypeNames[ParamTypeOther]
	}
	return paramTypeNames[t]
}

// ParseParamType looks a type up by name, ignoring case.
func ParseParamType(s string) (ParamType, bool) {
	s = strings.ToLower(s)
	for i, name := range paramTypeNames {
		if name == s {
			return ParamType(i), true
		}
	}
	return ParamTypeOther, false
}

// IsNumeric reports whether bounds apply to the type.
func (t ParamType) IsNumeric() bool {
	switch t {
	case ParamTypeInt, ParamTypeFloat, ParamTypeIVec, ParamTypeFVec:
		return true
	}
	return false
}

// IsVector reports whether the type has multiple parts.
func (t ParamType) IsVector() bool {
	return t == ParamTypeIVec || t == ParamTypeFVec
}

// HasOptions reports whether the type may carry a choice list.
func (t ParamType) HasOptions() bool {
	return t == ParamTypeMenu || t == ParamTypeString
}

// ParamOption is a selectable choice.
type ParamOption struct {
	Key   string
	Label string
}

// OptionList is a named, shared list of choices declared at the app level.
type OptionList struct {
	Key     string
	Label   string
	Options []ParamOption
}

// ParamPartSpec is one component of a multi-component parameter.
type ParamPartSpec struct {
	Key        string
	Path       string
	Label      string
	MinLimit   *float64
	MaxLimit   *float64
	MinNorm    *float64
	MaxNorm    *float64
	DefaultVal any
	Value      any
}

// ParamSpec is a controllable parameter. Which fields are meaningful depends
// on Type; all of them are optional.
type ParamSpec struct {
	Key       string
	Path      string
	Type      ParamType
	OtherType string
	Label     string
	Tags      []string

	// Length is the declared component count of a vector parameter.
	Length int

	MinLimit   *float64
	MaxLimit   *float64
	MinNorm    *float64
	MaxNorm    *float64
	DefaultVal any
	Value      any
	ValueIndex *int

	Parts []*ParamPartSpec

	Style string
	Group string

	Options    []ParamOption
	OptionList string

	Help          string
	OffHelp       string
	ButtonText    string
	ButtonOffText string

	// Properties holds unrecognized attributes, emitted verbatim.
	Properties Dict
}

// Len returns the component count: Length if declared, else the number of
// parts, else 1.
func (p *ParamSpec) Len() int {
	if p.Length > 0 {
		return p.Length
	}
	if len(p.Parts) > 0 {
		return len(p.Parts)
	}
	return 1
}

// GetPart returns the part with the given key, or nil.
func (p *ParamSpec) GetPart(key string) *ParamPartSpec {
	for _, part := range p.Parts {
		if part.Key == key {
			return part
		}
	}
	return nil
}

// GroupInfo describes a named bucket that params or child modules may
// declare membership in through their Group field.
type GroupInfo struct {
	Key   string
	Label string
	Tags  []string
}

// ModuleTypeSpec is a reusable parameter template. Param paths, when set,
// are template-relative and start with ':'.
type ModuleTypeSpec struct {
	Key         string
	Label       string
	Params      []*ParamSpec
	ParamGroups []GroupInfo
}

// ModuleSpec is a functional unit owning params and child modules.
type ModuleSpec struct {
	Key         string
	Label       string
	Path        string
	ModuleType  string
	Group       string
	Tags        []string
	Params      []*ParamSpec
	Children    []*ModuleSpec
	ParamGroups []GroupInfo
	ChildGroups []GroupInfo
}

// ConnectionInfo describes one way to reach the live application.
type ConnectionInfo struct {
	ConnType string
	Host     string
	Port     int
}

// AppSchema is the schema root.
type AppSchema struct {
	Key         string
	Label       string
	Tags        []string
	Description string
	Children    []*ModuleSpec
	ChildGroups []GroupInfo
	Connections []ConnectionInfo
	OptionLists []*OptionList
	ModuleTypes []*ModuleTypeSpec
}

// Path returns the app's absolute path, "/" + key.
func (a *AppSchema) Path() string {
	return "/" + a.Key
}

// GetOptionList returns the shared option list with the given key, or nil.
func (a *AppSchema) GetOptionList(key string) *OptionList {
	for _, l := range a.OptionLists {
		if l.Key == key {
			return l
		}
	}
	return nil
}

// GetModuleType returns the shared module type with the given key, or nil.
func (a *AppSchema) GetModuleType(key string) *ModuleTypeSpec {
	for _, t := range a.ModuleTypes {
		if t.Key == key {
			return t
		}
	}
	return nil
}

// Float returns a pointer to v, for populating optional bounds.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for populating ValueIndex.
func Int(v int) *int {
	return &v
}

// Options builds a choice list where each key is also its label.
func Options(keys ...string) []ParamOption {
	opts := make([]ParamOption, len(keys))
	for i, k := range keys {
		opts[i] = ParamOption{Key: k, Label: k}
	}
	return opts
}
