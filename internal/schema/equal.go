package schema

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Equal reports whether two nodes have the same clean view.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return cmp.Equal(a.Dict(), b.Dict())
}

// Diff returns a human-readable report of how b's clean view differs from
// a's, or "" when they are equal.
func Diff(a, b Node) string {
	return cmp.Diff(viewOf(a), viewOf(b))
}

func viewOf(n Node) Dict {
	if n == nil {
		return nil
	}
	return n.Dict()
}

// DuplicateKeyError reports two siblings of the same kind sharing a key.
type DuplicateKeyError struct {
	Kind  string
	Key   string
	Owner string
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s key %q in %s", e.Kind, e.Key, e.Owner)
}

// CheckUnique verifies that sibling keys are unique within every children,
// params, option list, and module type list of the app. It returns every
// violation found.
func CheckUnique(app *AppSchema) []error {
	var errs []error
	check := func(kind, owner string, keys []string) {
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			if seen[k] {
				errs = append(errs, &DuplicateKeyError{Kind: kind, Key: k, Owner: owner})
			}
			seen[k] = true
		}
	}

	check("module", app.Path(), moduleKeys(app.Children))
	listKeys := make([]string, len(app.OptionLists))
	for i, l := range app.OptionLists {
		listKeys[i] = l.Key
	}
	check("option list", app.Path(), listKeys)
	typeKeys := make([]string, len(app.ModuleTypes))
	for i, t := range app.ModuleTypes {
		typeKeys[i] = t.Key
		check("param", "module type "+t.Key, paramKeysOf(t.Params))
	}
	check("module type", app.Path(), typeKeys)

	WalkModules(app, func(m *ModuleSpec, _ Container) {
		check("module", m.Path, moduleKeys(m.Children))
		check("param", m.Path, paramKeysOf(m.Params))
	})
	return errs
}

func moduleKeys(modules []*ModuleSpec) []string {
	keys := make([]string, len(modules))
	for i, m := range modules {
		keys[i] = m.Key
	}
	return keys
}

func paramKeysOf(params []*ParamSpec) []string {
	keys := make([]string, len(params))
	for i, p := range params {
		keys[i] = p.Key
	}
	return keys
}
