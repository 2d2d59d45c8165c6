package processing

import "github.com/tctrl/cli/internal/schema"

// appendGroups returns groups extended with a GroupInfo{key, key} for every
// key in declaration order that groups does not already contain, and the
// number of entries added.
func appendGroups(groups []schema.GroupInfo, keys []string) ([]schema.GroupInfo, int) {
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		seen[g.Key] = true
	}
	added := 0
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		groups = append(groups, schema.GroupInfo{Key: k, Label: k})
		added++
	}
	return groups, added
}

func generateParamGroups(app *schema.AppSchema) int {
	total := 0
	schema.WalkModules(app, func(m *schema.ModuleSpec, _ schema.Container) {
		if len(m.Params) == 0 {
			return
		}
		keys := make([]string, len(m.Params))
		for i, p := range m.Params {
			keys[i] = p.Group
		}
		var n int
		m.ParamGroups, n = appendGroups(m.ParamGroups, keys)
		total += n
	})
	return total
}

func generateChildGroups(app *schema.AppSchema) int {
	var n int
	app.ChildGroups, n = appendGroups(app.ChildGroups, childGroupKeys(app.Children))
	total := n
	schema.WalkModules(app, func(m *schema.ModuleSpec, _ schema.Container) {
		if len(m.Children) == 0 {
			return
		}
		m.ChildGroups, n = appendGroups(m.ChildGroups, childGroupKeys(m.Children))
		total += n
	})
	return total
}

func childGroupKeys(children []*schema.ModuleSpec) []string {
	keys := make([]string, len(children))
	for i, c := range children {
		keys[i] = c.Group
	}
	return keys
}
