package schema

import "strings"

// Container is a node with child modules: the app root or a module.
type Container interface {
	Node
	ChildModules() []*ModuleSpec
	NodePath() string
}

var (
	_ Container = (*AppSchema)(nil)
	_ Container = (*ModuleSpec)(nil)
)

// ChildModules returns the app's top-level modules.
func (a *AppSchema) ChildModules() []*ModuleSpec { return a.Children }

// ChildModules returns the module's direct children.
func (m *ModuleSpec) ChildModules() []*ModuleSpec { return m.Children }

// NodePath returns the app's absolute path.
func (a *AppSchema) NodePath() string { return a.Path() }

// NodePath returns the module's absolute path.
func (m *ModuleSpec) NodePath() string { return m.Path }

// JoinPath appends key to parent with the '/' separator.
func JoinPath(parent, key string) string {
	return strings.TrimSuffix(parent, "/") + "/" + key
}

// AssignPaths fills every absent path below app: modules and params get
// their parent's path plus "/" plus their key, parts their param's path plus
// "/" plus their key. Paths that are already set are kept.
func AssignPaths(app *AppSchema) {
	WalkModules(app, func(m *ModuleSpec, parent Container) {
		if m.Path == "" {
			m.Path = JoinPath(parent.NodePath(), m.Key)
		}
		for _, p := range m.Params {
			if p.Path == "" {
				p.Path = JoinPath(m.Path, p.Key)
			}
			assignPartPaths(p)
		}
	})
}

func assignPartPaths(p *ParamSpec) {
	for _, part := range p.Parts {
		if part.Path == "" && p.Path != "" {
			part.Path = JoinPath(p.Path, part.Key)
		}
	}
}

// WalkModules visits every module below root depth-first, parent before
// children, starting with root's direct children. Each module is visited
// exactly once together with its parent container.
func WalkModules(root Container, fn func(m *ModuleSpec, parent Container)) {
	for _, child := range root.ChildModules() {
		fn(child, root)
		WalkModules(child, fn)
	}
}

// GetChild returns the direct child module with the given key, or nil.
func GetChild(node Container, key string) *ModuleSpec {
	for _, child := range node.ChildModules() {
		if child.Key == key {
			return child
		}
	}
	return nil
}

// GetParam returns the module's param with the given key, or nil.
func GetParam(m *ModuleSpec, key string) *ParamSpec {
	for _, p := range m.Params {
		if p.Key == key {
			return p
		}
	}
	return nil
}

// GetChild returns the direct child module with the given key, or nil.
func (m *ModuleSpec) GetChild(key string) *ModuleSpec { return GetChild(m, key) }

// GetParam returns the param with the given key, or nil.
func (m *ModuleSpec) GetParam(key string) *ParamSpec { return GetParam(m, key) }

// GetChild returns the top-level module with the given key, or nil.
func (a *AppSchema) GetChild(key string) *ModuleSpec { return GetChild(a, key) }

// EvaluatePath walks a '/'-delimited path relative to node. A segment
// starting with '@' names a param of the current module and must be the last
// segment. An empty path, an unknown segment, or a param segment on the app
// root resolves to nil.
func EvaluatePath(node Container, path string) Node {
	if path == "" {
		return nil
	}
	head, rest, _ := strings.Cut(path, "/")
	if strings.HasPrefix(head, "@") {
		m, ok := node.(*ModuleSpec)
		if !ok || rest != "" {
			return nil
		}
		if p := GetParam(m, head[1:]); p != nil {
			return p
		}
		return nil
	}
	child := GetChild(node, head)
	if child == nil {
		return nil
	}
	if rest == "" {
		return child
	}
	return EvaluatePath(child, rest)
}

// ResolveAbsolute looks up an absolute path such as "/app/modA/m" or
// "/app/modA/@speed". A path equal to the app's own path returns the app.
func ResolveAbsolute(app *AppSchema, path string) Node {
	root := app.Path()
	if path == root || path == root+"/" {
		return app
	}
	rest, ok := strings.CutPrefix(path, root+"/")
	if !ok {
		return nil
	}
	return EvaluatePath(app, rest)
}
