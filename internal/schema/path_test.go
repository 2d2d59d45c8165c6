package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/app/m", JoinPath("/app", "m"))
	assert.Equal(t, "/app/m", JoinPath("/app/", "m"))
	assert.Equal(t, "/m", JoinPath("", "m"))
}

func TestAssignPaths_KeepsExisting(t *testing.T) {
	app := &AppSchema{
		Key: "app",
		Children: []*ModuleSpec{
			{
				Key:  "a",
				Path: "/custom/a",
				Params: []*ParamSpec{
					{Key: "p", Type: ParamTypeFVec, Parts: []*ParamPartSpec{{Key: "x"}}},
					{Key: "q", Type: ParamTypeInt, Path: "/custom/q"},
				},
				Children: []*ModuleSpec{{Key: "b"}},
			},
		},
	}

	AssignPaths(app)

	a := app.Children[0]
	assert.Equal(t, "/custom/a", a.Path)
	assert.Equal(t, "/custom/a/p", a.Params[0].Path)
	assert.Equal(t, "/custom/a/p/x", a.Params[0].Parts[0].Path)
	assert.Equal(t, "/custom/q", a.Params[1].Path)
	assert.Equal(t, "/custom/a/b", a.Children[0].Path)
}

func TestWalkModules_PreOrder(t *testing.T) {
	app := loadShow(t)

	var visited []string
	var parents []string
	WalkModules(app, func(m *ModuleSpec, parent Container) {
		visited = append(visited, m.Key)
		parents = append(parents, parent.NodeKey())
	})

	assert.Equal(t, []string{"master", "layer1", "layer2"}, visited)
	assert.Equal(t, []string{"show", "master", "master"}, parents)
}

func TestEvaluatePath(t *testing.T) {
	app := loadShow(t)
	master := app.GetChild("master")
	require.NotNil(t, master)

	tests := []struct {
		name    string
		node    Container
		path    string
		wantKey string
	}{
		{name: "top level module", node: app, path: "master", wantKey: "master"},
		{name: "nested module", node: app, path: "master/layer1", wantKey: "layer1"},
		{name: "param of module", node: master, path: "@speed", wantKey: "speed"},
		{name: "nested param", node: app, path: "master/@color", wantKey: "color"},
		{name: "relative to module", node: master, path: "layer2", wantKey: "layer2"},
		{name: "empty path", node: app, path: ""},
		{name: "unknown module", node: app, path: "nope"},
		{name: "unknown param", node: master, path: "@nope"},
		{name: "param on app root", node: app, path: "@speed"},
		{name: "param segment not last", node: app, path: "master/@speed/x"},
		{name: "unknown nested segment", node: app, path: "master/layer1/deeper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePath(tt.node, tt.path)
			if tt.wantKey == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantKey, got.NodeKey())
		})
	}
}

func TestResolveAbsolute(t *testing.T) {
	app := loadShow(t)

	assert.Same(t, app, ResolveAbsolute(app, "/show"))

	got := ResolveAbsolute(app, "/show/master/layer1")
	require.NotNil(t, got)
	assert.Equal(t, "/show/master/layer1", got.(*ModuleSpec).Path)

	p := ResolveAbsolute(app, "/show/master/@reset")
	require.NotNil(t, p)
	assert.Equal(t, ParamTypeTrigger, p.(*ParamSpec).Type)

	assert.Nil(t, ResolveAbsolute(app, "/other/master"))
	assert.Nil(t, ResolveAbsolute(app, "master"))
}
