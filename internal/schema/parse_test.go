package schema

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	oerrors "github.com/tctrl/cli/internal/errors"
)

func decode(t *testing.T, src string) Dict {
	t.Helper()
	var d Dict
	require.NoError(t, yaml.Unmarshal([]byte(src), &d))
	return d
}

func loadShow(t *testing.T) *AppSchema {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "show.yaml"))
	require.NoError(t, err)
	var d Dict
	require.NoError(t, yaml.Unmarshal(data, &d))
	app, err := AppFromDict(d)
	require.NoError(t, err)
	return app
}

func TestAppFromDict_Show(t *testing.T) {
	app := loadShow(t)

	assert.Equal(t, "show", app.Key)
	assert.Equal(t, "/show", app.Path())
	assert.Equal(t, []string{"demo"}, app.Tags)
	require.Len(t, app.Connections, 1)
	assert.Equal(t, ConnectionInfo{ConnType: "osc", Host: "127.0.0.1", Port: 9000}, app.Connections[0])

	require.Len(t, app.OptionLists, 1)
	assert.Equal(t, []ParamOption{
		{Key: "add", Label: "add"},
		{Key: "mult", Label: "Multiply"},
	}, app.OptionLists[0].Options)

	master := app.GetChild("master")
	require.NotNil(t, master)
	assert.Equal(t, "/show/master", master.Path)

	speed := master.GetParam("speed")
	require.NotNil(t, speed)
	assert.Equal(t, ParamTypeFloat, speed.Type, "type names are matched case-insensitively")
	assert.Equal(t, "/show/master/speed", speed.Path)
	assert.Equal(t, 4.0, *speed.MaxNorm)
	assert.Nil(t, speed.MinLimit)

	color := master.GetParam("color")
	require.NotNil(t, color)
	require.Len(t, color.Parts, 3)
	assert.Equal(t, "/show/master/color/r", color.Parts[0].Path)
	assert.Equal(t, 3, color.Len())
	assert.Equal(t, []string{"uiColor", "widget"}, color.Properties.Keys())

	mode := master.GetParam("mode")
	require.NotNil(t, mode)
	assert.Equal(t, 1, *mode.ValueIndex)
	assert.Empty(t, mode.Options, "optionList references are not resolved at construction")

	layer1 := master.GetChild("layer1")
	require.NotNil(t, layer1)
	assert.Equal(t, "/show/master/layer1", layer1.Path)
	assert.Equal(t, "layerType", layer1.ModuleType)
}

func TestAppFromDict_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "app key",
			doc:     "label: nope\n",
			wantMsg: `invalid app: missing required field "key"`,
		},
		{
			name:    "module key",
			doc:     "key: a\nchildren:\n  - label: x\n",
			wantMsg: `missing required field "key"`,
		},
		{
			name:    "param type",
			doc:     "key: a\nchildren:\n  - key: m\n    params:\n      - key: p\n",
			wantMsg: `invalid param "p": missing required field "type"`,
		},
		{
			name:    "part key",
			doc:     "key: a\nchildren:\n  - key: m\n    params:\n      - key: p\n        type: fvec\n        parts:\n          - label: x\n",
			wantMsg: `invalid param part`,
		},
		{
			name:    "connection type",
			doc:     "key: a\nconnections:\n  - host: localhost\n",
			wantMsg: `invalid connection`,
		},
		{
			name:    "option list key",
			doc:     "key: a\noptionLists:\n  - options: [x]\n",
			wantMsg: `invalid option list`,
		},
		{
			name:    "module type key",
			doc:     "key: a\nmoduleTypes:\n  - label: t\n",
			wantMsg: `invalid module type`,
		},
		{
			name:    "group key",
			doc:     "key: a\nchildGroups:\n  - label: g\n",
			wantMsg: `invalid group`,
		},
		{
			name:    "empty app key",
			doc:     "key: \"\"\n",
			wantMsg: `field "key" must not be empty`,
		},
		{
			name:    "empty module key",
			doc:     "key: a\nchildren:\n  - key: ''\n",
			wantMsg: `field "key" must not be empty`,
		},
		{
			name:    "bad number",
			doc:     "key: a\nchildren:\n  - key: m\n    params:\n      - key: p\n        type: float\n        minLimit: low\n",
			wantMsg: `field "minLimit" must be a number`,
		},
		{
			name:    "bad option",
			doc:     "key: a\noptionLists:\n  - key: l\n    options: [[1, 2]]\n",
			wantMsg: `invalid option`,
		},
		{
			name:    "child not an object",
			doc:     "key: a\nchildren: [oops]\n",
			wantMsg: `expected an object`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := AppFromDict(decode(t, tt.doc))
			require.Error(t, err)
			assert.Nil(t, app, "no partially constructed node is returned")
			assert.Contains(t, err.Error(), tt.wantMsg)

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.NotNil(t, schemaErr.Fragment)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}
}

func TestParamFromDict_UnknownType(t *testing.T) {
	p, err := ParamFromDict(decode(t, "key: p\ntype: Pulse\n"))
	require.NoError(t, err)

	assert.Equal(t, ParamTypeOther, p.Type)
	assert.Equal(t, "Pulse", p.OtherType)
	view := p.Dict()
	typeName, _ := view.Get("type")
	assert.Equal(t, "other", typeName)
	otherType, _ := view.Get("otherType")
	assert.Equal(t, "Pulse", otherType)
}

func TestParamFromDict_EmptyListsReadAsAbsent(t *testing.T) {
	p, err := ParamFromDict(decode(t, "key: p\ntype: menu\noptions: []\nparts: []\ntags: []\n"))
	require.NoError(t, err)

	assert.Nil(t, p.Options)
	assert.Nil(t, p.Parts)
	assert.Nil(t, p.Tags)
	assert.Equal(t, []string{"key", "type"}, p.Dict().Keys())
}

func TestRoundTrip_YAML(t *testing.T) {
	app := loadShow(t)

	out, err := yaml.Marshal(app)
	require.NoError(t, err)

	var d Dict
	require.NoError(t, yaml.Unmarshal(out, &d))
	again, err := AppFromDict(d)
	require.NoError(t, err)

	assert.True(t, Equal(app, again), Diff(app, again))
}

func TestRoundTrip_JSON(t *testing.T) {
	app := loadShow(t)

	out, err := json.Marshal(app)
	require.NoError(t, err)

	var d Dict
	require.NoError(t, yaml.Unmarshal(out, &d))
	again, err := AppFromDict(d)
	require.NoError(t, err)

	assert.True(t, Equal(app, again), Diff(app, again))
}

func TestRoundTrip_NumberTypes(t *testing.T) {
	doc := `key: app
children:
  - key: m
    params:
      - key: gain
        type: float
        default: 2.0
        value: 3.0
        minLimit: 0
        maxLimit: 10
      - key: count
        type: int
        default: 2
        value: 3
      - key: pos
        type: fvec
        default: [1.0, 0.5]
        parts:
          - key: x
            default: 1.0
          - key: y
            value: -4.0
      - key: huge
        type: float
        value: 1.0e+21
`
	encoders := []struct {
		name   string
		encode func(any) ([]byte, error)
	}{
		{name: "yaml", encode: yaml.Marshal},
		{name: "json", encode: json.Marshal},
	}

	for _, enc := range encoders {
		t.Run(enc.name, func(t *testing.T) {
			app, err := AppFromDict(decode(t, doc))
			require.NoError(t, err)

			out, err := enc.encode(app)
			require.NoError(t, err)
			again, err := AppFromDict(decode(t, string(out)))
			require.NoError(t, err)

			assert.True(t, Equal(app, again), Diff(app, again))

			m := again.GetChild("m")
			assert.Equal(t, 2.0, m.GetParam("gain").DefaultVal)
			assert.Equal(t, 3.0, m.GetParam("gain").Value)
			assert.Equal(t, 2, m.GetParam("count").DefaultVal)
			assert.Equal(t, 3, m.GetParam("count").Value)
			assert.Equal(t, []any{1.0, 0.5}, m.GetParam("pos").DefaultVal)
			assert.Equal(t, -4.0, m.GetParam("pos").GetPart("y").Value)
		})
	}
}

func TestFloatText(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2.0"},
		{-4, "-4.0"},
		{0.25, "0.25"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floatText(tt.in))
	}
}

func TestRoundTrip_PreservesExtraProperties(t *testing.T) {
	app := loadShow(t)
	color := app.GetChild("master").GetParam("color")

	view := color.Dict()
	ui, ok := view.Get("uiColor")
	require.True(t, ok)
	assert.Equal(t, "#ff0000", ui)

	widget, ok := view.Get("widget")
	require.True(t, ok)
	assert.Equal(t, Dict{{Key: "kind", Value: "wheel"}, {Key: "size", Value: 3}}, widget)
}

func TestDictFromMap(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"key":"a","children":[{"key":"m"}]}`), &m))

	app, err := AppFromDict(DictFromMap(m))
	require.NoError(t, err)
	assert.Equal(t, "/a/m", app.Children[0].Path)
}
