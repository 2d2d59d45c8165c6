package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tctrl/cli/internal/schema"
)

func sampleApp() *schema.AppSchema {
	app := &schema.AppSchema{
		Key:   "show",
		Label: "Light Show",
		Children: []*schema.ModuleSpec{
			{
				Key:   "master",
				Label: "Master",
				Params: []*schema.ParamSpec{
					{Key: "speed", Type: schema.ParamTypeFloat, Label: "Speed", MinLimit: schema.Float(0), MaxLimit: schema.Float(4), DefaultVal: 1, Group: "timing"},
					{Key: "color", Type: schema.ParamTypeFVec, Parts: []*schema.ParamPartSpec{{Key: "r"}, {Key: "g"}, {Key: "b"}}},
					{Key: "mode", Type: schema.ParamTypeMenu, ValueIndex: schema.Int(2)},
				},
				Children: []*schema.ModuleSpec{
					{Key: "layer1", ModuleType: "layerType"},
				},
			},
		},
	}
	schema.AssignPaths(app)
	return app
}

func TestWriteNode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNode(&buf, sampleApp(), FormatYAML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "key: show\nlabel: Light Show\npath: /show\n"), out)
	assert.Contains(t, out, "  - key: master\n")
	assert.Less(t, strings.Index(out, "key: speed"), strings.Index(out, "key: color"), "document order is kept")
}

func TestWriteNode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNode(&buf, sampleApp(), FormatJSON))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"key\": \"show\",\n  \"label\": \"Light Show\",\n  \"path\": \"/show\""), out)
	assert.True(t, strings.HasSuffix(out, "}\n"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/show", decoded["path"])
}

func TestWriteNode_UnknownFormat(t *testing.T) {
	err := WriteNode(&bytes.Buffer{}, sampleApp(), Format("xml"))
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestWriteNodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	require.NoError(t, WriteNodeFile(path, sampleApp(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"key": "master"`)
}

func TestRenderSchemaTree(t *testing.T) {
	out := RenderSchemaTree(sampleApp(), TreeOptions{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "show/")
	assert.Contains(t, lines[0], "Light Show")
	assert.True(t, strings.HasPrefix(lines[1], "└── master"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "    └── layer1"), lines[2])
	assert.Contains(t, lines[2], "<layerType>")
}

func TestRenderSchemaTree_Params(t *testing.T) {
	out := RenderSchemaTree(sampleApp(), TreeOptions{Params: true})

	assert.Contains(t, out, "├── @speed")
	assert.Contains(t, out, "fvec[3]")
	assert.Contains(t, out, "Speed")
	assert.Less(t, strings.Index(out, "@mode"), strings.Index(out, "layer1"), "params are listed before children")
}

func TestParamTable(t *testing.T) {
	app := sampleApp()

	tbl := ParamTable(app)
	assert.Equal(t, 3, tbl.Len())

	out := tbl.String()
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "/show/master/speed")
	assert.Contains(t, out, "0..4")
	assert.Contains(t, out, "#2")

	master := app.GetChild("master")
	assert.Equal(t, 3, ParamTable(master).Len(), "a module root includes its own params")
	assert.Equal(t, 0, ParamTable(master.GetChild("layer1")).Len())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(nil))
	assert.Equal(t, "0.5", formatValue(0.5))
	assert.Equal(t, "[1, 2.5]", formatValue([]any{1, 2.5}))
	assert.Equal(t, "on", formatValue("on"))
}

func TestDiffNodes(t *testing.T) {
	from := sampleApp()
	to := from.DeepCopy()
	to.Label = "Dark Show"

	res, err := DiffNodes(from, to, DiffOptions{FromName: "before", ToName: "after"})
	require.NoError(t, err)
	assert.True(t, res.HasChanges())
	assert.Contains(t, res.Report, "Light Show")
	assert.Contains(t, res.Report, "Dark Show")

	same, err := DiffNodes(from, from.DeepCopy(), DiffOptions{FromName: "a", ToName: "b"})
	require.NoError(t, err)
	assert.False(t, same.HasChanges())
	assert.Empty(t, same.Report)
}

func TestParamTypeStyle(t *testing.T) {
	assert.Equal(t, ColorMagenta, ParamTypeStyle(schema.ParamTypeFVec).GetForeground())
	assert.Equal(t, ColorBlue, ParamTypeStyle(schema.ParamTypeInt).GetForeground())
	assert.Equal(t, ColorGreen, ParamTypeStyle(schema.ParamTypeTrigger).GetForeground())
	assert.Equal(t, ColorYellow, ParamTypeStyle(schema.ParamTypeMenu).GetForeground())
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout))
}
