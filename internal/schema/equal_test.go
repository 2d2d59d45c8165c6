package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepCopy_Independent(t *testing.T) {
	app := loadShow(t)
	cp := app.DeepCopy()

	require.True(t, Equal(app, cp))

	master := cp.GetChild("master")
	master.Label = "Changed"
	master.GetParam("speed").MaxNorm = Float(8)
	*master.GetParam("color").Parts[0].MinLimit = -1
	widget, _ := master.GetParam("color").Properties.Get("widget")
	widget.(Dict)[0].Value = "slider"
	cp.OptionLists[0].Options[0].Label = "Add"
	cp.ModuleTypes[0].Params[0].Key = "alpha"
	*master.GetParam("mode").ValueIndex = 0

	orig := app.GetChild("master")
	assert.Equal(t, "Master", orig.Label)
	assert.Equal(t, 4.0, *orig.GetParam("speed").MaxNorm)
	assert.Equal(t, 0.0, *orig.GetParam("color").Parts[0].MinLimit)
	origWidget, _ := orig.GetParam("color").Properties.Get("widget")
	assert.Equal(t, "wheel", origWidget.(Dict)[0].Value)
	assert.Equal(t, "add", app.OptionLists[0].Options[0].Label)
	assert.Equal(t, "opacity", app.ModuleTypes[0].Params[0].Key)
	assert.Equal(t, 1, *orig.GetParam("mode").ValueIndex)
	assert.False(t, Equal(app, cp))
}

func TestDeepCopy_Nil(t *testing.T) {
	var app *AppSchema
	assert.Nil(t, app.DeepCopy())
	var p *ParamSpec
	assert.Nil(t, p.DeepCopy())
}

func TestEqual(t *testing.T) {
	a := &ParamSpec{Key: "p", Type: ParamTypeFloat, MinLimit: Float(0)}
	b := &ParamSpec{Key: "p", Type: ParamTypeFloat, MinLimit: Float(0)}
	assert.True(t, Equal(a, b))
	assert.Empty(t, Diff(a, b))

	b.MinLimit = Float(1)
	assert.False(t, Equal(a, b))
	assert.Contains(t, Diff(a, b), "minLimit")

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestEqual_AbsentEqualsEmpty(t *testing.T) {
	a := &ModuleSpec{Key: "m"}
	b := &ModuleSpec{Key: "m", Params: []*ParamSpec{}, Tags: []string{}}
	assert.True(t, Equal(a, b))
}

func TestCheckUnique(t *testing.T) {
	app := loadShow(t)
	assert.Empty(t, CheckUnique(app))

	master := app.GetChild("master")
	master.Params = append(master.Params, &ParamSpec{Key: "speed", Type: ParamTypeInt})
	master.Children = append(master.Children, &ModuleSpec{Key: "layer1"})
	app.OptionLists = append(app.OptionLists, &OptionList{Key: "blendModes"})

	errs := CheckUnique(app)
	require.Len(t, errs, 3)

	var dup *DuplicateKeyError
	require.True(t, errors.As(errs[0], &dup))
	assert.Equal(t, "option list", dup.Kind)
	assert.Equal(t, "blendModes", dup.Key)

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	assert.Contains(t, msgs, `duplicate module key "layer1" in /show/master`)
	assert.Contains(t, msgs, `duplicate param key "speed" in /show/master`)
}
