package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedLoader(t *testing.T, content string) *Loader {
	t.Helper()
	l := NewLoader()
	_, err := l.Load(writeConfig(t, content))
	require.NoError(t, err)
	return l
}

func TestResolve_FlagPrecedence(t *testing.T) {
	t.Setenv("TCTRL_OUTPUT", "yaml")
	l := loadedLoader(t, "output: json\n")

	rv := l.Resolve(KeyOutput, FlagValue{Set: true, Value: "json"})

	assert.Equal(t, "json", rv.Value)
	assert.Equal(t, SourceFlag, rv.Source)
	assert.Equal(t, "yaml", rv.Shadowed[SourceEnv])
	assert.Equal(t, "json", rv.Shadowed[SourceConfig])
	assert.NotContains(t, rv.Shadowed, SourceDefault)
}

func TestResolve_EnvPrecedence(t *testing.T) {
	t.Setenv("TCTRL_PROCESS_STRICT", "true")
	l := loadedLoader(t, "process:\n  strict: false\n")

	rv := l.Resolve(KeyStrict, FlagValue{})

	assert.Equal(t, "true", rv.Value)
	assert.Equal(t, SourceEnv, rv.Source)
	assert.Equal(t, false, rv.Shadowed[SourceConfig])
	assert.NotContains(t, rv.Shadowed, SourceFlag)
}

func TestResolve_ConfigFallback(t *testing.T) {
	l := loadedLoader(t, "process:\n  embedOptionLists: true\n")

	rv := l.Resolve(KeyEmbedOptionLists, FlagValue{})

	assert.Equal(t, true, rv.Value)
	assert.Equal(t, SourceConfig, rv.Source)
	assert.Empty(t, rv.Shadowed)
}

func TestResolve_Default(t *testing.T) {
	l := loadedLoader(t, "output: json\n")

	rv := l.Resolve(KeyLogTimestamps, FlagValue{})

	assert.Equal(t, true, rv.Value)
	assert.Equal(t, SourceDefault, rv.Source)
	assert.Empty(t, rv.Shadowed)
}

func TestResolveAll(t *testing.T) {
	t.Setenv("TCTRL_PROCESS_EMBEDMODULETYPES", "true")
	l := loadedLoader(t, `
output: json
log:
  timestamps: false
process:
  generateChildGroups: true
`)

	cfg, values, err := l.ResolveAll(map[string]FlagValue{
		KeyOutput: {Set: true, Value: "yaml"},
		KeyStrict: {Set: false, Value: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output)
	assert.False(t, *cfg.Log.Timestamps)
	assert.True(t, cfg.Process.EmbedModuleTypes)
	assert.True(t, cfg.Process.GenerateChildGroups)
	assert.False(t, cfg.Process.Strict, "unset flags do not win")

	require.Len(t, values, len(Keys))
	sources := make(map[string]ConfigSource, len(values))
	for _, v := range values {
		sources[v.Key] = v.Source
	}
	assert.Equal(t, SourceFlag, sources[KeyOutput])
	assert.Equal(t, SourceConfig, sources[KeyLogTimestamps])
	assert.Equal(t, SourceEnv, sources[KeyEmbedModuleTypes])
	assert.Equal(t, SourceDefault, sources[KeyStrict])

	assert.NotPanics(t, func() { LogResolvedValues(values) })
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	defaultPath := "/home/tester/.tctrl/config.yaml"

	t.Run("flag", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/config.yaml"})
		require.NoError(t, err)

		assert.Equal(t, "/flag/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceFlag, result.Source)
		assert.Equal(t, "/env/config.yaml", result.Shadowed[SourceEnv])
		assert.Equal(t, defaultPath, result.Shadowed[SourceDefault])
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)

		assert.Equal(t, "/env/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceEnv, result.Source)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)

		assert.Equal(t, defaultPath, result.ConfigPath)
		assert.Equal(t, SourceDefault, result.Source)
		assert.Empty(t, result.Shadowed)
	})
}

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{name: "empty document", content: ""},
		{name: "valid", content: "output: json\nprocess:\n  strict: true\n"},
		{name: "bad output", content: "output: xml\n", wantField: "output"},
		{name: "wrong type", content: "log:\n  timestamps: maybe\n", wantField: "log.timestamps"},
		{name: "unknown key", content: "registry: example.com\n", wantField: "registry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.content))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			fields := make([]string, len(verrs))
			for i, e := range verrs {
				fields[i] = e.Field
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidator_ValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.ValidateFile(writeConfig(t, "output: yaml\n")))
	assert.ErrorContains(t, v.ValidateFile("/nonexistent/config.yaml"), "reading config file")
}
