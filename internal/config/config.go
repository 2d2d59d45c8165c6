// Package config provides configuration loading and management.
package config

// Configuration keys, in dotted viper form.
const (
	KeyOutput              = "output"
	KeyLogTimestamps       = "log.timestamps"
	KeyEmbedModuleTypes    = "process.embedModuleTypes"
	KeyEmbedOptionLists    = "process.embedOptionLists"
	KeyGenerateParamGroups = "process.generateParamGroups"
	KeyGenerateChildGroups = "process.generateChildGroups"
	KeyStrict              = "process.strict"
)

// Keys lists every configuration key in resolution order.
var Keys = []string{
	KeyOutput,
	KeyLogTimestamps,
	KeyEmbedModuleTypes,
	KeyEmbedOptionLists,
	KeyGenerateParamGroups,
	KeyGenerateChildGroups,
	KeyStrict,
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// ProcessConfig holds the default normalization steps for `tctrl process`.
// Each can be overridden by the matching flag.
type ProcessConfig struct {
	EmbedModuleTypes    bool `mapstructure:"embedModuleTypes" yaml:"embedModuleTypes"`
	EmbedOptionLists    bool `mapstructure:"embedOptionLists" yaml:"embedOptionLists"`
	GenerateParamGroups bool `mapstructure:"generateParamGroups" yaml:"generateParamGroups"`
	GenerateChildGroups bool `mapstructure:"generateChildGroups" yaml:"generateChildGroups"`

	// Strict turns unresolved module type and option list references into
	// an error.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// Config represents the tctrl CLI configuration.
// Loaded from ~/.tctrl/config.yaml, validated against an embedded CUE schema.
type Config struct {
	// Output is the default document format, "yaml" or "json".
	// Env: TCTRL_OUTPUT
	Output string `mapstructure:"output" yaml:"output"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Process contains normalization defaults.
	Process ProcessConfig `mapstructure:"process" yaml:"process"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Output: "yaml",
		Log:    LogConfig{Timestamps: &timestamps},
	}
}

// defaults returns the default value of every key.
func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		KeyOutput:              d.Output,
		KeyLogTimestamps:       *d.Log.Timestamps,
		KeyEmbedModuleTypes:    d.Process.EmbedModuleTypes,
		KeyEmbedOptionLists:    d.Process.EmbedOptionLists,
		KeyGenerateParamGroups: d.Process.GenerateParamGroups,
		KeyGenerateChildGroups: d.Process.GenerateChildGroups,
		KeyStrict:              d.Process.Strict,
	}
}

// WithDefaults fills unset fields from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	d := DefaultConfig()
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.Log.Timestamps == nil {
		c.Log.Timestamps = d.Log.Timestamps
	}
	return c
}

// DefaultConfigTemplate is written by `tctrl config init`.
const DefaultConfigTemplate = `# tctrl configuration
#
# Every key can also be set with a TCTRL_ environment variable, e.g.
# TCTRL_OUTPUT=json or TCTRL_PROCESS_STRICT=true. Command-line flags take
# precedence over both.

# Default document format for process/get: yaml or json.
output: yaml

log:
  # Show timestamps in log output.
  timestamps: true

# Steps run by 'tctrl process' when no step flag is given.
process:
  embedModuleTypes: false
  embedOptionLists: false
  generateParamGroups: false
  generateChildGroups: false
  # Fail on unresolved moduleType/optionList references.
  strict: false
`
