package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/tctrl/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// FlagValue is a command-line flag as seen by the resolver. Set is true only
// when the user passed the flag explicitly.
type FlagValue struct {
	Set   bool
	Value any
}

// ResolvedValue is one configuration key after precedence resolution.
type ResolvedValue struct {
	// Key is the dotted config key.
	Key string
	// Value is the winning value.
	Value any
	// Source indicates where Value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]any
}

// Resolve resolves key using precedence:
// (1) flag, (2) TCTRL_ env, (3) config file, (4) default.
func (l *Loader) Resolve(key string, flag FlagValue) ResolvedValue {
	type candidate struct {
		source ConfigSource
		value  any
		set    bool
	}
	envValue, envSet := os.LookupEnv(EnvVar(key))
	candidates := []candidate{
		{SourceFlag, flag.Value, flag.Set},
		{SourceEnv, envValue, envSet},
		{SourceConfig, l.file.Get(key), l.InConfig(key)},
		{SourceDefault, defaults()[key], true},
	}

	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]any)}
	for _, c := range candidates {
		if !c.set {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.source != SourceDefault {
			result.Shadowed[c.source] = c.value
		}
	}
	return result
}

// ResolveAll resolves every key in Keys and decodes the winners into a
// Config. flags maps config keys to their command-line flags.
func (l *Loader) ResolveAll(flags map[string]FlagValue) (*Config, []ResolvedValue, error) {
	merged := viper.New()
	values := make([]ResolvedValue, 0, len(Keys))
	for _, key := range Keys {
		rv := l.Resolve(key, flags[key])
		merged.Set(key, rv.Value)
		values = append(values, rv)
	}

	var cfg Config
	if err := merged.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("decoding resolved config: %w", err)
	}
	return cfg.WithDefaults(), values, nil
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) TCTRL_CONFIG env, (3) ~/.tctrl/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
