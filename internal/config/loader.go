package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for tctrl configuration.
const envPrefix = "TCTRL"

// EnvVar returns the environment variable bound to a config key, e.g.
// TCTRL_PROCESS_STRICT for "process.strict".
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	// v merges defaults, the config file and the environment.
	v *viper.Viper

	// file holds the config file alone, for source attribution.
	file *viper.Viper

	path string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	return &Loader{v: v, file: viper.New()}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error. Environment variables take precedence over
// file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	l.path = expandedPath

	for _, v := range []*viper.Viper{l.v, l.file} {
		v.SetConfigFile(expandedPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg.WithDefaults(), nil
}

// Path returns the config file path used by the last Load.
func (l *Loader) Path() string {
	return l.path
}

// InConfig reports whether the config file sets key.
func (l *Loader) InConfig(key string) bool {
	return l.file.InConfig(key)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
