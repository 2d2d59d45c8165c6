// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and internal/cmd/config.
package cmdtypes

import (
	"github.com/tctrl/cli/internal/config"
	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the resolved configuration (flag > env > file > default).
	Config *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ConfigSource is where ConfigPath came from.
	ConfigSource config.ConfigSource

	// Format is the resolved document output format.
	Format output.Format

	// Resolved lists every config key with its winning source.
	Resolved []config.ResolvedValue

	Verbose bool
}

// Process returns the resolved normalization defaults, or the zero value
// before configuration has been loaded.
func (g *GlobalConfig) Process() config.ProcessConfig {
	if g == nil || g.Config == nil {
		return config.ProcessConfig{}
	}
	return g.Config.Process
}

// OutputFormat returns the resolved output format, defaulting to YAML.
func (g *GlobalConfig) OutputFormat() output.Format {
	if g == nil || !g.Format.Valid() {
		return output.FormatYAML
	}
	return g.Format
}

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// Printed wraps err with its exit code and marks it as already reported, so
// main does not print it a second time.
func Printed(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}
