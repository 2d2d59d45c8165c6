// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tctrl/cli/internal/config"
)

// Isolate points HOME at a fresh temporary directory and clears the config
// path override, so commands under test never read the user's
// configuration. It returns the temporary home.
func Isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfig, "")
	return home
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ConfigFile returns the default config file location below home.
func ConfigFile(home string) string {
	return filepath.Join(home, ".tctrl", "config.yaml")
}
