package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/testutil"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "tctrl", root.Use)
	for _, flag := range []string{"config", "output", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"process", "vet", "show", "params", "get", "diff", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRoot_InvalidOutputFormat(t *testing.T) {
	testutil.Isolate(t)

	_, err := execute(t, "", "get", testdata("show.yaml"), "master", "-o", "xml")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}

func TestRoot_OutputFromEnv(t *testing.T) {
	testutil.Isolate(t)
	t.Setenv("TCTRL_OUTPUT", "json")

	out, err := execute(t, "", "get", testdata("show.yaml"), "master/@speed")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)
}

func TestRoot_FlagBeatsEnv(t *testing.T) {
	testutil.Isolate(t)
	t.Setenv("TCTRL_OUTPUT", "json")

	out, err := execute(t, "", "get", testdata("show.yaml"), "master/@speed", "-o", "yaml")
	require.NoError(t, err)
	assert.False(t, json.Valid([]byte(out)), out)
	assert.Contains(t, out, "key: speed")
}

func TestRoot_OutputFromConfigFile(t *testing.T) {
	home := testutil.Isolate(t)
	testutil.WriteFile(t, testutil.ConfigFile(home), "output: json\n")

	out, err := execute(t, "", "get", testdata("show.yaml"), "master")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)
}

func TestVersionCmd(t *testing.T) {
	testutil.Isolate(t)

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tctrl version")
	assert.Contains(t, out, "CUE SDK")
}
