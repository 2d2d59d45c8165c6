package validate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/tctrl/cli/internal/errors"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func hasPathPrefix(issues []Issue, prefix string) bool {
	for _, i := range issues {
		if strings.HasPrefix(i.Path, prefix) {
			return true
		}
	}
	return false
}

func TestDocument_Valid(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Document("show.yaml", readTestdata(t, "show.yaml")))
}

func TestDocument_ValidJSON(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	doc := `{"key": "a", "children": [{"key": "m", "params": [{"key": "p", "type": "int", "custom": {"x": 1}}]}]}`
	assert.NoError(t, v.Document("a.json", []byte(doc)), "params accept extra properties")
}

func TestDocument_Broken(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Document("broken.yaml", readTestdata(t, "broken.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "broken.yaml", verr.Location)

	for _, prefix := range []string{
		"tags",
		"connections.0",
		"children.0.lable",
		"children.0.params.0",
		"children.0.params.1",
	} {
		assert.True(t, hasPathPrefix(verr.Issues, prefix), "expected an issue under %s, got %v", prefix, verr.Issues)
	}
	assert.False(t, hasPathPrefix(verr.Issues, "key"), "the app key is present")
	assert.Contains(t, err.Error(), "broken.yaml:")
}

func TestIssues_NotAnObject(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "list", data: "- a\n- b\n"},
		{name: "scalar", data: "hello\n"},
		{name: "invalid yaml", data: "key: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := v.Issues([]byte(tt.data))
			require.Len(t, issues, 1)
			assert.Equal(t, "(document)", issues[0].Path)
		})
	}
}

func TestIssues_MissingAppKey(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	issues := v.Issues([]byte("label: nameless\n"))
	require.NotEmpty(t, issues)
	assert.True(t, hasPathPrefix(issues, "key"), "%v", issues)
}

func TestIssue_String(t *testing.T) {
	assert.Equal(t, "children.0.key: required", Issue{Path: "children.0.key", Message: "required"}.String())
}
