// Package validate checks schema documents against an embedded CUE
// definition before they are built into a schema tree. It catches problems
// the constructors tolerate, such as misspelled keys outside params and
// values of the wrong type, and reports all of them at once.
package validate

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"sigs.k8s.io/yaml"

	oerrors "github.com/tctrl/cli/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Issue is one validation failure.
type Issue struct {
	// Path is the dotted document path, e.g. "children.0.params.2.type".
	Path string

	// Message describes the failure.
	Message string
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Error reports every issue found in one document.
type Error struct {
	// Location is the document name.
	Location string

	Issues []Issue
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d validation issue(s)", e.Location, len(e.Issues))
	for _, issue := range e.Issues {
		sb.WriteString("\n  ")
		sb.WriteString(issue.String())
	}
	return sb.String()
}

// Unwrap lets callers match with errors.Is(err, ErrValidation).
func (e *Error) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator holds the compiled schema definitions.
type Validator struct {
	ctx *cue.Context
	app cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	app := schema.LookupPath(cue.ParsePath("#App"))
	if !app.Exists() {
		return nil, fmt.Errorf("schema does not define #App")
	}

	return &Validator{ctx: ctx, app: app}, nil
}

// Document validates a YAML or JSON app document. It returns nil when the
// document is valid and an *Error listing every issue otherwise.
func (v *Validator) Document(name string, data []byte) error {
	issues := v.Issues(data)
	if len(issues) == 0 {
		return nil
	}
	return &Error{Location: name, Issues: issues}
}

// Issues validates a document and returns the issues sorted by path.
func (v *Validator) Issues(data []byte) []Issue {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return []Issue{{Path: "(document)", Message: err.Error()}}
	}

	doc := v.ctx.CompileBytes(jsonData)
	if doc.Err() != nil {
		return []Issue{{Path: "(document)", Message: doc.Err().Error()}}
	}
	if doc.Kind() != cue.StructKind {
		return []Issue{{Path: "(document)", Message: "expected an object, got " + doc.Kind().String()}}
	}

	err = v.app.Unify(doc).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	seen := make(map[Issue]bool)
	var issues []Issue
	for _, e := range cueerrors.Errors(err) {
		path := strings.Join(e.Path(), ".")
		if path == "" {
			path = "(document)"
		}
		format, args := e.Msg()
		issue := Issue{Path: path, Message: fmt.Sprintf(format, args...)}
		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}
