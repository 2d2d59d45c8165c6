package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"sigs.k8s.io/yaml"
)

//go:embed schema.cue
var configSchemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// ValidateBytes validates a YAML configuration document. Unknown keys and
// values of the wrong type are reported per field.
func (v *Validator) ValidateBytes(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return ValidationErrors{{Field: "(document)", Message: err.Error()}}
	}
	if strings.TrimSpace(string(jsonData)) == "null" {
		return nil
	}

	doc := v.ctx.CompileBytes(jsonData)
	if doc.Err() != nil {
		return ValidationErrors{{Field: "(document)", Message: doc.Err().Error()}}
	}

	unified := v.schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var errs ValidationErrors
		for _, e := range cueerrors.Errors(err) {
			field := strings.Join(e.Path(), ".")
			if field == "" {
				field = "(document)"
			}
			format, args := e.Msg()
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
		}
		return errs
	}
	return nil
}

// ValidateFile validates the configuration file at path.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return v.ValidateBytes(data)
}
