// Package loader reads app schema documents from files or stdin and builds
// schema trees from them. YAML and JSON are both accepted; key order is
// preserved.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	oerrors "github.com/tctrl/cli/internal/errors"
	"github.com/tctrl/cli/internal/output"
	"github.com/tctrl/cli/internal/schema"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Document is a schema document read from one source.
type Document struct {
	// Name is the file path, or "<stdin>".
	Name string

	// Data is the raw document.
	Data []byte
}

// Read reads the document at path, or from stdin when path is "-".
func Read(path string, stdin io.Reader) (*Document, error) {
	if path == Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return &Document{Name: "<stdin>", Data: data}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oerrors.NewNotFoundError("schema file does not exist", path,
				"Check the path, or pass - to read from stdin.")
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Document{Name: path, Data: data}, nil
}

// Dict decodes the document into an ordered Dict.
func (d *Document) Dict() (schema.Dict, error) {
	if len(bytes.TrimSpace(d.Data)) == 0 {
		return nil, oerrors.NewValidationError("document is empty", d.Name, "", "")
	}
	var dict schema.Dict
	if err := yaml.Unmarshal(d.Data, &dict); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), d.Name, "",
			"The document must be a YAML or JSON object.")
	}
	return dict, nil
}

// App decodes the document and builds the schema tree.
func (d *Document) App() (*schema.AppSchema, error) {
	dict, err := d.Dict()
	if err != nil {
		return nil, err
	}
	app, err := schema.AppFromDict(dict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	output.Debug("loaded schema", "file", d.Name, "app", app.Key, "modules", countModules(app))
	return app, nil
}

// Load reads and builds the app schema at path.
func Load(path string, stdin io.Reader) (*schema.AppSchema, error) {
	doc, err := Read(path, stdin)
	if err != nil {
		return nil, err
	}
	return doc.App()
}

func countModules(app *schema.AppSchema) int {
	n := 0
	schema.WalkModules(app, func(*schema.ModuleSpec, schema.Container) { n++ })
	return n
}
