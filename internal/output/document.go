package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tctrl/cli/internal/schema"
)

// WriteNode writes the clean view of n to w in the given format. YAML is
// written with two-space indentation, JSON indented and newline-terminated.
func WriteNode(w io.Writer, n schema.Node, format Format) error {
	return writeDict(w, n.Dict(), format)
}

// MarshalNode returns the clean view of n encoded in the given format.
func MarshalNode(n schema.Node, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteNode(&buf, n, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteNodeFile writes n to path, creating parent directories.
func WriteNodeFile(path string, n schema.Node, format Format) error {
	data, err := MarshalNode(n, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeDict(w io.Writer, d schema.Dict, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(d); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML, "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(d); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}
