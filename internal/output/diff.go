package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"

	"github.com/tctrl/cli/internal/schema"
)

// DiffOptions controls DiffNodes.
type DiffOptions struct {
	// FromName and ToName label the two sides in the report.
	FromName string
	ToName   string

	// Color enables dyff's table styling.
	Color bool
}

// DiffResult is a rendered schema comparison.
type DiffResult struct {
	// Changes is the number of differences dyff found.
	Changes int

	// Report is the human-readable report, empty when there are no changes.
	Report string
}

// HasChanges reports whether any difference was found.
func (r DiffResult) HasChanges() bool {
	return r.Changes > 0
}

// DiffNodes compares the clean views of two nodes with dyff and renders the
// differences by document path.
func DiffNodes(from, to schema.Node, opts DiffOptions) (DiffResult, error) {
	fromYAML, err := MarshalNode(from, FormatYAML)
	if err != nil {
		return DiffResult{}, fmt.Errorf("serializing %s: %w", opts.FromName, err)
	}
	toYAML, err := MarshalNode(to, FormatYAML)
	if err != nil {
		return DiffResult{}, fmt.Errorf("serializing %s: %w", opts.ToName, err)
	}
	return DiffYAML(fromYAML, toYAML, opts)
}

// DiffYAML compares two YAML documents with dyff.
func DiffYAML(from, to []byte, opts DiffOptions) (DiffResult, error) {
	fromInput, err := parseYAMLInput(opts.FromName, from)
	if err != nil {
		return DiffResult{}, fmt.Errorf("parsing %s: %w", opts.FromName, err)
	}
	toInput, err := parseYAMLInput(opts.ToName, to)
	if err != nil {
		return DiffResult{}, fmt.Errorf("parsing %s: %w", opts.ToName, err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return DiffResult{}, fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return DiffResult{}, nil
	}

	rendered, err := renderDyffReport(report, opts.Color)
	if err != nil {
		return DiffResult{}, err
	}
	return DiffResult{Changes: len(report.Diffs), Report: rendered}, nil
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(&buf); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
