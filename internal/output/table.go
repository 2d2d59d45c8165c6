package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tctrl/cli/internal/schema"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	// Border is the border style.
	Border lipgloss.Border

	// BorderColor is the color for borders.
	BorderColor lipgloss.Color

	// HeaderStyle is the style for header cells.
	HeaderStyle lipgloss.Style

	// CellStyle is the style for regular cells.
	CellStyle lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: ColorDimGray,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(ColorBlue),
		CellStyle:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// SetStyle sets the table style.
func (t *Table) SetStyle(style TableStyle) *Table {
	t.style = style
	return t
}

// String renders the table as a string.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// ParamTable lists the params of every module below root, one row per
// param, in walk order.
func ParamTable(root schema.Container) *Table {
	t := NewTable("PATH", "TYPE", "GROUP", "RANGE", "DEFAULT", "VALUE")
	if m, ok := root.(*schema.ModuleSpec); ok {
		addParamRows(t, m)
	}
	schema.WalkModules(root, func(m *schema.ModuleSpec, _ schema.Container) {
		addParamRows(t, m)
	})
	return t
}

func addParamRows(t *Table, m *schema.ModuleSpec) {
	for _, p := range m.Params {
		typeName := p.Type.String()
		if p.Type == schema.ParamTypeOther && p.OtherType != "" {
			typeName = p.OtherType
		}
		if p.Type.IsVector() {
			typeName = fmt.Sprintf("%s[%d]", typeName, p.Len())
		}
		value := formatValue(p.Value)
		if p.ValueIndex != nil && value == "" {
			value = "#" + strconv.Itoa(*p.ValueIndex)
		}
		t.Row(p.Path, typeName, p.Group, formatRange(p.MinLimit, p.MaxLimit), formatValue(p.DefaultVal), value)
	}
}

func formatRange(lo, hi *float64) string {
	if lo == nil && hi == nil {
		return ""
	}
	bound := func(f *float64) string {
		if f == nil {
			return ""
		}
		return strconv.FormatFloat(*f, 'g', -1, 64)
	}
	return bound(lo) + ".." + bound(hi)
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
