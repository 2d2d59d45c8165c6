package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tctrl/cli/internal/schema"
)

// Color palette. Never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: app keys, module paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for success marks and boolean params.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for choice params and warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorMagenta is used for vector params.
	ColorMagenta = lipgloss.Color("213")

	// ColorBlue is used for scalar numeric params and table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorRed is used for failures.
	ColorRed = lipgloss.Color("204")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (app keys, module paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleBold styles headings and module keys.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (tree guides, labels, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleFailed styles failure marks.
	StyleFailed = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
)

// ParamTypeStyle returns the style used to print a param type name.
func ParamTypeStyle(t schema.ParamType) lipgloss.Style {
	switch {
	case t.IsVector():
		return lipgloss.NewStyle().Foreground(ColorMagenta)
	case t.IsNumeric():
		return lipgloss.NewStyle().Foreground(ColorBlue)
	case t == schema.ParamTypeBool || t == schema.ParamTypeTrigger:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case t.HasOptions():
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorGreen).Render("✔") + " " + msg
}

// FormatFailure renders a red cross with a message.
func FormatFailure(msg string) string {
	return StyleFailed.Render("✘") + " " + msg
}
