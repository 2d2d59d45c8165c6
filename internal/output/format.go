package output

import "strings"

// Format specifies how a schema document is written.
type Format string

const (
	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"

	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses a format name, ignoring case. "yml" is accepted for
// YAML. The second result is false for unknown names.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	default:
		return Format(s), false
	}
}

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{"yaml", "json"}
}

// FormatForPath picks a format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
