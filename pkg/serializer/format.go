package serializer

import (
	"path/filepath"
	"strings"
)

// Format identifies an output encoding.
type Format string

const (
	// FormatJSON is indented JSON, the default and the build-step contract.
	FormatJSON Format = "json"

	// FormatYAML is YAML output for human inspection.
	FormatYAML Format = "yaml"
)

// StdoutPath is the special output path indicating stdout.
const StdoutPath = "-"

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return false
	}
	return true
}

// SupportedFormats returns the names of all supported formats.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML)}
}

// FormatFromPath guesses the format from a file extension.
// Unrecognized extensions default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
