// Package output provides terminal output utilities for the tcore CLI.
package output

import "strings"

// ResultFormat specifies how the CLI renders a TransformationResult.
type ResultFormat string

const (
	// FormatJSON renders the result as JSON.
	FormatJSON ResultFormat = "json"

	// FormatSummary renders a short human-readable summary.
	FormatSummary ResultFormat = "summary"
)

// String returns the string representation of the result format.
func (f ResultFormat) String() string {
	return string(f)
}

// IsValid reports whether the result format is one tcore knows how to render.
func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// ParseResultFormat parses a string into a ResultFormat.
// Returns FormatSummary if the string is empty or unrecognized.
func ParseResultFormat(s string) ResultFormat {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "summary", "":
		return FormatSummary
	default:
		return FormatSummary
	}
}

// ValidResultFormats returns the valid result format strings, for flag help text.
func ValidResultFormats() []string {
	return []string{"summary", "json"}
}
