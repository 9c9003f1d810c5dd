package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: file paths, asset types, pipeline ids.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "cache hit" / "ok" status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "cache miss" status and warnings.
	ColorYellow = lipgloss.Color("220")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark (✔).
	colorGreenCheck = lipgloss.Color("10")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// styleNoun styles identifiable nouns (file paths, asset types, pipeline ids).
	styleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// styleDim styles structural chrome (scope prefixes, separators, timestamps).
	styleDim = lipgloss.NewStyle().Faint(true)
)

// Cache status constants, used by FormatCacheLine.
const (
	StatusCacheHit  = "cache hit"
	StatusCacheMiss = "cache miss"
	statusFailed    = "failed"
)

// statusStyle returns the lipgloss style for a given status string.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCacheHit:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusCacheMiss:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minAssetColumnWidth is the minimum width for the asset path column before
// the status suffix. This ensures status words align consistently.
const minAssetColumnWidth = 48

// FormatCacheLine renders an asset identifier with a right-aligned,
// color-coded cache-status suffix.
//
// Format: a:<filePath>[<type>]  <status>
func FormatCacheLine(filePath, assetType, status string) string {
	path := fmt.Sprintf("%s[%s]", filePath, assetType)

	padding := minAssetColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	prefix := styleDim.Render("a:")
	styledPath := styleNoun.Render(path)
	styledStatus := statusStyle(status).Render(status)

	return prefix + styledPath + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatNotice renders a yellow arrow with a message for action-required output.
func FormatNotice(msg string) string {
	arrow := lipgloss.NewStyle().Foreground(ColorYellow).Render("▶")
	return arrow + " " + msg
}

// FormatPipelineID formats a pipeline id for display by replacing each ":"
// transformer-name separator with a dim " → " for readability.
//
// Example: "tsToJs:jsMin" → "tsToJs → jsMin"
func FormatPipelineID(id string) string {
	return strings.ReplaceAll(id, ":", " "+styleDim.Render("→")+" ")
}

// FormatChainLine renders a pipeline chain transition line.
//
// Format: ▸ <fromType> ⇒ <pipelineID>
//
// The bullet and fromType are cyan. The arrow and pipeline id are dim.
func FormatChainLine(fromType, pipelineID string) string {
	bullet := styleNoun.Render("▸")
	from := styleNoun.Render(fromType)
	arrow := styleDim.Render("⇒")
	styledID := styleDim.Render(FormatPipelineID(pipelineID))
	return bullet + " " + from + " " + arrow + " " + styledID
}

// FormatTerminalLine renders an asset that reached a terminal pipeline (no
// further chaining).
//
// Format: ▸ <type> (terminal)
func FormatTerminalLine(assetType string) string {
	bullet := lipgloss.NewStyle().Foreground(ColorYellow).Render("▸")
	detail := styleDim.Render("(terminal)")
	return bullet + " " + assetType + " " + detail
}

// detailColumnWidth is the alignment column for detail text in FormatCheck.
const detailColumnWidth = 34

// FormatCheck renders a validation check result with a green checkmark,
// label, and optional right-aligned detail text.
//
// Format: ✔ <label>                      <detail>
func FormatCheck(label, detail string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	result := check + " " + label

	if detail != "" {
		padding := detailColumnWidth - len(label)
		if padding < 2 {
			padding = 2
		}
		styledDetail := styleDim.Render(detail)
		result += strings.Repeat(" ", padding) + styledDetail
	}

	return result
}
