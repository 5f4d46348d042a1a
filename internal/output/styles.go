package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: benchmark names, targets, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen marks target-independent circuits.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow marks native-gate circuits.
	ColorYellow = lipgloss.Color("220")

	// ColorMagenta marks mapped circuits.
	ColorMagenta = lipgloss.Color("213")

	// ColorBoldRed is used for failures (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (benchmark names, targets, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleFailure styles failed items.
	StyleFailure = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
)

// LevelStyle returns the style for an abstraction level name.
// Unknown names return an unstyled default.
func LevelStyle(level string) lipgloss.Style {
	switch level {
	case "alg":
		return lipgloss.NewStyle().Faint(true)
	case "indep":
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case "nativegates":
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case "mapped":
		return lipgloss.NewStyle().Foreground(ColorMagenta)
	default:
		return lipgloss.NewStyle()
	}
}

// minArtifactColumnWidth keeps the level suffix aligned across lines.
const minArtifactColumnWidth = 48

// FormatArtifactLine renders a written file path with a right-aligned,
// color-coded level suffix.
//
// Format: f:<path>  <level>
func FormatArtifactLine(path, level string) string {
	padding := minArtifactColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}
	return StyleDim.Render("f:") + StyleNoun.Render(path) + strings.Repeat(" ", padding) + LevelStyle(level).Render(level)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
