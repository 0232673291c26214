package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/carbonlog/carbon/internal/tracker"
)

// Color palette for CLI output
var (
	PrimaryColor = lipgloss.Color("#2E8B57") // Sea green - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	InfoColor    = lipgloss.Color("#5DADE2") // Blue - informational banners
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles for CLI output
var (
	// HeaderTitleStyle is for the command title (e.g., "LOG APPLIANCE")
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				PaddingLeft(2)

	// HeaderCommandStyle is for the command path (e.g., "carbon log appliance")
	HeaderCommandStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamKeyStyle is for parameter keys (e.g., "Server:")
	HeaderParamKeyStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamValueStyle is for parameter values
	HeaderParamValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// SuccessTitleStyle is for the success result title
	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	// ErrorTitleStyle is for the error result title
	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// ErrorMessageStyle is for error message text
	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	// ResultKeyStyle is for result detail keys
	ResultKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(18)

	// ResultValueStyle is for result detail values
	ResultValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// TroubleshootingItemStyle is for troubleshooting lines
	TroubleshootingItemStyle = lipgloss.NewStyle().
					Foreground(MutedColor)
)

// Result markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "⚠"
	InfoMarker    = "ℹ"
)

// SeverityColor maps a banner severity to its color
func SeverityColor(sev tracker.Severity) lipgloss.Color {
	switch sev {
	case tracker.SeveritySuccess:
		return SuccessColor
	case tracker.SeverityDanger:
		return ErrorColor
	case tracker.SeverityWarning:
		return WarningColor
	default:
		return InfoColor
	}
}

// SeverityMarker maps a banner severity to its marker
func SeverityMarker(sev tracker.Severity) string {
	switch sev {
	case tracker.SeveritySuccess:
		return SuccessMarker
	case tracker.SeverityDanger:
		return FailureMarker
	case tracker.SeverityWarning:
		return WarningMarker
	default:
		return InfoMarker
	}
}

// BannerStyle returns the bordered alert style for a severity
func BannerStyle(sev tracker.Severity, width int) lipgloss.Style {
	color := SeverityColor(sev)
	style := lipgloss.NewStyle().
		Foreground(color).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style
}

// RenderBanner renders a status banner. width 0 sizes the banner to its text.
func RenderBanner(text string, sev tracker.Severity, width int) string {
	return BannerStyle(sev, width).Render(SeverityMarker(sev) + " " + text)
}

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether stdin is interactive
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
