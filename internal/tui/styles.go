package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/carbonlog/carbon/internal/tracker"
	"github.com/carbonlog/carbon/internal/ui"
	"github.com/carbonlog/carbon/internal/version"
)

// AppName is shown in the container header
const AppName = "CARBON FOOTPRINT TRACKER"

// Default size used until the first tea.WindowSizeMsg
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#2E8B57") // Sea green
	SecondaryColor = lipgloss.Color("#6C757D") // Slate, item-type buttons
	HighlightColor = lipgloss.Color("#43BF6D") // Green
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#2E8B57") // Same as primary
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ReadOnlyStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// ColumnStyle frames the selection column
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1).
			MarginRight(2)

	// FocusedColumnStyle is ColumnStyle while the column has focus
	FocusedColumnStyle = ColumnStyle.
				BorderForeground(HighlightColor)
)

// buttonStyle returns the style for a selection column entry
func buttonStyle(style tracker.ButtonStyle, selected, back bool) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)

	switch {
	case back:
		base = base.Foreground(SubtleColor).Italic(true)
	case style == tracker.StylePrimary:
		base = base.Foreground(PrimaryColor).Bold(true)
	default:
		base = base.Foreground(TextColor)
	}

	if selected {
		base = base.Reverse(true)
	}
	return base
}

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render(text)
}

// RenderBanner renders the current banner, or nothing
func RenderBanner(box *tracker.MessageBox, width int) string {
	if box == nil {
		return ""
	}
	b, ok := box.Current()
	if !ok {
		return ""
	}
	return ui.RenderBanner(b.Text, b.Severity, width)
}

// BuildHeaderContent creates header content with app name and session info
func BuildHeaderContent(who string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + version.Version)

	if who == "" {
		return left
	}
	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(who)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps every screen: header, content, and a
// footer with the screen's help, inside a bordered full-terminal panel.
func RenderApplicationContainer(content, footerText, who string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= 0 {
		terminalWidth = defaultWidth
	}
	if terminalHeight <= 0 {
		terminalHeight = defaultHeight
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Foreground(SubtleColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(1, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(who)),
		contentStyle.Render(content),
		footerStyle.Render(footerText),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}
