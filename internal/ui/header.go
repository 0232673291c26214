package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one labeled value in a command header. Params keep their order.
type Param struct {
	Key   string
	Value string
}

// Header is a command banner with title, command path and parameters
type Header struct {
	Title   string  // e.g., "LOG FOOD"
	Command string  // e.g., "carbon log food"
	Params  []Param // e.g., {"Server", "http://127.0.0.1:5000"}
	Width   int     // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params ...Param) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := max(h.Width, MinTerminalWidth)

	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))
	commandLine := HeaderCommandStyle.Render(h.Command)
	topSection := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	content := topSection
	if len(h.Params) > 0 {
		divider := lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Render(strings.Repeat("─", max(width-6, 10)))

		keyWidth := 0
		for _, p := range h.Params {
			keyWidth = max(keyWidth, len(p.Key)+1)
		}

		paramLines := make([]string, 0, len(h.Params))
		for _, p := range h.Params {
			keyStyled := HeaderParamKeyStyle.Render(padRight(p.Key+":", keyWidth))
			paramLines = append(paramLines, keyStyled+" "+HeaderParamValueStyle.Render(p.Value))
		}
		content = lipgloss.JoinVertical(lipgloss.Left, topSection, divider, strings.Join(paramLines, "\n"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
