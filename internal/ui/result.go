package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result is a result box (success, failure, or warning)
type Result struct {
	Type    ResultType // Success, failure, or warning
	Title   string     // e.g., "Food logged successfully!"
	Details []Param    // Labeled details in display order
	Error   error      // Error (for failure results)
	Hint    string     // Multi-line troubleshooting text (for failure results)
	Width   int        // Terminal width
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Param) *Result {
	return &Result{Type: ResultSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, hint string) *Result {
	return &Result{Type: ResultFailure, Title: title, Error: err, Hint: hint, Width: GetTerminalWidth()}
}

// NewWarningResult creates a warning result box
func NewWarningResult(title string, details ...Param) *Result {
	return &Result{Type: ResultWarning, Title: title, Details: details, Width: GetTerminalWidth()}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail appends a detail line
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Param{Key: key, Value: value})
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := max(r.Width, MinTerminalWidth)

	var (
		color lipgloss.Color
		title string
	)
	switch r.Type {
	case ResultFailure:
		color = ErrorColor
		title = ErrorTitleStyle.Render(fmt.Sprintf("%s  FAILED  ─  %s", FailureMarker, r.Title))
	case ResultWarning:
		color = WarningColor
		title = lipgloss.NewStyle().Foreground(WarningColor).Bold(true).
			Render(fmt.Sprintf("%s  WARNING  ─  %s", WarningMarker, r.Title))
	default:
		color = SuccessColor
		title = SuccessTitleStyle.Render(fmt.Sprintf("%s  SUCCESS  ─  %s", SuccessMarker, r.Title))
	}

	lines := []string{title}

	if len(r.Details) > 0 {
		lines = append(lines, "")
		for _, d := range r.Details {
			lines = append(lines, ResultKeyStyle.Render(d.Key+":")+" "+ResultValueStyle.Render(d.Value))
		}
	}

	if r.Error != nil {
		lines = append(lines, "", ErrorMessageStyle.Render("Error: "+r.Error.Error()))
	}

	if r.Hint != "" {
		lines = append(lines, "")
		for _, line := range strings.Split(r.Hint, "\n") {
			lines = append(lines, TroubleshootingItemStyle.Render(line))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}
