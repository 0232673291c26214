package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/carbonlog/carbon/internal/activity"
)

// RenderShares renders each series' share of the range total as a bar
func RenderShares(d *activity.Data, width int) string {
	total := d.GrandTotal()
	barWidth := min(max(width-32, 20), 50)

	var b strings.Builder
	for _, name := range activity.Series {
		var sum float64
		for _, v := range d.Values(name) {
			sum += v
		}
		share := 0.0
		if total > 0 {
			share = sum / total
		}

		bar := progress.New(
			progress.WithSolidFill(string(activity.SeriesColors[name])),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)
		label := lipgloss.NewStyle().Width(10).Render(name)
		b.WriteString(fmt.Sprintf("  %s %s %5.1f%%  %8.2f kg\n", label, bar.ViewAs(share), share*100, sum))
	}
	b.WriteString(fmt.Sprintf("  %s %s %8.2f kg", lipgloss.NewStyle().Width(10).Render("Total"),
		strings.Repeat(" ", barWidth+7), total))
	return b.String()
}
