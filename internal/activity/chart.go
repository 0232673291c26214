package activity

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Chart labels
const (
	ChartTitle = "Daily Carbon Footprint Breakdown"
	AxisLabel  = "CO₂ (kg)"
)

const barRune = "█"

// SeriesColors match the web dashboard: blue, green, red
var SeriesColors = map[string]lipgloss.Color{
	"Appliance": lipgloss.Color("#007BFF"),
	"Food":      lipgloss.Color("#28A745"),
	"Transport": lipgloss.Color("#DC3545"),
}

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true)
	axisStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Render draws one horizontal stacked bar per date within width columns.
// Bars scale against the largest daily total.
func Render(d *Data, width int) string {
	if d.Empty() {
		return ""
	}

	const dateWidth = 10
	valueWidth := 0
	var maxTotal float64
	for i := range d.Dates {
		t := d.Total(i)
		maxTotal = math.Max(maxTotal, t)
		valueWidth = max(valueWidth, len(fmt.Sprintf("%.2f", t)))
	}

	barWidth := width - dateWidth - valueWidth - 2
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	b.WriteString(chartTitleStyle.Render(ChartTitle))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(fmt.Sprintf("%-*s %s", dateWidth, "Date", AxisLabel)))
	b.WriteString("\n")

	for i, date := range d.Dates {
		b.WriteString(fmt.Sprintf("%-*s ", dateWidth, date))
		b.WriteString(renderBar(d, i, maxTotal, barWidth))
		b.WriteString(fmt.Sprintf(" %*.2f\n", valueWidth, d.Total(i)))
	}

	b.WriteString(renderLegend())
	return b.String()
}

// Segments returns the column count of each series in bar i. Boundaries are
// rounded on the running total so the segments always add up to the
// rounded bar length.
func Segments(d *Data, i int, maxTotal float64, barWidth int) []int {
	segs := make([]int, len(Series))
	if maxTotal <= 0 {
		return segs
	}

	var cum float64
	prev := 0
	for j, name := range Series {
		v := d.Values(name)[i]
		if v > 0 {
			cum += v
		}
		end := int(math.Round(cum / maxTotal * float64(barWidth)))
		segs[j] = end - prev
		prev = end
	}
	return segs
}

func renderBar(d *Data, i int, maxTotal float64, barWidth int) string {
	segs := Segments(d, i, maxTotal, barWidth)

	var b strings.Builder
	used := 0
	for j, name := range Series {
		if segs[j] <= 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(SeriesColors[name])
		b.WriteString(style.Render(strings.Repeat(barRune, segs[j])))
		used += segs[j]
	}
	if used < barWidth {
		b.WriteString(strings.Repeat(" ", barWidth-used))
	}
	return b.String()
}

func renderLegend() string {
	parts := make([]string, 0, len(Series))
	for _, name := range Series {
		swatch := lipgloss.NewStyle().Foreground(SeriesColors[name]).Render(barRune)
		parts = append(parts, swatch+" "+name)
	}
	return axisStyle.Render("Legend: ") + strings.Join(parts, "  ")
}
