package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/carbonlog/carbon/internal/tracker"
)

// CoefficientHeader names the coefficient column for a kind
func CoefficientHeader(kind tracker.Kind) string {
	switch kind {
	case tracker.KindAppliance:
		return "Wattage (kWh)"
	case tracker.KindTransport:
		return "CO₂e per mile"
	default:
		return "CO₂e per kg"
	}
}

// RenderItems renders reference items as a table. Transport rows carry
// the fuel type.
func RenderItems(kind tracker.Kind, items []tracker.ReferenceItem) string {
	headers := []string{"#", "Name"}
	if kind == tracker.KindTransport {
		headers = append(headers, "Fuel")
	}
	headers = append(headers, CoefficientHeader(kind))

	rows := make([][]string, 0, len(items))
	for i, item := range items {
		row := []string{strconv.Itoa(i + 1), item.Name}
		if kind == tracker.KindTransport {
			row = append(row, item.FuelType)
		}
		coef := "-"
		if item.HasCoefficient {
			coef = strconv.FormatFloat(item.Coefficient, 'f', -1, 64)
		}
		rows = append(rows, append(row, coef))
	}

	headerStyle := lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(TextColor).Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}
