package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of range bounds and response dates
const DateLayout = "2006-01-02"

// Banner texts for the chart screen
const (
	MsgMissingDates = "Please select both start and end dates."
	MsgNoData       = "No data found for the selected range."
	MsgFetchFailed  = "An error occurred while retrieving data."
	MsgRangeOrder   = "Start date must be on or before end date."
)

// Series names in stacking order
var Series = []string{"Appliance", "Food", "Transport"}

// ErrMissingDates is returned by ValidateRange when either bound is empty
var ErrMissingDates = errors.New(MsgMissingDates)

// Data is the daily breakdown for a date range
type Data struct {
	Dates     []string  `json:"dates"`
	Appliance []float64 `json:"Appliance"`
	Food      []float64 `json:"Food"`
	Transport []float64 `json:"Transport"`
}

// Range is a validated inclusive date range
type Range struct {
	Start string
	End   string
}

// ValidateRange checks both bounds are present and well formed. Whitespace
// around either bound is ignored.
func ValidateRange(start, end string) (Range, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return Range{}, ErrMissingDates
	}

	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Range{}, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Range{}, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", end)
	}
	if s.After(e) {
		return Range{}, errors.New(MsgRangeOrder)
	}
	return Range{Start: start, End: end}, nil
}

// LastDays returns the range of n days ending today
func LastDays(n int, now time.Time) Range {
	if n < 1 {
		n = 1
	}
	return Range{
		Start: now.AddDate(0, 0, -(n - 1)).Format(DateLayout),
		End:   now.Format(DateLayout),
	}
}

// Validate checks that every series has one value per date
func (d *Data) Validate() error {
	for _, name := range Series {
		values := d.Values(name)
		if len(values) != len(d.Dates) {
			return fmt.Errorf("series %s has %d values for %d dates", name, len(values), len(d.Dates))
		}
	}
	return nil
}

// Empty reports whether the range had no logged activity
func (d *Data) Empty() bool {
	return d == nil || len(d.Dates) == 0
}

// Values returns the named series
func (d *Data) Values(series string) []float64 {
	switch series {
	case "Appliance":
		return d.Appliance
	case "Food":
		return d.Food
	case "Transport":
		return d.Transport
	}
	return nil
}

// Total is the stacked height of the bar at index i
func (d *Data) Total(i int) float64 {
	var sum float64
	for _, name := range Series {
		values := d.Values(name)
		if i < len(values) {
			sum += values[i]
		}
	}
	return sum
}

// GrandTotal sums every series over the range
func (d *Data) GrandTotal() float64 {
	var sum float64
	for i := range d.Dates {
		sum += d.Total(i)
	}
	return sum
}

// WriteCSV writes one row per date with a column per series and a total
func (d *Data) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"date"}, Series...)
	header = append(header, "total")
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, date := range d.Dates {
		row := []string{date}
		for _, name := range Series {
			row = append(row, formatKg(d.Values(name)[i]))
		}
		row = append(row, formatKg(d.Total(i)))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSV returns WriteCSV output as a string
func (d *Data) CSV() (string, error) {
	var b strings.Builder
	if err := d.WriteCSV(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
