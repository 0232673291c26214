package activity

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func sampleData() *Data {
	return &Data{
		Dates:     []string{"2024-03-01", "2024-03-02"},
		Appliance: []float64{1.5, 0},
		Food:      []float64{2, 4},
		Transport: []float64{0.5, 6},
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr string
	}{
		{"valid", "2024-03-01", "2024-03-31", ""},
		{"same day", "2024-03-01", "2024-03-01", ""},
		{"missing start", "", "2024-03-31", MsgMissingDates},
		{"missing end", "2024-03-01", "  ", MsgMissingDates},
		{"bad format", "03/01/2024", "2024-03-31", "invalid start date"},
		{"reversed", "2024-04-01", "2024-03-01", MsgRangeOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRange(tt.start, tt.end)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateRange() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateRange() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if _, err := ValidateRange("", ""); !errors.Is(err, ErrMissingDates) {
		t.Errorf("ValidateRange(\"\", \"\") = %v, want ErrMissingDates", err)
	}
}

func TestLastDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	r := LastDays(7, now)
	if r.Start != "2024-03-04" || r.End != "2024-03-10" {
		t.Errorf("LastDays(7) = %+v", r)
	}
}

func TestData_Validate(t *testing.T) {
	if err := sampleData().Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := sampleData()
	bad.Food = bad.Food[:1]
	if err := bad.Validate(); err == nil {
		t.Error("Validate() should reject mismatched series")
	}

	empty := &Data{}
	if err := empty.Validate(); err != nil {
		t.Errorf("Validate() on empty data error = %v", err)
	}
	if !empty.Empty() {
		t.Error("Empty() = false for no dates")
	}
}

func TestData_Totals(t *testing.T) {
	d := sampleData()
	if got := d.Total(0); got != 4 {
		t.Errorf("Total(0) = %v, want 4", got)
	}
	if got := d.GrandTotal(); got != 14 {
		t.Errorf("GrandTotal() = %v, want 14", got)
	}
}

func TestData_CSV(t *testing.T) {
	got, err := sampleData().CSV()
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	want := "date,Appliance,Food,Transport,total\n" +
		"2024-03-01,1.5,2,0.5,4\n" +
		"2024-03-02,0,4,6,10\n"
	if got != want {
		t.Errorf("CSV() = %q, want %q", got, want)
	}
}

func TestSegments(t *testing.T) {
	d := sampleData()

	tests := []struct {
		index int
		want  []int
	}{
		{0, []int{3, 4, 1}},
		{1, []int{0, 8, 12}},
	}
	for _, tt := range tests {
		got := Segments(d, tt.index, 10, 20)
		sum := 0
		for j := range got {
			sum += got[j]
			if got[j] != tt.want[j] {
				t.Errorf("Segments(%d)[%d] = %d, want %d", tt.index, j, got[j], tt.want[j])
			}
		}
		if wantSum := int(d.Total(tt.index) / 10 * 20); sum != wantSum {
			t.Errorf("Segments(%d) sum = %d, want %d", tt.index, sum, wantSum)
		}
	}
}

func TestRender(t *testing.T) {
	out := Render(sampleData(), 60)
	for _, want := range []string{ChartTitle, AxisLabel, "2024-03-01", "2024-03-02", "10.00", "Transport"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}

	if got := Render(&Data{}, 60); got != "" {
		t.Errorf("Render(empty) = %q, want empty", got)
	}
}
