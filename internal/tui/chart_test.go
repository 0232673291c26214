package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/carbonlog/carbon/internal/activity"
	"github.com/carbonlog/carbon/internal/config"
	"github.com/carbonlog/carbon/internal/tracker"
)

func sampleActivity() *activity.Data {
	return &activity.Data{
		Dates:     []string{"2024-03-08", "2024-03-09"},
		Appliance: []float64{1.5, 0.5},
		Food:      []float64{2, 1},
		Transport: []float64{0, 4.25},
	}
}

func TestChart_PrefillsLastWeek(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, ScreenChart)

	c := m.ChartModel
	if got := c.inputs[0].Value(); got != "2024-03-03" {
		t.Errorf("start = %q, want 2024-03-03", got)
	}
	if got := c.inputs[1].Value(); got != "2024-03-09" {
		t.Errorf("end = %q, want 2024-03-09", got)
	}
}

func TestChart_LoadSuccess(t *testing.T) {
	fb := &fakeBackend{activity: sampleActivity()}
	m := newTestApp(t, fb, ScreenChart)

	m = press(t, m, keyEnter)

	if len(fb.ranges) != 1 {
		t.Fatalf("requests = %d, want 1", len(fb.ranges))
	}
	want := activity.Range{Start: "2024-03-03", End: "2024-03-09"}
	if fb.ranges[0] != want {
		t.Errorf("range = %+v, want %+v", fb.ranges[0], want)
	}
	if m.ChartModel.data == nil {
		t.Fatal("chart not shown")
	}
	if _, ok := m.Banner(); ok {
		t.Error("banner shown after a successful load")
	}
	if !strings.Contains(m.ChartModel.viewport.View(), activity.ChartTitle) {
		t.Error("chart title missing from viewport")
	}
}

func TestChart_LoadOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		fb      *fakeBackend
		text    string
		sev     tracker.Severity
		fetched bool
	}{
		{
			name:    "empty range",
			fb:      &fakeBackend{activity: &activity.Data{}},
			text:    activity.MsgNoData,
			sev:     tracker.SeverityInfo,
			fetched: true,
		},
		{
			name:    "fetch error",
			fb:      &fakeBackend{activityErr: errors.New("500")},
			text:    activity.MsgFetchFailed,
			sev:     tracker.SeverityDanger,
			fetched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestApp(t, tt.fb, ScreenChart)
			// an existing chart is removed by the failed load
			m.ChartModel.setData(sampleActivity())

			m = press(t, m, keyEnter)

			if (len(tt.fb.ranges) > 0) != tt.fetched {
				t.Errorf("fetched = %v, want %v", len(tt.fb.ranges) > 0, tt.fetched)
			}
			wantBanner(t, m, tt.text, tt.sev)
			if m.ChartModel.data != nil {
				t.Error("old chart still shown")
			}
		})
	}
}

func TestChart_MissingDates(t *testing.T) {
	fb := &fakeBackend{activity: sampleActivity()}
	m := newTestApp(t, fb, ScreenChart)
	m.ChartModel.inputs[1].SetValue("")

	m = press(t, m, keyEnter)

	if len(fb.ranges) != 0 {
		t.Error("fetched with a missing date")
	}
	wantBanner(t, m, activity.MsgMissingDates, tracker.SeverityWarning)
}

func TestChart_ReversedRange(t *testing.T) {
	fb := &fakeBackend{}
	m := newTestApp(t, fb, ScreenChart)
	m.ChartModel.inputs[0].SetValue("2024-03-10")

	m = press(t, m, keyEnter)

	if len(fb.ranges) != 0 {
		t.Error("fetched a reversed range")
	}
	wantBanner(t, m, activity.MsgRangeOrder, tracker.SeverityWarning)
}

func TestChart_StaleResponseDropped(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, ScreenChart)
	m.sh.chartGen.Next()
	stale := m.sh.chartGen.Current()
	m.sh.chartGen.Next()

	m = send(t, m, activityLoadedMsg{gen: stale, data: sampleActivity()})

	if m.ChartModel.data != nil {
		t.Error("stale response rendered")
	}
}

func TestChart_CopyCSV(t *testing.T) {
	var copied string
	settings := config.NewSettings()
	m := NewAppModel(Options{
		Backend:     &fakeBackend{activity: sampleActivity()},
		Settings:    settings,
		StartScreen: ScreenChart,
		Now:         func() time.Time { return testNow },
		CopyToClipboard: func(s string) error {
			copied = s
			return nil
		},
	})

	m = press(t, m, keyCopy)
	wantBanner(t, m, "Load a chart before copying.", tracker.SeverityInfo)

	m = press(t, m, keyEnter, keyCopy)
	if !strings.HasPrefix(copied, "date,Appliance,Food,Transport,total") {
		t.Errorf("copied = %q, want CSV with header", copied)
	}
	wantBanner(t, m, "Chart data copied as CSV.", tracker.SeveritySuccess)
}
