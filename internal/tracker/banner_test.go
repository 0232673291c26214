package tracker

import "testing"

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"success", SeveritySuccess},
		{"Danger", SeverityDanger},
		{"WARNING", SeverityWarning},
		{"info", SeverityInfo},
		{"", SeverityInfo},
		{"primary", SeverityInfo},
	}
	for _, tt := range tests {
		if got := ParseSeverity(tt.in); got != tt.want {
			t.Errorf("ParseSeverity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestMessageBox_OverlappingClears checks that a stale timer does not clear
// a newer banner
func TestMessageBox_OverlappingClears(t *testing.T) {
	var box MessageBox

	first := box.Show("Saved", SeveritySuccess)
	second := box.Show("Error: nope", SeverityDanger)

	if got, ok := box.Current(); !ok || got.Text != "Error: nope" {
		t.Fatalf("Current() = %+v, %v, want second banner", got, ok)
	}

	if box.Clear(first.Seq) {
		t.Error("Clear(first) should be a no-op")
	}
	if _, ok := box.Current(); !ok {
		t.Error("second banner cleared by first timer")
	}

	if !box.Clear(second.Seq) {
		t.Error("Clear(second) should clear")
	}
	if _, ok := box.Current(); ok {
		t.Error("banner still visible after clear")
	}
	if box.Clear(second.Seq) {
		t.Error("second Clear on empty box should be a no-op")
	}
}

func TestGeneration(t *testing.T) {
	var g Generation
	a := g.Next()
	b := g.Next()
	if g.IsCurrent(a) {
		t.Error("older generation reported current")
	}
	if !g.IsCurrent(b) {
		t.Error("latest generation not current")
	}
	g.Invalidate()
	if g.IsCurrent(b) {
		t.Error("generation current after Invalidate")
	}
}
