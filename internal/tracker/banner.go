package tracker

import "strings"

// Severity is the styling of a status banner
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity normalizes case; unknown values read as info
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeveritySuccess:
		return SeveritySuccess
	case SeverityDanger:
		return SeverityDanger
	case SeverityWarning:
		return SeverityWarning
	}
	return SeverityInfo
}

// Banner is one status message. Seq identifies it for its clear timer.
type Banner struct {
	Text     string
	Severity Severity
	Seq      uint64
}

// MessageBox holds at most one banner. Each Show replaces the previous
// banner; a clear only succeeds for the banner it was scheduled for.
type MessageBox struct {
	current Banner
	visible bool
	seq     uint64
}

// Show replaces the current banner and returns it
func (b *MessageBox) Show(text string, sev Severity) Banner {
	b.seq++
	b.current = Banner{Text: text, Severity: sev, Seq: b.seq}
	b.visible = true
	return b.current
}

// Clear hides the banner if seq is still the one showing. Stale clears
// return false and change nothing.
func (b *MessageBox) Clear(seq uint64) bool {
	if !b.visible || b.current.Seq != seq {
		return false
	}
	b.visible = false
	b.current = Banner{}
	return true
}

// Reset hides whatever is showing
func (b *MessageBox) Reset() {
	b.visible = false
	b.current = Banner{}
}

// Current returns the visible banner
func (b MessageBox) Current() (Banner, bool) {
	return b.current, b.visible
}
