package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/carbonlog/carbon/internal/tracker"
)

// Printer writes styled CLI output. Commands take one so tests can capture
// what they print.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Printf writes formatted content
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// Header prints a command header followed by a blank line
func (p *Printer) Header(h *Header) {
	p.Println(h.SetWidth(p.width).Render())
	p.Newline()
}

// Result prints a result box
func (p *Printer) Result(r *Result) {
	p.Println(r.SetWidth(p.width).Render())
}

// Banner prints a status banner sized to its text
func (p *Printer) Banner(text string, sev tracker.Severity) {
	p.Println(RenderBanner(text, sev, 0))
}
