package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/chrisns/gfilter-cnc/internal/status"
)

// PrintError prints an error message to stderr and returns the general
// failure exit code.
func PrintError(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// Reporter accumulates the per-line status stream: every non-OK kind is
// printed immediately, and a one-line summary is available once the run
// finishes.
type Reporter struct {
	w          io.Writer
	lineNo     int
	errorCount int
}

// NewReporter returns a Reporter that writes non-OK lines to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report implements pipeline.Reporter: OK lines are counted silently,
// anything else is printed as "line N: KIND: <line text>".
func (r *Reporter) Report(kind status.Kind, line string) {
	r.lineNo++
	if kind == status.OK {
		return
	}
	r.errorCount++
	fmt.Fprintf(r.w, "line %d: %s: %s\n", r.lineNo, kind, line)
}

// Summary returns a one-line count of lines processed and flagged, or
// the empty string if every line reported OK.
func (r *Reporter) Summary() string {
	if r.errorCount == 0 {
		return ""
	}
	return fmt.Sprintf("%s of %s line(s) reported a non-OK status\n",
		FormatNumber(r.errorCount), FormatNumber(r.lineNo))
}
