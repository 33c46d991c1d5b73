package pipeline

import (
	"strings"
	"testing"

	"github.com/chrisns/gfilter-cnc/internal/status"
)

func TestProcessLineSimpleLaserMove(t *testing.T) {
	p := New(ModeLaser, 1000, 2)
	out, perr, gerr := p.ProcessLine("G1X10Y0F300S1")
	if perr != nil || gerr != nil {
		t.Fatalf("perr=%v gerr=%v", perr, gerr)
	}
	if len(out) != 1 {
		t.Fatalf("got %d lines, want 1: %v", len(out), out)
	}
	if !strings.Contains(out[0], "X10") {
		t.Errorf("got %q", out[0])
	}
}

func TestProcessLineBadCommandReportsParseError(t *testing.T) {
	p := New(ModeLaser, 1000, 2)
	out, perr, gerr := p.ProcessLine("G200")
	if perr == nil {
		t.Fatal("expected a parse error for an unsupported G-code")
	}
	if gerr != nil {
		t.Errorf("unexpected geometry error: %v", gerr)
	}
	if out != nil {
		t.Errorf("expected no output for a rejected line, got %v", out)
	}
	if perr.Kind != status.GcodeUnsupportedCommand {
		t.Errorf("kind = %v", perr.Kind)
	}
}

func TestProcessLineDragModeStripsSpindle(t *testing.T) {
	p := New(ModeDrag, 2, 2)
	out, perr, gerr := p.ProcessLine("G1X10Y0F300M3")
	if perr != nil || gerr != nil {
		t.Fatalf("perr=%v gerr=%v", perr, gerr)
	}
	for _, line := range out {
		if strings.Contains(line, "M3") {
			t.Errorf("expected spindle command stripped in drag mode, got %q", line)
		}
	}
}

func TestRunPassesThroughBlankAndSystemLines(t *testing.T) {
	p := New(ModeLaser, 1000, 2)
	var statuses []status.Kind
	report := func(kind status.Kind, line string) { statuses = append(statuses, kind) }

	in := strings.NewReader("\n$H\nG1 X10 Y0 F300 S1\n")
	var out strings.Builder
	if err := Run(in, &out, p, report); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\n$H\n") {
		t.Errorf("got %q, want blank line then system command passed through", got)
	}
	if len(statuses) != 3 {
		t.Errorf("got %d statuses, want 3: %v", len(statuses), statuses)
	}
}

func TestRunReportsOverflowAndContinues(t *testing.T) {
	p := New(ModeLaser, 1000, 2)
	var statuses []status.Kind
	report := func(kind status.Kind, line string) { statuses = append(statuses, kind) }

	long := "G1X" + strings.Repeat("1", 2000)
	in := strings.NewReader(long + "\nG1X10Y0F300S1\n")
	var out strings.Builder
	if err := Run(in, &out, p, report); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(statuses) != 2 || statuses[0] != status.Overflow {
		t.Errorf("statuses = %v, want [Overflow OK]", statuses)
	}
}
