// Package pipeline wires the per-line transformer stages into the single
// streaming pass original_source/gfilter.c:main runs: parse, normalize to
// millimeters and absolute coordinates, apply the laser or drag-knife
// transform, then convert each resulting block back to the output units
// and distance mode and print it.
package pipeline

import (
	"io"
	"strings"

	"github.com/chrisns/gfilter-cnc/internal/block"
	"github.com/chrisns/gfilter-cnc/internal/cleanup"
	"github.com/chrisns/gfilter-cnc/internal/distance"
	"github.com/chrisns/gfilter-cnc/internal/drag"
	"github.com/chrisns/gfilter-cnc/internal/gcodeio"
	"github.com/chrisns/gfilter-cnc/internal/laser"
	"github.com/chrisns/gfilter-cnc/internal/parser"
	"github.com/chrisns/gfilter-cnc/internal/printer"
	"github.com/chrisns/gfilter-cnc/internal/status"
	"github.com/chrisns/gfilter-cnc/internal/units"
)

// Mode selects which kinematics transform runs between toabs and fromabs.
type Mode int

const (
	ModeLaser Mode = iota
	ModeDrag
)

// Pipeline holds every transformer stage's running shadow state for one
// input stream. It is not safe for concurrent use; each input stream gets
// its own Pipeline.
type Pipeline struct {
	mode Mode

	toMM    *units.ToMMState
	toAbs   *distance.ToAbsState
	laser   *laser.State
	drag    *drag.State
	fromAbs *distance.FromAbsState
	fromMM  *units.FromMMState
	cleanup *block.Shadow
}

// New builds a Pipeline for the given mode. param is the laser
// acceleration in mm/s^2 (ModeLaser) or the blade offset in mm
// (ModeDrag); angleDeg is the maximum/minimum deflection angle, in
// degrees, that switches between a continuous curve and an inserted
// lead-in/lead-out or pivot arc.
func New(mode Mode, param, angleDeg float64) *Pipeline {
	p := &Pipeline{
		mode:    mode,
		toMM:    units.NewToMMState(),
		toAbs:   distance.NewToAbsState(),
		fromAbs: distance.NewFromAbsState(),
		fromMM:  units.NewFromMMState(),
		cleanup: cleanup.NewState(),
	}
	switch mode {
	case ModeLaser:
		p.laser = laser.NewState(param, angleDeg)
	case ModeDrag:
		p.drag = drag.NewState(param, 0, angleDeg)
	}
	return p
}

// ProcessLine runs one already-cleaned (uppercased, comment-stripped)
// G-code line through the full stage pipeline and returns the text of
// the zero or more output lines it expands to. perr reports a
// recoverable parse error (the line is discarded, nothing is emitted);
// gerr reports a geometry contract violation, which is fatal.
func (p *Pipeline) ProcessLine(line string) (out []string, perr *status.Error, gerr *status.GeometryError) {
	blk, perr := parser.ParseLine(line)
	if perr != nil {
		return nil, perr, nil
	}

	units.ToMM(p.toMM, blk)
	distance.ToAbs(p.toAbs, blk)

	var blocks []block.ParserBlock
	switch p.mode {
	case ModeLaser:
		blocks, gerr = laser.Transform(p.laser, blk)
	case ModeDrag:
		blocks, gerr = drag.Transform(p.drag, blk)
	}
	if gerr != nil {
		return nil, nil, gerr
	}

	out = make([]string, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]
		distance.FromAbs(p.fromAbs, b)
		units.FromMM(p.fromMM, b)
		cleanup.Cleanup(p.cleanup, b)
		out = append(out, printer.Render(b))
	}
	return out, nil, nil
}

// Reporter receives one notification per input line: kind is status.OK
// for lines that produced output normally. Implementations typically
// print non-OK kinds to stderr and stay silent on OK, per the status
// stream described in spec.md §7.
type Reporter func(kind status.Kind, line string)

// Run streams r's G-code lines through the pipeline and writes the
// result to w, reporting one status per input line via report. It
// returns the first geometry error encountered, which aborts the run
// the same way original_source/gfilter.c's geometry assertions abort
// the process — everything written to w before the error stands.
func Run(r io.Reader, w io.Writer, p *Pipeline, report Reporter) error {
	lr := gcodeio.NewLineReader(r)
	lw := gcodeio.NewWriter(w)

	for {
		line, overflow, err := lr.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if overflow {
			report(status.Overflow, line)
			continue
		}

		if line == "" {
			report(status.OK, line)
			if werr := lw.WriteLine(""); werr != nil {
				return werr
			}
			continue
		}

		if strings.HasPrefix(line, "$") {
			report(status.OK, line)
			if werr := lw.WriteLine(line); werr != nil {
				return werr
			}
			continue
		}

		out, perr, gerr := p.ProcessLine(line)
		if gerr != nil {
			return gerr
		}
		if perr != nil {
			report(perr.Kind, line)
			continue
		}

		report(status.OK, line)
		for _, text := range out {
			if werr := lw.WriteLine(text); werr != nil {
				return werr
			}
		}
	}
}
