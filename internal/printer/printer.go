// Package printer implements the final printing stage (spec.md §4.9): it
// renders a ParserBlock's surviving words and modal-group commands back
// into G-code text, in the same word and group order as
// original_source/gcode.c:gc_print_line, delegating number formatting to
// github.com/256dpi/gcode the same way the teacher's internal/writer does.
package printer

import (
	"github.com/256dpi/gcode"

	"github.com/chrisns/gfilter-cnc/internal/block"
)

// Render builds the G-code text for blk's surviving words and commands.
func Render(blk *block.ParserBlock) string {
	line := gcode.Line{Codes: buildCodes(blk)}
	return line.String()
}

func buildCodes(blk *block.ParserBlock) []gcode.GCode {
	var codes []gcode.GCode

	if blk.HasValue(block.WordF) {
		codes = append(codes, gcode.GCode{Letter: "F", Value: blk.Values.F})
	}
	if blk.HasValue(block.WordI) {
		codes = append(codes, gcode.GCode{Letter: "I", Value: blk.Values.IJK[0]})
	}
	if blk.HasValue(block.WordJ) {
		codes = append(codes, gcode.GCode{Letter: "J", Value: blk.Values.IJK[1]})
	}
	if blk.HasValue(block.WordK) {
		codes = append(codes, gcode.GCode{Letter: "K", Value: blk.Values.IJK[2]})
	}
	if blk.HasValue(block.WordL) {
		codes = append(codes, gcode.GCode{Letter: "L", Value: float64(blk.Values.L)})
	}
	if blk.HasValue(block.WordN) {
		codes = append(codes, gcode.GCode{Letter: "N", Value: float64(blk.Values.N)})
	}
	if blk.HasValue(block.WordP) {
		codes = append(codes, gcode.GCode{Letter: "P", Value: blk.Values.P})
	}
	if blk.HasValue(block.WordR) {
		codes = append(codes, gcode.GCode{Letter: "R", Value: blk.Values.R})
	}
	if blk.HasValue(block.WordS) {
		codes = append(codes, gcode.GCode{Letter: "S", Value: blk.Values.S})
	}
	if blk.HasValue(block.WordT) {
		codes = append(codes, gcode.GCode{Letter: "T", Value: float64(blk.Values.T)})
	}
	if blk.HasValue(block.WordX) {
		codes = append(codes, gcode.GCode{Letter: "X", Value: blk.Values.XYZ[0]})
	}
	if blk.HasValue(block.WordY) {
		codes = append(codes, gcode.GCode{Letter: "Y", Value: blk.Values.XYZ[1]})
	}
	if blk.HasValue(block.WordZ) {
		codes = append(codes, gcode.GCode{Letter: "Z", Value: blk.Values.XYZ[2]})
	}

	if blk.HasCommand(block.G0) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: nonModalValue(blk.NonModalCommand)})
	}
	if blk.HasCommand(block.G1) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: motionValue(blk.Modal.Motion)})
	}
	if blk.HasCommand(block.G2) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: float64(17 + int(blk.Modal.PlaneSelect))})
	}
	if blk.HasCommand(block.G3) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: float64(90 + int(blk.Modal.Distance))})
	}
	if blk.HasCommand(block.G4) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: 91.1})
	}
	if blk.HasCommand(block.G5) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: float64(94 - int(blk.Modal.FeedRate))})
	}
	if blk.HasCommand(block.G6) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: float64(21 - int(blk.Modal.Units))})
	}
	if blk.HasCommand(block.G7) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: 40})
	}
	if blk.HasCommand(block.G8) {
		switch blk.Modal.ToolLength {
		case block.ToolLengthCancel:
			codes = append(codes, gcode.GCode{Letter: "G", Value: 49})
		case block.ToolLengthDynamic:
			codes = append(codes, gcode.GCode{Letter: "G", Value: 43.1})
		}
	}
	if blk.HasCommand(block.G12) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: float64(int(blk.Modal.CoordSelect) + 54)})
	}
	if blk.HasCommand(block.G13) {
		codes = append(codes, gcode.GCode{Letter: "G", Value: 61})
	}
	if blk.HasCommand(block.M4) {
		if blk.Modal.ProgramFlow == block.ProgramFlowPaused {
			codes = append(codes, gcode.GCode{Letter: "M", Value: 0})
		} else {
			codes = append(codes, gcode.GCode{Letter: "M", Value: float64(blk.Modal.ProgramFlow)})
		}
	}
	if blk.HasCommand(block.M7) {
		switch blk.Modal.Spindle {
		case block.SpindleCW:
			codes = append(codes, gcode.GCode{Letter: "M", Value: 3})
		case block.SpindleCCW:
			codes = append(codes, gcode.GCode{Letter: "M", Value: 4})
		case block.SpindleDisable:
			codes = append(codes, gcode.GCode{Letter: "M", Value: 5})
		}
	}
	if blk.HasCommand(block.M8) {
		if blk.Modal.Coolant&block.CoolantMist != 0 {
			codes = append(codes, gcode.GCode{Letter: "M", Value: 7})
		}
		if blk.Modal.Coolant&block.CoolantFlood != 0 {
			codes = append(codes, gcode.GCode{Letter: "M", Value: 8})
		}
		if blk.Modal.Coolant == 0 {
			codes = append(codes, gcode.GCode{Letter: "M", Value: 9})
		}
	}
	if blk.HasCommand(block.M9) {
		codes = append(codes, gcode.GCode{Letter: "M", Value: 56})
	}

	return codes
}

// nonModalValue renders a non-modal G0-group tag back into its G-code
// value, reversing parser.ParseLine's "+= mantissa" encoding for the .1
// variants (G28.1, G30.1, G92.1).
func nonModalValue(tag int) float64 {
	switch tag {
	case block.NonModalGoHome1Set:
		return 28.1
	case block.NonModalGoHome2Set:
		return 30.1
	case block.NonModalSetOffsetSet:
		return 92.1
	default:
		return float64(tag)
	}
}

// motionValue reverses parser.ParseLine's 138+mantissa/10 encoding for the
// G38.x probe commands back into their dotted G-code form.
func motionValue(m block.Motion) float64 {
	v := float64(m)
	if v > 100 {
		v = (v-138)/10 + 38
	}
	return v
}
