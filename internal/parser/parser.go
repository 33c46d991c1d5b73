// Package parser implements the modal-group-aware RS274/NGC block parser
// (spec.md §4.1), layered on top of github.com/256dpi/gcode's letter+float
// word tokenizer the same way the teacher's internal/gcode.ParseCommand
// layers application semantics on top of gcode.ParseLine.
package parser

import (
	"math"
	"strings"

	"github.com/256dpi/gcode"

	"github.com/chrisns/gfilter-cnc/internal/block"
	"github.com/chrisns/gfilter-cnc/internal/status"
)

// jogPrefix marks a Grbl jog command. Jog lines are parsed starting at
// offset 3 with motion forced to linear and feed-rate forced to
// per-minute, per spec.md §4.1.
const jogPrefix = "$J="

type axisCommand int

const (
	axisNone axisCommand = iota
	axisNonModal
	axisMotionMode
	axisToolLength
)

// ParseLine parses one already-uppercased, whitespace/comment-stripped
// line of G-code into a ParserBlock. Jog lines (prefixed "$J=") are parsed
// from offset 3.
func ParseLine(line string) (*block.ParserBlock, *status.Error) {
	blk := &block.ParserBlock{}
	text := line

	if strings.HasPrefix(line, jogPrefix) {
		text = line[len(jogPrefix):]
		blk.Modal.Motion = block.MotionLinear
		blk.Modal.FeedRate = block.FeedRatePerMinute
	}

	parsed, err := gcode.ParseLine(text)
	if err != nil {
		return nil, status.New(status.BadNumberFormat, line)
	}

	var axis axisCommand
	for _, code := range parsed.Codes {
		if len(code.Letter) == 0 {
			return nil, status.New(status.ExpectedCommandLetter, line)
		}

		var kind status.Kind
		switch code.Letter {
		case "G":
			kind = applyG(blk, code.Value, &axis)
		case "M":
			kind = applyM(blk, code.Value)
		default:
			kind = applyWord(blk, code.Letter, code.Value)
		}

		if kind != status.OK {
			return nil, status.New(kind, line)
		}
	}

	return blk, nil
}

// split breaks a word value into its integer part and two-digit mantissa,
// rounded to absorb floating-point noise, per spec.md §4.1.
func split(value float64) (intValue int, mantissa int) {
	whole := math.Trunc(value)
	intValue = int(whole)
	mantissa = int(math.Round(100 * (value - whole)))
	return
}

func applyG(blk *block.ParserBlock, value float64, axis *axisCommand) status.Kind {
	intValue, mantissa := split(value)

	var wordBit block.CommandWord

	switch intValue {
	case 10, 28, 30, 92:
		if mantissa == 0 { // the .1 variants don't count as axis commands
			if blk.HasCommand(block.G0) {
				return status.GcodeModalGroupViolation
			}
			if *axis != axisNone {
				return status.GcodeAxisCommandConflict
			}
			*axis = axisNonModal
		}
		fallthrough
	case 4, 53:
		wordBit = block.G0
		blk.NonModalCommand = intValue
		if intValue == 28 || intValue == 30 || intValue == 92 {
			if mantissa != 0 && mantissa != 10 {
				return status.GcodeUnsupportedCommand
			}
			blk.NonModalCommand += mantissa
			mantissa = 0
		}

	case 0, 1, 2, 3, 38:
		if blk.HasCommand(block.G1) {
			return status.GcodeModalGroupViolation
		}
		if *axis != axisNone {
			return status.GcodeAxisCommandConflict
		}
		*axis = axisMotionMode
		fallthrough
	case 80:
		wordBit = block.G1
		blk.Modal.Motion = block.Motion(intValue)
		if intValue == 38 {
			if mantissa != 20 && mantissa != 30 && mantissa != 40 && mantissa != 50 {
				return status.GcodeUnsupportedCommand
			}
			blk.Modal.Motion = block.Motion(138 + mantissa/10)
			mantissa = 0
		}

	case 17, 18, 19:
		wordBit = block.G2
		blk.Modal.PlaneSelect = block.PlaneSelect(intValue - 17)

	case 90, 91:
		if mantissa == 0 {
			wordBit = block.G3
			blk.Modal.Distance = block.Distance(intValue - 90)
		} else {
			wordBit = block.G4
			if mantissa != 10 || intValue == 90 {
				return status.GcodeUnsupportedCommand // G90.1 not supported
			}
			mantissa = 0
		}

	case 93, 94:
		wordBit = block.G5
		blk.Modal.FeedRate = block.FeedRateMode(94 - intValue)

	case 20, 21:
		wordBit = block.G6
		blk.Modal.Units = block.Units(21 - intValue)

	case 40:
		wordBit = block.G7

	case 43, 49:
		wordBit = block.G8
		if blk.HasCommand(block.G8) {
			return status.GcodeModalGroupViolation
		}
		if *axis != axisNone {
			return status.GcodeAxisCommandConflict
		}
		*axis = axisToolLength
		if intValue == 49 {
			blk.Modal.ToolLength = block.ToolLengthCancel
		} else if mantissa == 10 {
			blk.Modal.ToolLength = block.ToolLengthDynamic
		} else {
			return status.GcodeUnsupportedCommand
		}
		mantissa = 0

	case 54, 55, 56, 57, 58, 59:
		wordBit = block.G12
		blk.Modal.CoordSelect = block.CoordSelect(intValue - 54)

	case 61:
		wordBit = block.G13
		if mantissa != 0 {
			return status.GcodeUnsupportedCommand // G61.1 not supported
		}

	default:
		return status.GcodeUnsupportedCommand
	}

	if mantissa > 0 {
		return status.GcodeCommandValueNotInteger
	}
	if blk.HasCommand(wordBit) {
		return status.GcodeModalGroupViolation
	}
	blk.SetCommand(wordBit)
	return status.OK
}

func applyM(blk *block.ParserBlock, value float64) status.Kind {
	intValue, mantissa := split(value)
	if mantissa > 0 {
		return status.GcodeCommandValueNotInteger
	}

	var wordBit block.CommandWord

	switch intValue {
	case 0:
		wordBit = block.M4
		blk.Modal.ProgramFlow = block.ProgramFlowPaused
	case 1:
		return status.OK // optional stop: not supported, silently ignored
	case 2:
		wordBit = block.M4
		blk.Modal.ProgramFlow = block.ProgramFlowEnd
	case 30:
		wordBit = block.M4
		blk.Modal.ProgramFlow = block.ProgramFlowEndReset
	case 3:
		wordBit = block.M7
		blk.Modal.Spindle = block.SpindleCW
	case 4:
		wordBit = block.M7
		blk.Modal.Spindle = block.SpindleCCW
	case 5:
		wordBit = block.M7
		blk.Modal.Spindle = block.SpindleDisable
	case 7:
		wordBit = block.M8
		blk.Modal.Coolant |= block.CoolantMist
	case 8:
		wordBit = block.M8
		blk.Modal.Coolant |= block.CoolantFlood
	case 9:
		wordBit = block.M8
		blk.Modal.Coolant = 0 // M9 disables both mist and flood
	case 56:
		wordBit = block.M9
		blk.Modal.Override = block.OverrideParkingMotion
	default:
		return status.GcodeUnsupportedCommand
	}

	if blk.HasCommand(wordBit) {
		return status.GcodeModalGroupViolation
	}
	blk.SetCommand(wordBit)
	return status.OK
}

func applyWord(blk *block.ParserBlock, letter string, value float64) status.Kind {
	var wordBit block.ValueWord

	switch letter {
	case "F":
		wordBit = block.WordF
		blk.Values.F = value
	case "I":
		wordBit = block.WordI
		blk.Values.IJK[0] = value
	case "J":
		wordBit = block.WordJ
		blk.Values.IJK[1] = value
	case "K":
		wordBit = block.WordK
		blk.Values.IJK[2] = value
	case "L":
		wordBit = block.WordL
		blk.Values.L, _ = split(value)
	case "N":
		wordBit = block.WordN
		blk.Values.N, _ = split(value)
	case "P":
		wordBit = block.WordP
		blk.Values.P = value
	case "R":
		wordBit = block.WordR
		blk.Values.R = value
	case "S":
		wordBit = block.WordS
		blk.Values.S = value
	case "T":
		wordBit = block.WordT
		if value > 255 {
			return status.GcodeMaxValueExceeded
		}
		blk.Values.T, _ = split(value)
	case "X":
		wordBit = block.WordX
		blk.Values.XYZ[0] = value
	case "Y":
		wordBit = block.WordY
		blk.Values.XYZ[1] = value
	case "Z":
		wordBit = block.WordZ
		blk.Values.XYZ[2] = value
	default:
		return status.GcodeUnsupportedCommand
	}

	if blk.HasValue(wordBit) {
		return status.GcodeWordRepeated
	}
	if wordBit&(block.WordF|block.WordN|block.WordP|block.WordT|block.WordS) != 0 && value < 0 {
		return status.NegativeValue
	}
	blk.SetValue(wordBit)
	return status.OK
}
