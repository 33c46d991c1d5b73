// Package units implements the to_mm/from_mm unit-conversion stages
// (spec.md §4.3): to_mm normalizes every block to millimeters and strips
// redundant G20/G21 declarations; from_mm converts back to the output
// stream's chosen units and re-inserts declarations where the mode
// changes.
package units

import "github.com/chrisns/gfilter-cnc/internal/block"

const mmPerInch = 25.4

// ToMMState is the running shadow for ToMM. The machine is assumed to
// start in millimeter mode, per original_source/mm_mode.c.
type ToMMState struct {
	units block.Units
}

// NewToMMState returns a ToMMState initialized to millimeters.
func NewToMMState() *ToMMState {
	return &ToMMState{units: block.UnitsMM}
}

// ToMM converts blk's values to millimeters in place and strips a G20/G21
// word that repeats the shadow's current mode.
func ToMM(state *ToMMState, blk *block.ParserBlock) {
	if blk.HasCommand(block.G6) {
		if state.units == blk.Modal.Units {
			blk.ClearCommand(block.G6)
		} else {
			state.units = blk.Modal.Units
			blk.Modal.Units = block.UnitsMM
		}
	}

	if state.units == block.UnitsInches {
		for i := 0; i < 3; i++ {
			blk.Values.XYZ[i] *= mmPerInch
			blk.Values.IJK[i] *= mmPerInch
		}
		blk.Values.F *= mmPerInch
		blk.Values.R *= mmPerInch
	}
}

// FromMMState is the running shadow for FromMM. Unlike ToMMState, the
// output mode is undecided until the first block is processed: the
// original used a sentinel value 255 for this; here it's an explicit
// bool, per spec.md §9.
type FromMMState struct {
	undecided bool
	units     block.Units
}

// NewFromMMState returns a FromMMState with its output mode undecided.
func NewFromMMState() *FromMMState {
	return &FromMMState{undecided: true}
}

// FromMM converts blk's values from millimeters into the shadow's chosen
// units in place, deciding the output units on the first call and
// toggling on every subsequent explicit units declaration.
func FromMM(state *FromMMState, blk *block.ParserBlock) {
	if state.undecided {
		state.undecided = false
		if blk.HasCommand(block.G6) {
			state.units = block.UnitsInches
		} else {
			blk.SetCommand(block.G6)
			state.units = block.UnitsMM
		}
		blk.Modal.Units = state.units
	} else if blk.HasCommand(block.G6) {
		state.units = toggleUnits(state.units)
		blk.Modal.Units = state.units
	}

	if state.units == block.UnitsInches {
		for i := 0; i < 3; i++ {
			blk.Values.XYZ[i] /= mmPerInch
			blk.Values.IJK[i] /= mmPerInch
		}
		blk.Values.F /= mmPerInch
		blk.Values.R /= mmPerInch
	}
}

func toggleUnits(u block.Units) block.Units {
	if u == block.UnitsMM {
		return block.UnitsInches
	}
	return block.UnitsMM
}
