// Package distance implements the to_abs/from_abs coordinate-mode stages
// (spec.md §4.4): to_abs normalizes every block to absolute coordinates
// and strips redundant G90/G91 declarations; from_abs converts back to
// incremental moves where the output stream calls for it.
package distance

import "github.com/chrisns/gfilter-cnc/internal/block"

// ToAbsState is the running shadow for ToAbs: the absolute machine
// position plus the current declared distance mode. The machine is
// assumed to start in absolute mode, per original_source/absmode.c.
type ToAbsState struct {
	xyz      [3]float64
	distance block.Distance
}

// NewToAbsState returns a ToAbsState at the origin in absolute mode.
func NewToAbsState() *ToAbsState {
	return &ToAbsState{distance: block.DistanceAbsolute}
}

// ToAbs converts blk's XYZ words to absolute coordinates in place and
// strips a G90/G91 word that repeats the shadow's current mode.
func ToAbs(state *ToAbsState, blk *block.ParserBlock) {
	if blk.HasCommand(block.G3) {
		if state.distance == blk.Modal.Distance {
			blk.ClearCommand(block.G3)
		} else {
			state.distance = blk.Modal.Distance
			blk.Modal.Distance = block.DistanceAbsolute
		}
	}

	for i := 0; i < 3; i++ {
		w := block.Axis(i)
		if !blk.HasValue(w) {
			continue
		}
		if state.distance == block.DistanceAbsolute {
			state.xyz[i] = blk.Values.XYZ[i]
		} else {
			state.xyz[i] += blk.Values.XYZ[i]
			blk.Values.XYZ[i] = state.xyz[i]
		}
	}
}

// FromAbsState is the running shadow for FromAbs. The output distance
// mode is undecided until the first block is processed — an explicit
// bool replaces the original's sentinel value 255, per spec.md §9.
type FromAbsState struct {
	undecided bool
	xyz       [3]float64
	distance  block.Distance
}

// NewFromAbsState returns a FromAbsState at the origin with its output
// mode undecided.
func NewFromAbsState() *FromAbsState {
	return &FromAbsState{undecided: true}
}

// FromAbs converts blk's XYZ words from absolute machine position into
// the shadow's chosen distance mode in place, deciding the output mode on
// the first call and toggling on every subsequent explicit declaration.
func FromAbs(state *FromAbsState, blk *block.ParserBlock) {
	if state.undecided {
		state.undecided = false
		if blk.HasCommand(block.G3) {
			state.distance = block.DistanceIncremental
		} else {
			blk.SetCommand(block.G3)
			state.distance = block.DistanceAbsolute
		}
		blk.Modal.Distance = state.distance
	} else if blk.HasCommand(block.G3) {
		state.distance = toggleDistance(state.distance)
		blk.Modal.Distance = state.distance
	}

	for i := 0; i < 3; i++ {
		w := block.Axis(i)
		if !blk.HasValue(w) {
			continue
		}
		if state.distance == block.DistanceAbsolute {
			state.xyz[i] = blk.Values.XYZ[i]
		} else {
			blk.Values.XYZ[i] -= state.xyz[i]
			state.xyz[i] += blk.Values.XYZ[i]
		}
	}
}

func toggleDistance(d block.Distance) block.Distance {
	if d == block.DistanceAbsolute {
		return block.DistanceIncremental
	}
	return block.DistanceAbsolute
}
