// Package drag implements the drag-knife transformer (spec.md §4.7): it
// translates commanded positions from the blade tip to the machine's
// swivel-center position, adjusts arc radii/centers for that offset, and
// inserts a pivot arc wherever the direction changes sharply enough, while
// the blade is in the material, that the trailing blade needs to swivel
// in place before the next cut.
package drag

import (
	"math"

	"github.com/chrisns/gfilter-cnc/internal/block"
	"github.com/chrisns/gfilter-cnc/internal/geometry"
	"github.com/chrisns/gfilter-cnc/internal/modal"
	"github.com/chrisns/gfilter-cnc/internal/status"
)

// DefaultMinAngleDeg is the default minimum angle, in degrees, between two
// consecutive cuts that requires a pivot arc, per original_source's
// usage() text.
const DefaultMinAngleDeg = 2.0

// State is the running shadow for Transform. shadow.Values.XYZ tracks the
// blade tip's position (not the machine's); v is the unit vector from the
// blade tip to the machine's swivel center.
type State struct {
	shadow      block.Shadow
	v           [2]float64
	d           float64 // blade offset
	cosMinAngle float64
}

// NewState builds a drag State for blade offset d (mm), initial blade
// orientation angle0 (degrees, 0 = +X), and a minimum pivot angle
// minAngleDeg (degrees).
//
// original_source/dragmode.c hardcodes pi as the literal 3.141 here (vs.
// 3.14 in lasermode.c — an inconsistency in the original itself); both are
// replaced with math.Pi per spec.md §9.
func NewState(d, angle0, minAngleDeg float64) *State {
	v0 := math.Cos(angle0 * math.Pi / 180)
	v1 := math.Sin(angle0 * math.Pi / 180)

	s := &State{
		d:           d,
		v:           [2]float64{v0, v1},
		cosMinAngle: math.Cos(minAngleDeg * math.Pi / 180),
	}
	s.shadow.Values.XYZ[0] = -v0 * d
	s.shadow.Values.XYZ[1] = -v1 * d
	return s
}

// Transform folds blk into the shadow (which tracks the desired blade-tip
// position) and returns the sequence of blocks to emit in place of it: a
// pivot arc followed by the translated move, or just the translated move
// when no pivot is needed.
func Transform(state *State, blk *block.ParserBlock) ([]block.ParserBlock, *status.GeometryError) {
	blk.ClearCommand(block.M7) // drag knives carry no spindle action

	oldShadow := state.shadow
	oldV := state.v

	modal.UpdateState(&state.shadow, blk)

	dx := state.shadow.Values.XYZ[0] - oldShadow.Values.XYZ[0]
	dy := state.shadow.Values.XYZ[1] - oldShadow.Values.XYZ[1]

	if err := geometry.NormalizeArc(blk, state.shadow.Modal.Motion, dx, dy); err != nil {
		return nil, err
	}

	var v0 [2]float64
	geometry.CalcTangents(blk, state.shadow.Modal.Motion, dx, dy, &v0, &state.v)

	if state.shadow.Values.XYZ[2] >= 0 || oldShadow.Values.XYZ[2] >= 0 {
		// Not cutting: the knife can't steer, so it keeps pointing the
		// way it was already pointing.
		state.v = oldV
	}

	for i := 0; i < 2; i++ {
		blk.Values.XYZ[i] = state.shadow.Values.XYZ[i] + state.v[i]*state.d
	}

	switch {
	case blk.HasValue(block.WordR):
		blk.Values.R = math.Sqrt(blk.Values.R*blk.Values.R + state.d*state.d)
	case blk.HasValue(block.WordI) || blk.HasValue(block.WordJ):
		if !blk.HasValue(block.WordI) {
			blk.Values.IJK[0] = 0
		}
		if !blk.HasValue(block.WordJ) {
			blk.Values.IJK[1] = 0
		}
		blk.SetValue(block.WordI)
		blk.SetValue(block.WordJ)
		for i := 0; i < 2; i++ {
			blk.Values.IJK[i] -= oldV[i] * state.d
		}
	}

	blk.SetValue(block.WordX)
	blk.SetValue(block.WordY)

	dp := v0[0]*oldV[0] + v0[1]*oldV[1]

	if dp < state.cosMinAngle && state.shadow.Values.XYZ[2] < 0 && oldShadow.Values.XYZ[2] < 0 {
		// Direction discontinuity while the blade is in material: swivel
		// in place before the next cut.
		dir := v0[0]*oldV[1] - v0[1]*oldV[0]

		pivot := block.ParserBlock{}
		if dir > 0 {
			pivot.Modal.Motion = block.MotionCWArc
		} else {
			pivot.Modal.Motion = block.MotionCCWArc
		}
		pivot.SetCommand(block.G1)
		pivot.Values.XYZ[0] = oldShadow.Values.XYZ[0] + v0[0]*state.d
		pivot.Values.XYZ[1] = oldShadow.Values.XYZ[1] + v0[1]*state.d
		pivot.Values.R = state.d
		pivot.SetValue(block.WordR)
		pivot.SetValue(block.WordX)
		pivot.SetValue(block.WordY)

		blk.Modal.Motion = state.shadow.Modal.Motion
		blk.SetCommand(block.G1)

		return []block.ParserBlock{pivot, *blk}, nil
	}

	return []block.ParserBlock{*blk}, nil
}
