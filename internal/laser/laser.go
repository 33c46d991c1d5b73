// Package laser implements the laser-cutter transformer (spec.md §4.6):
// it inserts zero-power lead-in/lead-out traversal moves around direction,
// feed-rate, or spindle-state discontinuities so the beam reaches full
// power before striking the material and turns off before the head
// changes direction.
package laser

import (
	"math"

	"github.com/chrisns/gfilter-cnc/internal/block"
	"github.com/chrisns/gfilter-cnc/internal/geometry"
	"github.com/chrisns/gfilter-cnc/internal/modal"
	"github.com/chrisns/gfilter-cnc/internal/status"
)

// DefaultMaxAngleDeg is the default maximum angle, in degrees, between two
// consecutive cuts that is still treated as a continuous curve (no
// lead-in/lead-out needed), per original_source's usage() text.
const DefaultMaxAngleDeg = 2.0

// State is the running shadow for Transform.
type State struct {
	shadow block.Shadow
	v      [2]float64
	a      float64
	m      float64 // cos(maxAngleRad)^2, continuity threshold
}

// NewState builds a laser State for acceleration a (mm/s^2) and a maximum
// continuous-curve angle of maxAngleDeg degrees.
//
// original_source/lasermode.c computes this threshold as
// acos(max_angle_deg/180*3.14)^2 — almost certainly a copy-paste of the
// inverse function where the forward one was meant. This is fixed per
// spec.md §9: M = cos(max_angle_deg * pi / 180)^2, using math.Pi instead
// of the original's literal 3.14.
func NewState(a, maxAngleDeg float64) *State {
	c := math.Cos(maxAngleDeg * math.Pi / 180)
	return &State{a: a, m: c * c}
}

// Transform folds blk into the shadow and returns the sequence of blocks
// to emit in place of it — just blk itself, normally, or blk preceded by
// up to three zero-power traversal moves when a direction, feed, or
// spindle-state discontinuity requires the beam to ramp down and back up.
func Transform(state *State, blk *block.ParserBlock) ([]block.ParserBlock, *status.GeometryError) {
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

	dv2 := v0[0]*oldV[0] + v0[1]*oldV[1]

	var extprev, extnext bool
	if dv2 < state.m ||
		state.shadow.Values.F != oldShadow.Values.F ||
		(state.shadow.Values.S == 0) != (oldShadow.Values.S == 0) ||
		state.shadow.Modal.Spindle != oldShadow.Modal.Spindle {
		extprev = oldShadow.Values.S != 0 &&
			oldShadow.Modal.Spindle != block.SpindleDisable &&
			oldShadow.Modal.Motion != block.MotionRapid
		extnext = state.shadow.Values.S != 0 &&
			state.shadow.Modal.Spindle != block.SpindleDisable &&
			state.shadow.Modal.Motion != block.MotionRapid
	}

	if !extprev && !extnext {
		return []block.ParserBlock{*blk}, nil
	}

	final := *blk
	final.SetValue(block.WordS)
	final.Values.S = state.shadow.Values.S
	final.SetCommand(block.G1)
	final.Modal.Motion = state.shadow.Modal.Motion

	carriesF := blk.HasValue(block.WordF)
	out := make([]block.ParserBlock, 0, 4)

	if extprev {
		d := oldShadow.Values.F / 60 // mm/s
		d = d * d / (2 * state.a)
		out = append(out, traversalMove(
			oldShadow.Values.XYZ[0]+d*oldV[0],
			oldShadow.Values.XYZ[1]+d*oldV[1],
			blk.Values.F, carriesF))
	}

	if extnext {
		d := state.shadow.Values.F / 60
		d = d * d / (2 * state.a)
		out = append(out, traversalMove(
			oldShadow.Values.XYZ[0]-d*v0[0],
			oldShadow.Values.XYZ[1]-d*v0[1],
			state.shadow.Values.F, carriesF))
	}

	out = append(out, traversalMove(
		oldShadow.Values.XYZ[0], oldShadow.Values.XYZ[1],
		state.shadow.Values.F, carriesF))

	out = append(out, final)
	return out, nil
}

// traversalMove builds a zero-power linear move to (x, y).
func traversalMove(x, y, f float64, carriesF bool) block.ParserBlock {
	m := block.ParserBlock{}
	m.SetValue(block.WordX)
	m.SetValue(block.WordY)
	m.SetValue(block.WordS)
	m.Values.XYZ[0] = x
	m.Values.XYZ[1] = y
	m.Values.S = 0
	if carriesF {
		m.SetValue(block.WordF)
		m.Values.F = f
	}
	m.Modal.Motion = block.MotionLinear
	m.SetCommand(block.G1)
	return m
}
