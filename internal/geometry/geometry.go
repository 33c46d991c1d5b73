// Package geometry implements the arc-form conversion and tangent-vector
// helpers shared by the laser and drag transformers (spec.md §4.8):
// NormalizeArc converts between R-form and IJK-form arc specifications,
// and CalcTangents extracts the direction vectors at the start and end of
// a line or arc segment.
package geometry

import (
	"fmt"
	"math"

	"github.com/chrisns/gfilter-cnc/internal/block"
	"github.com/chrisns/gfilter-cnc/internal/status"
)

// NormalizeArc converts blk's arc specification so both R-form and
// IJK-form are available. x, y are the deltas from the arc's start point
// to its endpoint. If blk carries an R word, I/J are computed from it. If
// it carries I/J instead, R is computed from them and cross-checked
// against the commanded endpoint.
//
// Returns a *status.GeometryError for a geometrically inconsistent block
// (chord longer than the diameter, or a computed radius that disagrees
// with the I/J-implied radius beyond tolerance) — these are fatal per
// spec.md §7, mirroring the original's assert()s.
func NormalizeArc(blk *block.ParserBlock, motion block.Motion, x, y float64) *status.GeometryError {
	switch {
	case blk.HasValue(block.WordR):
		hx2divD := 4.0*blk.Values.R*blk.Values.R - x*x - y*y
		if hx2divD < 0 {
			return &status.GeometryError{Message: fmt.Sprintf(
				"arc radius %g too small for chord (%g, %g)", blk.Values.R, x, y)}
		}
		hx2divD = -math.Sqrt(hx2divD) / math.Hypot(x, y)
		if motion == block.MotionCCWArc {
			hx2divD = -hx2divD
		}
		if blk.Values.R < 0 {
			hx2divD = -hx2divD
			blk.Values.R = -blk.Values.R
		}
		blk.Values.IJK[0] = 0.5 * (x - y*hx2divD)
		blk.Values.IJK[1] = 0.5 * (y + x*hx2divD)

	case blk.HasValue(block.WordI) || blk.HasValue(block.WordJ):
		cx := x - blk.Values.IJK[0]
		cy := y - blk.Values.IJK[1]
		targetR := math.Hypot(cx, cy)
		blk.Values.R = math.Hypot(blk.Values.IJK[0], blk.Values.IJK[1])

		deltaR := math.Abs(targetR - blk.Values.R)
		if deltaR >= 0.5 || deltaR >= 0.001*blk.Values.R {
			return &status.GeometryError{Message: fmt.Sprintf(
				"arc radius mismatch: target %g vs center-implied %g", targetR, blk.Values.R)}
		}
	}
	return nil
}

// CalcTangents computes the unit tangent vectors at the start (v0) and end
// (v1) of a segment. dx, dy are the deltas from the segment's start to its
// endpoint. For an arc (blk.Values.R != 0) both vectors are derived from
// the IJK center; for a straight line v0 is simply (dx, dy), normalized
// into both v0 and v1 unless the segment has zero length, in which case v1
// is left untouched by the caller (matching original_source/geom.c:calcv,
// which never writes v1 in the degenerate case).
func CalcTangents(blk *block.ParserBlock, motion block.Motion, dx, dy float64, v0, v1 *[2]float64) {
	if blk.Values.R != 0 {
		v0[0] = -blk.Values.IJK[1] / blk.Values.R
		v0[1] = blk.Values.IJK[0] / blk.Values.R
		if motion == block.MotionCCWArc {
			v0[0] = -v0[0]
			v0[1] = -v0[1]
		}

		v1[0] = (dy - blk.Values.IJK[1]) / blk.Values.R
		v1[1] = (-dx + blk.Values.IJK[0]) / blk.Values.R
		return
	}

	v0[0] = dx
	v0[1] = dy

	d2 := v0[0]*v0[0] + v0[1]*v0[1]
	if d2 != 0 {
		d := math.Sqrt(d2)
		v1[0] = v0[0] / d
		v1[1] = v0[1] / d
		*v0 = *v1
	}
}
