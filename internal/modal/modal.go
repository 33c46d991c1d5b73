// Package modal implements the fold-and-strip-redundancy routine shared by
// the laser, drag and cleanup stages (spec.md §4.2): given a running Shadow of modal
// state and a freshly parsed block, it updates the shadow and clears bits
// for words/groups that repeat the shadow's current value, leaving only
// the words that actually changed.
package modal

import "github.com/chrisns/gfilter-cnc/internal/block"

// UpdateState folds blk's words into shadow and strips redundant bits from
// blk in place, mirroring original_source/gcode.c:update_state.
func UpdateState(shadow *block.Shadow, blk *block.ParserBlock) {
	updateScalarF(shadow, blk)
	updateIJK(shadow, blk)
	updateScalarL(shadow, blk)
	updateScalarN(shadow, blk)
	updateScalarP(shadow, blk)
	updateScalarR(shadow, blk)
	updateScalarS(shadow, blk)
	updateScalarT(shadow, blk)
	updateCommandGroups(shadow, blk)
	updateXYZ(shadow, blk)
}

func updateScalarF(shadow *block.Shadow, blk *block.ParserBlock) {
	if !blk.HasValue(block.WordF) {
		return
	}
	if blk.Values.F == shadow.Values.F {
		blk.ClearValue(block.WordF)
	} else {
		shadow.Values.F = blk.Values.F
	}
}

// updateIJK drops I/J/K words that are zero. Unlike F/L/N/P/S/T, arc
// offsets aren't modal — a zero offset carries no information either way,
// so it's stripped rather than compared against shadow state.
func updateIJK(shadow *block.Shadow, blk *block.ParserBlock) {
	for i, w := range [3]block.ValueWord{block.WordI, block.WordJ, block.WordK} {
		if blk.HasValue(w) && blk.Values.IJK[i] == 0 {
			blk.ClearValue(w)
		}
	}
}

func updateScalarL(shadow *block.Shadow, blk *block.ParserBlock) {
	if !blk.HasValue(block.WordL) {
		return
	}
	if blk.Values.L == shadow.Values.L {
		blk.ClearValue(block.WordL)
	} else {
		shadow.Values.L = blk.Values.L
	}
}

func updateScalarN(shadow *block.Shadow, blk *block.ParserBlock) {
	if !blk.HasValue(block.WordN) {
		return
	}
	if blk.Values.N == shadow.Values.N {
		blk.ClearValue(block.WordN)
	} else {
		shadow.Values.N = blk.Values.N
	}
}

func updateScalarP(shadow *block.Shadow, blk *block.ParserBlock) {
	if !blk.HasValue(block.WordP) {
		return
	}
	if blk.Values.P == shadow.Values.P {
		blk.ClearValue(block.WordP)
	} else {
		shadow.Values.P = blk.Values.P
	}
}

// updateScalarR drops R when it's zero — like I/J/K, R isn't modal.
func updateScalarR(shadow *block.Shadow, blk *block.ParserBlock) {
	if blk.HasValue(block.WordR) && blk.Values.R == 0 {
		blk.ClearValue(block.WordR)
	}
}

func updateScalarS(shadow *block.Shadow, blk *block.ParserBlock) {
	if !blk.HasValue(block.WordS) {
		return
	}
	if blk.Values.S == shadow.Values.S {
		blk.ClearValue(block.WordS)
	} else {
		shadow.Values.S = blk.Values.S
	}
}

func updateScalarT(shadow *block.Shadow, blk *block.ParserBlock) {
	if !blk.HasValue(block.WordT) {
		return
	}
	if blk.Values.T == shadow.Values.T {
		blk.ClearValue(block.WordT)
	} else {
		shadow.Values.T = blk.Values.T
	}
}

func updateCommandGroups(shadow *block.Shadow, blk *block.ParserBlock) {
	if blk.HasCommand(block.G1) {
		if shadow.Modal.Motion == blk.Modal.Motion {
			blk.ClearCommand(block.G1)
		} else {
			shadow.Modal.Motion = blk.Modal.Motion
		}
	}
	if blk.HasCommand(block.G2) {
		if shadow.Modal.PlaneSelect == blk.Modal.PlaneSelect {
			blk.ClearCommand(block.G2)
		} else {
			shadow.Modal.PlaneSelect = blk.Modal.PlaneSelect
		}
	}
	if blk.HasCommand(block.G3) {
		if shadow.Modal.Distance == blk.Modal.Distance {
			blk.ClearCommand(block.G3)
		} else {
			shadow.Modal.Distance = blk.Modal.Distance
		}
	}
	if blk.HasCommand(block.G5) {
		if shadow.Modal.FeedRate == blk.Modal.FeedRate {
			blk.ClearCommand(block.G5)
		} else {
			shadow.Modal.FeedRate = blk.Modal.FeedRate
		}
	}
	if blk.HasCommand(block.G6) {
		if shadow.Modal.Units == blk.Modal.Units {
			blk.ClearCommand(block.G6)
		} else {
			shadow.Modal.Units = blk.Modal.Units
		}
	}
	if blk.HasCommand(block.G8) {
		if shadow.Modal.ToolLength == blk.Modal.ToolLength {
			blk.ClearCommand(block.G8)
		} else {
			shadow.Modal.ToolLength = blk.Modal.ToolLength
		}
	}
	if blk.HasCommand(block.G12) {
		if shadow.Modal.CoordSelect == blk.Modal.CoordSelect {
			blk.ClearCommand(block.G12)
		} else {
			shadow.Modal.CoordSelect = blk.Modal.CoordSelect
		}
	}
	if blk.HasCommand(block.M4) {
		if shadow.Modal.ProgramFlow == blk.Modal.ProgramFlow {
			blk.ClearCommand(block.M4)
		} else {
			shadow.Modal.ProgramFlow = blk.Modal.ProgramFlow
		}
	}
	if blk.HasCommand(block.M7) {
		if shadow.Modal.Spindle == blk.Modal.Spindle {
			blk.ClearCommand(block.M7)
		} else {
			shadow.Modal.Spindle = blk.Modal.Spindle
		}
	}
	if blk.HasCommand(block.M8) {
		if shadow.Modal.Coolant == blk.Modal.Coolant {
			blk.ClearCommand(block.M8)
		} else {
			shadow.Modal.Coolant = blk.Modal.Coolant
		}
	}
}

// updateXYZ folds the XYZ words into shadow.Values.XYZ. In absolute mode a
// word is stripped when it repeats the shadow's position; in incremental
// mode it's stripped when it's a zero move. The original C accumulates
// unconditionally in the incremental branch because its `else` binds to
// the inner zero-check `if`, not the outer word-present `if` — so it adds
// block->values.xyz[i] into the running position even for axes the block
// never mentioned. Here accumulation only happens when the word bit is
// actually set.
func updateXYZ(shadow *block.Shadow, blk *block.ParserBlock) {
	for i := 0; i < 3; i++ {
		w := block.Axis(i)
		if shadow.Modal.Distance == block.DistanceAbsolute {
			if !blk.HasValue(w) {
				continue
			}
			if blk.Values.XYZ[i] == shadow.Values.XYZ[i] {
				blk.ClearValue(w)
			} else {
				shadow.Values.XYZ[i] = blk.Values.XYZ[i]
			}
			continue
		}

		if !blk.HasValue(w) {
			continue
		}
		if blk.Values.XYZ[i] == 0 {
			blk.ClearValue(w)
		} else {
			shadow.Values.XYZ[i] += blk.Values.XYZ[i]
		}
	}
}
