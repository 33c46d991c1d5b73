package modal

import (
	"testing"

	"github.com/chrisns/gfilter-cnc/internal/block"
)

func TestUpdateStateStripsRepeatedFeed(t *testing.T) {
	shadow := &block.Shadow{}
	shadow.Values.F = 300

	blk := &block.ParserBlock{}
	blk.SetValue(block.WordF)
	blk.Values.F = 300

	UpdateState(shadow, blk)

	if blk.HasValue(block.WordF) {
		t.Error("expected F word to be stripped as redundant")
	}
}

func TestUpdateStateKeepsChangedFeed(t *testing.T) {
	shadow := &block.Shadow{}
	shadow.Values.F = 300

	blk := &block.ParserBlock{}
	blk.SetValue(block.WordF)
	blk.Values.F = 600

	UpdateState(shadow, blk)

	if !blk.HasValue(block.WordF) {
		t.Error("expected F word to survive since it changed")
	}
	if shadow.Values.F != 600 {
		t.Errorf("shadow.Values.F = %v, want 600", shadow.Values.F)
	}
}

func TestUpdateStateDropsZeroIJK(t *testing.T) {
	blk := &block.ParserBlock{}
	blk.SetValue(block.WordI)
	blk.Values.IJK[0] = 0

	UpdateState(&block.Shadow{}, blk)

	if blk.HasValue(block.WordI) {
		t.Error("expected zero I word to be dropped")
	}
}

func TestUpdateStateAbsoluteXYZStripsRepeatedPosition(t *testing.T) {
	shadow := &block.Shadow{}
	shadow.Modal.Distance = block.DistanceAbsolute
	shadow.Values.XYZ = [3]float64{10, 20, 0}

	blk := &block.ParserBlock{}
	blk.SetValue(block.WordX)
	blk.SetValue(block.WordY)
	blk.Values.XYZ = [3]float64{10, 25, 0}

	UpdateState(shadow, blk)

	if blk.HasValue(block.WordX) {
		t.Error("expected X to be stripped (unchanged position)")
	}
	if !blk.HasValue(block.WordY) {
		t.Error("expected Y to survive (changed position)")
	}
	if shadow.Values.XYZ[1] != 25 {
		t.Errorf("shadow Y = %v, want 25", shadow.Values.XYZ[1])
	}
}

// TestUpdateStateIncrementalOnlyAccumulatesPresentWords is the regression
// test for the fixed dangling-else bug: axes absent from the block must
// not be folded into the running incremental position.
func TestUpdateStateIncrementalOnlyAccumulatesPresentWords(t *testing.T) {
	shadow := &block.Shadow{}
	shadow.Modal.Distance = block.DistanceIncremental
	shadow.Values.XYZ = [3]float64{1, 2, 3}

	blk := &block.ParserBlock{}
	blk.SetValue(block.WordX)
	blk.Values.XYZ[0] = 5
	// Y and Z words are absent; Values.XYZ[1]/[2] are zero-valued structs,
	// not set words.

	UpdateState(shadow, blk)

	want := [3]float64{6, 2, 3}
	if shadow.Values.XYZ != want {
		t.Errorf("shadow XYZ = %v, want %v (Y/Z must stay untouched)", shadow.Values.XYZ, want)
	}
}

func TestUpdateStateIncrementalDropsZeroMove(t *testing.T) {
	shadow := &block.Shadow{}
	shadow.Modal.Distance = block.DistanceIncremental
	shadow.Values.XYZ = [3]float64{1, 1, 1}

	blk := &block.ParserBlock{}
	blk.SetValue(block.WordX)
	blk.Values.XYZ[0] = 0

	UpdateState(shadow, blk)

	if blk.HasValue(block.WordX) {
		t.Error("expected zero incremental move to be dropped")
	}
	if shadow.Values.XYZ[0] != 1 {
		t.Errorf("shadow X = %v, want unchanged 1", shadow.Values.XYZ[0])
	}
}

func TestUpdateStateCommandGroupRedundancy(t *testing.T) {
	shadow := &block.Shadow{}
	shadow.Modal.Units = block.UnitsMM

	blk := &block.ParserBlock{}
	blk.SetCommand(block.G6)
	blk.Modal.Units = block.UnitsMM

	UpdateState(shadow, blk)

	if blk.HasCommand(block.G6) {
		t.Error("expected redundant units command to be stripped")
	}
}
