package units

import (
	"testing"

	"github.com/chrisns/gfilter-cnc/internal/block"
)

func TestToMMConvertsInches(t *testing.T) {
	state := NewToMMState()
	blk := &block.ParserBlock{}
	blk.SetCommand(block.G6)
	blk.Modal.Units = block.UnitsInches
	blk.SetValue(block.WordX)
	blk.Values.XYZ[0] = 1

	ToMM(state, blk)

	if blk.Values.XYZ[0] != 25.4 {
		t.Errorf("X = %v, want 25.4", blk.Values.XYZ[0])
	}
	if blk.Modal.Units != block.UnitsMM {
		t.Errorf("declared units = %v, want UnitsMM (normalized)", blk.Modal.Units)
	}
	if !blk.HasCommand(block.G6) {
		t.Error("expected G6 word to survive: the mode actually changed")
	}
}

func TestToMMStripsRedundantDeclaration(t *testing.T) {
	state := NewToMMState() // starts in mm
	blk := &block.ParserBlock{}
	blk.SetCommand(block.G6)
	blk.Modal.Units = block.UnitsMM

	ToMM(state, blk)

	if blk.HasCommand(block.G6) {
		t.Error("expected redundant G21 to be stripped")
	}
}

func TestFromMMFirstBlockForcesDeclaration(t *testing.T) {
	state := NewFromMMState()
	blk := &block.ParserBlock{}
	blk.SetValue(block.WordX)
	blk.Values.XYZ[0] = 10

	FromMM(state, blk)

	if !blk.HasCommand(block.G6) {
		t.Error("expected first block to force a units declaration")
	}
	if blk.Modal.Units != block.UnitsMM {
		t.Errorf("units = %v, want UnitsMM", blk.Modal.Units)
	}
}

func TestFromMMFirstBlockWithDeclarationGoesInches(t *testing.T) {
	state := NewFromMMState()
	blk := &block.ParserBlock{}
	blk.SetCommand(block.G6)
	blk.SetValue(block.WordX)
	blk.Values.XYZ[0] = 25.4

	FromMM(state, blk)

	if blk.Values.XYZ[0] != 1 {
		t.Errorf("X = %v, want 1 (converted to inches)", blk.Values.XYZ[0])
	}
}

func TestFromMMTogglesOnSubsequentDeclaration(t *testing.T) {
	state := NewFromMMState()
	first := &block.ParserBlock{}
	FromMM(state, first) // decides mm, consumes undecided

	second := &block.ParserBlock{}
	second.SetCommand(block.G6)
	second.SetValue(block.WordX)
	second.Values.XYZ[0] = 25.4

	FromMM(state, second)

	if second.Values.XYZ[0] != 1 {
		t.Errorf("X = %v, want 1 (toggled to inches)", second.Values.XYZ[0])
	}
}
