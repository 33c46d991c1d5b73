package block

import "testing"

func TestCommandWordBits(t *testing.T) {
	var b ParserBlock
	if b.HasCommand(G1) {
		t.Fatal("zero-value block should carry no commands")
	}
	b.SetCommand(G1)
	if !b.HasCommand(G1) {
		t.Error("expected G1 command bit set")
	}
	if b.HasCommand(G2) {
		t.Error("setting G1 should not set G2")
	}
	b.ClearCommand(G1)
	if b.HasCommand(G1) {
		t.Error("expected G1 command bit cleared")
	}
}

func TestValueWordBits(t *testing.T) {
	var b ParserBlock
	b.SetValue(WordX)
	b.SetValue(WordY)
	if !b.HasValue(WordX) || !b.HasValue(WordY) {
		t.Fatal("expected X and Y value bits set")
	}
	if b.HasValue(WordZ) {
		t.Error("setting X/Y should not set Z")
	}
	b.ClearValue(WordX)
	if b.HasValue(WordX) {
		t.Error("expected X value bit cleared")
	}
}

func TestAxisBitShift(t *testing.T) {
	if Axis(0) != WordX || Axis(1) != WordY || Axis(2) != WordZ {
		t.Errorf("Axis(0..2) = %v %v %v, want WordX WordY WordZ", Axis(0), Axis(1), Axis(2))
	}
}
