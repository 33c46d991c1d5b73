package laser

import (
	"testing"

	"github.com/chrisns/gfilter-cnc/internal/block"
)

// cutBlock builds a G1 move carrying F and S. It sets Modal.Spindle but not
// the spindle-group (M7) command bit, so the spindle only counts as on in
// the transformer's shadow once a test also sets that bit.
func cutBlock(x, y, f, s float64) *block.ParserBlock {
	b := &block.ParserBlock{}
	b.SetCommand(block.G1)
	b.Modal.Motion = block.MotionLinear
	b.Modal.Spindle = block.SpindleCW
	b.SetValue(block.WordX)
	b.SetValue(block.WordY)
	b.SetValue(block.WordF)
	b.SetValue(block.WordS)
	b.Values.XYZ[0] = x
	b.Values.XYZ[1] = y
	b.Values.F = f
	b.Values.S = s
	return b
}

func TestTransformStraightContinuationNeedsNoExtension(t *testing.T) {
	state := NewState(1000, DefaultMaxAngleDeg)

	first := cutBlock(10, 0, 600, 500)
	out, err := Transform(state, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("first block: got %d blocks, want 1", len(out))
	}

	second := cutBlock(20, 0, 600, 500) // continues in the same direction
	out, err = Transform(state, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("continuation: got %d blocks, want 1 (no lead-in/out needed)", len(out))
	}
}

func TestTransformNoExtensionReturnsBlockUnchanged(t *testing.T) {
	state := NewState(1000, DefaultMaxAngleDeg)

	first := cutBlock(10, 0, 600, 500)
	out, err := Transform(state, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d blocks, want 1", len(out))
	}
	// A continuous cut must pass through untouched: no restated S or
	// motion word beyond what the caller already set.
	if out[0] != *first {
		t.Errorf("got %+v, want the original block unchanged", out[0])
	}
}

func TestTransformSharpTurnInsertsLeadInOut(t *testing.T) {
	state := NewState(1000, DefaultMaxAngleDeg)

	first := cutBlock(10, 0, 600, 500)
	first.SetCommand(block.M7) // M3: switch the spindle on so both legs are cuts
	if _, err := Transform(state, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sharp 90-degree turn: direction discontinuity should trigger both
	// a lead-out from the previous leg and a lead-in to the next.
	second := cutBlock(10, 10, 600, 500)
	out, err := Transform(state, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d blocks, want 4 (leadout, leadin, junction, final)", len(out))
	}

	for i, b := range out[:3] {
		if b.Values.S != 0 {
			t.Errorf("traversal block %d: S = %v, want 0", i, b.Values.S)
		}
		if b.Modal.Motion != block.MotionLinear {
			t.Errorf("traversal block %d: motion = %v, want linear", i, b.Modal.Motion)
		}
	}
	final := out[3]
	if final.Values.S != 500 {
		t.Errorf("final block S = %v, want 500", final.Values.S)
	}
	junction := out[2]
	if junction.Values.XYZ[0] != 10 || junction.Values.XYZ[1] != 0 {
		t.Errorf("junction move = %v, want [10 0] (the real start point)", junction.Values.XYZ)
	}
}

func TestTransformRapidMoveNeverExtends(t *testing.T) {
	state := NewState(1000, DefaultMaxAngleDeg)

	first := cutBlock(10, 0, 600, 500)
	if _, err := Transform(state, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rapid := &block.ParserBlock{}
	rapid.SetCommand(block.G1)
	rapid.Modal.Motion = block.MotionRapid
	rapid.SetValue(block.WordX)
	rapid.Values.XYZ[0] = 100

	out, err := Transform(state, rapid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d blocks for a rapid move, want 1 (rapids never extend)", len(out))
	}
}

func TestTransformFeedChangeTriggersExtension(t *testing.T) {
	state := NewState(1000, DefaultMaxAngleDeg)

	first := cutBlock(10, 0, 600, 500)
	first.SetCommand(block.M7) // M3: switch the spindle on so both legs are cuts
	if _, err := Transform(state, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	faster := cutBlock(20, 0, 1200, 500) // same direction, different feed
	out, err := Transform(state, faster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 1 {
		t.Fatal("expected a feed-rate change to trigger lead-in/out even on a straight continuation")
	}
}
