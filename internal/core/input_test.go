package core

import "testing"

func TestInputFrameSetAndHold(t *testing.T) {
	in := NewInputFrame()

	in.Set(ActionJump)
	if !in.Has(ActionJump) || !in.IsHeld(ActionJump) {
		t.Error("Set should register both a press edge and a hold")
	}

	in.Hold(ActionRight)
	if in.Has(ActionRight) {
		t.Error("Hold must not create a press edge")
	}
	if !in.IsHeld(ActionRight) {
		t.Error("Hold should register a hold")
	}
}

func TestInputFrameAxis(t *testing.T) {
	tests := []struct {
		name  string
		left  bool
		right bool
		want  float64
	}{
		{"neutral", false, false, 0},
		{"left", true, false, -1},
		{"right", false, true, 1},
		{"opposing cancel", true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInputFrame()
			if tt.left {
				in.Hold(ActionLeft)
			}
			if tt.right {
				in.Hold(ActionRight)
			}
			if got := in.Axis(); got != tt.want {
				t.Errorf("Axis() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInputFrameClearPressed(t *testing.T) {
	in := NewInputFrame()
	in.Set(ActionJump)
	in.Hold(ActionRight)

	in.ClearPressed()
	if in.Has(ActionJump) {
		t.Error("ClearPressed should drop press edges")
	}
	if !in.IsHeld(ActionJump) || !in.IsHeld(ActionRight) {
		t.Error("ClearPressed must keep holds alive")
	}

	in.Clear()
	if in.IsHeld(ActionJump) || in.IsHeld(ActionRight) {
		t.Error("Clear should drop everything")
	}
}

func TestInputFrameClone(t *testing.T) {
	in := NewInputFrame()
	in.Set(ActionJump)

	clone := in.Clone()
	clone.Set(ActionLeft)

	if in.Has(ActionLeft) {
		t.Error("Clone must not share state with the original")
	}
	if !clone.Has(ActionJump) {
		t.Error("Clone should copy existing state")
	}
}

func TestInputFrameZeroValueSafe(t *testing.T) {
	var in InputFrame
	if in.Has(ActionJump) || in.IsHeld(ActionJump) || in.Axis() != 0 {
		t.Error("Zero-value frame should read as empty")
	}
	in.Set(ActionJump)
	if !in.Has(ActionJump) {
		t.Error("Set should lazily allocate the maps")
	}
}
