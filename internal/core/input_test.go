package core

import "testing"

func TestInputFrameIntent(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    Intent
		dir     float64
	}{
		{"empty", nil, Intent{}, 0},
		{"left", []Action{ActionLeft}, Intent{MoveLeft: true}, -1},
		{"right and jump", []Action{ActionRight, ActionJump}, Intent{MoveRight: true, JumpPressed: true, JumpHeld: true}, 1},
		{"hold only", []Action{ActionJumpHold}, Intent{JumpHeld: true}, 0},
		{"opposing cancel", []Action{ActionLeft, ActionRight}, Intent{MoveLeft: true, MoveRight: true}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			got := f.Intent()
			if got != tc.want {
				t.Errorf("Intent() = %+v, expected %+v", got, tc.want)
			}
			if got.Horizontal() != tc.dir {
				t.Errorf("Horizontal() = %v, expected %v", got.Horizontal(), tc.dir)
			}
		})
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.Set(ActionPause)
	f.Clear()

	if f.Has(ActionJump) || f.Has(ActionPause) {
		t.Error("Clear() should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionLeft)
	if !zero.Has(ActionLeft) {
		t.Error("Set() on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionJumpHold.String() != "JumpHold" {
		t.Errorf("String() = %q", ActionJumpHold.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("String() = %q", Action(99).String())
	}
}
