package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - run left
	ActionRight           // D, Right arrow - run right
	ActionJump            // Space, W, Up - jump pressed this frame
	ActionJumpHold        // jump key still held from an earlier frame
	ActionConfirm         // Enter - start / continue / next level
	ActionBack            // Escape - back to menu
	ActionRestart         // R - restart level after game over
	ActionQuit            // Q, Ctrl+C - exit
	ActionPause           // P - pause/unpause
	ActionLoad            // L - load saved game from the menu
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionJumpHold:
		return "JumpHold"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionLoad:
		return "Load"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions active during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Intent converts the frame into the per-tick movement intents consumed by
// the simulation. A fresh jump press also counts as held.
func (f InputFrame) Intent() Intent {
	return Intent{
		MoveLeft:    f.Has(ActionLeft),
		MoveRight:   f.Has(ActionRight),
		JumpPressed: f.Has(ActionJump),
		JumpHeld:    f.Has(ActionJump) || f.Has(ActionJumpHold),
	}
}

// Intent is the player's movement input for one tick.
type Intent struct {
	MoveLeft    bool
	MoveRight   bool
	JumpPressed bool // edge: pressed this tick
	JumpHeld    bool // level: held this tick
}

// Horizontal returns -1, 0 or 1. Opposing directions cancel.
func (i Intent) Horizontal() float64 {
	var dir float64
	if i.MoveLeft {
		dir--
	}
	if i.MoveRight {
		dir++
	}
	return dir
}
