package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionJump           // Space, W, Up - jump
	ActionDuck           // S, Down - duck / enter pipe
	ActionSprint         // Shift-style modifier (x) - hold to run fast
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
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
	case ActionDuck:
		return "Duck"
	case ActionSprint:
		return "Sprint"
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
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// Pressed actions are edge-triggered (new this frame); held actions persist
// while the platform's hold tracker keeps them alive. Terminals report no
// key-up events, so "held" is approximated by a short retention window fed
// by key auto-repeat.
type InputFrame struct {
	// Pressed maps actions to whether they were newly triggered this frame.
	Pressed map[Action]bool

	// Held maps actions to whether they are considered held down.
	Held map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Pressed: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as newly pressed (and therefore also held) this frame.
func (f *InputFrame) Set(a Action) {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Pressed[a] = true
	f.Held[a] = true
}

// Hold marks an action as held without a fresh press edge.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the given action was newly pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Pressed == nil {
		return false
	}
	return f.Pressed[a]
}

// IsHeld returns true if the given action is currently held.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Axis returns the horizontal input axis: -1 (left), 1 (right) or 0.
// Opposing directions cancel out.
func (f InputFrame) Axis() float64 {
	var axis float64
	if f.IsHeld(ActionLeft) {
		axis -= 1
	}
	if f.IsHeld(ActionRight) {
		axis += 1
	}
	return axis
}

// Clear resets all pressed and held actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Pressed {
		delete(f.Pressed, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
}

// ClearPressed resets only the edge-triggered actions, keeping holds alive.
func (f *InputFrame) ClearPressed() {
	for k := range f.Pressed {
		delete(f.Pressed, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Pressed {
		clone.Pressed[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
