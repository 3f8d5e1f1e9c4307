package keystroke

// Modifiers is the state of the modifier keys at the time of a key press.
// The zero value has no modifier pressed.
type Modifiers struct {
	// Control is the control key.
	Control bool

	// Alt is the alt key, option on macOS. Sometimes called meta.
	Alt bool

	// Shift is the shift key.
	Shift bool

	// Command is the command key on macOS and the windows key on Windows.
	Command bool

	// Function is the fn key.
	Function bool
}

// NoModifiers returns Modifiers with nothing pressed.
func NoModifiers() Modifiers {
	return Modifiers{}
}

// CommandModifier returns Modifiers with just command pressed.
func CommandModifier() Modifiers {
	return Modifiers{Command: true}
}

// ShiftModifier returns Modifiers with just shift pressed.
func ShiftModifier() Modifiers {
	return Modifiers{Shift: true}
}

// CommandShiftModifiers returns Modifiers with command and shift pressed.
func CommandShiftModifiers() Modifiers {
	return Modifiers{Command: true, Shift: true}
}

// Modified returns true if any modifier key is pressed.
func (m Modifiers) Modified() bool {
	return m.Control || m.Alt || m.Shift || m.Command || m.Function
}

// spec writes the grammar prefix for m, e.g. "ctrl-shift-".
func (m Modifiers) spec() string {
	var s string
	if m.Control {
		s += "ctrl-"
	}
	if m.Alt {
		s += "alt-"
	}
	if m.Shift {
		s += "shift-"
	}
	if m.Command {
		s += "cmd-"
	}
	if m.Function {
		s += "fn-"
	}
	return s
}
