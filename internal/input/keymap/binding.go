package keymap

import (
	"github.com/dshills/keystroke/internal/input/keystroke"
)

// Binding maps a chord to an action.
type Binding struct {
	// Keys is the chord that triggers this binding, e.g. "cmd-shift-p".
	Keys string

	// Action is the command to execute, e.g. "file.save".
	Action string

	// Context restricts the binding to one context. Empty means global.
	Context string

	// Description provides documentation for the binding.
	Description string
}

// NewBinding creates a global binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithContext sets the context for this binding.
func (b Binding) WithContext(context string) Binding {
	b.Context = context
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// ParsedBinding is a binding with its chord parsed.
type ParsedBinding struct {
	Binding

	// Keystroke is the parsed chord with any IME text removed, the shape
	// match candidates are compared against.
	Keystroke keystroke.Keystroke
}

// Glyphs renders the binding's chord for menus, e.g. "⌘⇧P".
func (pb ParsedBinding) Glyphs() string {
	return pb.Keystroke.String()
}
