package keystroke

import "fmt"

// Keystroke is a key press together with the modifier state and, optionally,
// the text the IME inserted for it.
//
// Keystroke is comparable. Two keystrokes with the same modifiers and key
// but different IME text are not equal.
type Keystroke struct {
	// Modifiers is the state of the modifier keys when the key was pressed.
	Modifiers Modifiers

	// Key is the label printed on the key that was pressed.
	// For option-s, Key is "s".
	Key string

	// IMEKey is the text the IME inserted for the press. It is only
	// meaningful when HasIMEKey is set. For option-s, IMEKey is "ß".
	IMEKey string

	// HasIMEKey reports whether IMEKey is present.
	HasIMEKey bool
}

// New creates a keystroke without IME text.
func New(mods Modifiers, key string) Keystroke {
	return Keystroke{Modifiers: mods, Key: key}
}

// IME returns the IME text and whether it is present.
func (k Keystroke) IME() (string, bool) {
	return k.IMEKey, k.HasIMEKey
}

// WithIMEKey returns a copy with the IME text set to s.
func (k Keystroke) WithIMEKey(s string) Keystroke {
	k.IMEKey = s
	k.HasIMEKey = true
	return k
}

// WithoutIMEKey returns a copy with the IME text cleared.
func (k Keystroke) WithoutIMEKey() Keystroke {
	k.IMEKey = ""
	k.HasIMEKey = false
	return k
}

// Spec encodes k in the chord grammar accepted by Parse.
//
// Parse(k.Spec()) == k for every keystroke whose key is "-" or contains no
// hyphen and is not itself a modifier name, and whose IME text (if any)
// contains no hyphen.
func (k Keystroke) Spec() string {
	s := k.Modifiers.spec() + k.Key
	if k.HasIMEKey {
		s += "->" + k.IMEKey
	}
	return s
}

// GoString implements fmt.GoStringer for debugging.
func (k Keystroke) GoString() string {
	if k.HasIMEKey {
		return fmt.Sprintf("Keystroke{Modifiers: %+v, Key: %q, IMEKey: %q}", k.Modifiers, k.Key, k.IMEKey)
	}
	return fmt.Sprintf("Keystroke{Modifiers: %+v, Key: %q}", k.Modifiers, k.Key)
}
