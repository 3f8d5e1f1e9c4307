package keystroke

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// textlessKeys never produce IME text.
var textlessKeys = map[string]bool{
	"up":        true,
	"down":      true,
	"left":      true,
	"right":     true,
	"pageup":    true,
	"pagedown":  true,
	"home":      true,
	"end":       true,
	"delete":    true,
	"escape":    true,
	"backspace": true,
	"f1":        true,
	"f2":        true,
	"f3":        true,
	"f4":        true,
	"f5":        true,
	"f6":        true,
	"f7":        true,
	"f8":        true,
	"f9":        true,
	"f10":       true,
	"f11":       true,
	"f12":       true,
}

// WithSimulatedIME returns a copy with the IME text filled in as a real IME
// would have, so that scripted input like "space" or "shift-a" inserts text.
//
// Keystrokes that already carry IME text, or that hold command, control,
// function or alt, are returned unchanged: those chords bypass the IME.
func (k Keystroke) WithSimulatedIME() Keystroke {
	if k.HasIMEKey {
		return k
	}
	m := k.Modifiers
	if m.Command || m.Control || m.Function || m.Alt {
		return k
	}

	switch k.Key {
	case "space":
		return k.WithIMEKey(" ")
	case "tab":
		return k.WithIMEKey("\t")
	case "enter":
		return k.WithIMEKey("\n")
	}
	if textlessKeys[k.Key] {
		return k
	}
	if m.Shift {
		// cases.Caser is stateful, so one is built per call.
		return k.WithIMEKey(cases.Upper(language.Und).String(k.Key))
	}
	return k.WithIMEKey(k.Key)
}
