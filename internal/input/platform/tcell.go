package platform

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keystroke/internal/input/keystroke"
)

// namedKeys maps tcell keys to chord labels.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyEscape:     "escape",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pageup",
	tcell.KeyPgDn:       "pagedown",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPause:      "pause",
	tcell.KeyPrint:      "printscreen",
}

// labelKeys is the inverse of namedKeys. Backspace maps to the DEL code
// most terminals send.
var labelKeys = map[string]tcell.Key{
	"enter":       tcell.KeyEnter,
	"tab":         tcell.KeyTab,
	"backspace":   tcell.KeyBackspace2,
	"escape":      tcell.KeyEscape,
	"delete":      tcell.KeyDelete,
	"insert":      tcell.KeyInsert,
	"home":        tcell.KeyHome,
	"end":         tcell.KeyEnd,
	"pageup":      tcell.KeyPgUp,
	"pagedown":    tcell.KeyPgDn,
	"up":          tcell.KeyUp,
	"down":        tcell.KeyDown,
	"left":        tcell.KeyLeft,
	"right":       tcell.KeyRight,
	"pause":       tcell.KeyPause,
	"printscreen": tcell.KeyPrint,
}

// FromEventKey converts a terminal key event to a keystroke.
// It returns false for keys that have no chord label.
func FromEventKey(ev *tcell.EventKey) (keystroke.Keystroke, bool) {
	if ev == nil {
		return keystroke.Keystroke{}, false
	}

	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		return fromRune(ev.Rune(), mods), true
	case k == tcell.KeyBacktab:
		mods.Shift = true
		return keystroke.New(mods, "tab"), true
	case k == tcell.KeyCtrlSpace:
		mods.Control = true
		return keystroke.New(mods, "space"), true
	}

	if label, ok := namedKeys[k]; ok {
		return keystroke.New(mods, label), true
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF64 {
		return keystroke.New(mods, fmt.Sprintf("f%d", k-tcell.KeyF1+1)), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		mods.Control = true
		return keystroke.New(mods, string(rune('a'+k-tcell.KeyCtrlA))), true
	}

	return keystroke.Keystroke{}, false
}

// fromRune builds a keystroke for a typed character.
func fromRune(r rune, mods keystroke.Modifiers) keystroke.Keystroke {
	label := string(r)
	if r == ' ' {
		label = "space"
	} else if unicode.IsUpper(r) {
		label = string(unicode.ToLower(r))
		mods.Shift = true
	}

	ks := keystroke.New(mods, label)
	if mods.Control || mods.Alt || mods.Command {
		return ks
	}
	return ks.WithIMEKey(string(r))
}

// ToEventKey converts a keystroke to a synthetic terminal key event.
// It returns nil for keys the terminal cannot express.
func ToEventKey(ks keystroke.Keystroke) *tcell.EventKey {
	mod := convertToTcellMod(ks.Modifiers)

	if ks.Key == "tab" && ks.Modifiers.Shift && !ks.Modifiers.Control && !ks.Modifiers.Alt && !ks.Modifiers.Command {
		return tcell.NewEventKey(tcell.KeyBacktab, 0, mod)
	}
	if k, ok := labelKeys[ks.Key]; ok {
		return tcell.NewEventKey(k, 0, mod)
	}
	var n int
	if _, err := fmt.Sscanf(ks.Key, "f%d", &n); err == nil && n >= 1 && n <= 64 && ks.Key == fmt.Sprintf("f%d", n) {
		return tcell.NewEventKey(tcell.KeyF1+tcell.Key(n-1), 0, mod)
	}

	text := ks.Key
	if ime, ok := ks.IME(); ok {
		text = ime
	} else if ks.Key == "space" {
		text = " "
	}
	if utf8.RuneCountInString(text) != 1 {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(text)
	if _, ok := ks.IME(); !ok && ks.Modifiers.Shift {
		// Terminals report shift on letters through the rune's case.
		r = unicode.ToUpper(r)
	}
	return tcell.NewEventKey(tcell.KeyRune, r, mod)
}

// convertMod converts tcell modifiers to keystroke modifiers.
func convertMod(m tcell.ModMask) keystroke.Modifiers {
	return keystroke.Modifiers{
		Control: m&tcell.ModCtrl != 0,
		Alt:     m&tcell.ModAlt != 0,
		Shift:   m&tcell.ModShift != 0,
		Command: m&tcell.ModMeta != 0,
	}
}

// convertToTcellMod converts keystroke modifiers to tcell modifiers.
// The function modifier has no terminal equivalent and is dropped.
func convertToTcellMod(m keystroke.Modifiers) tcell.ModMask {
	var mask tcell.ModMask
	if m.Control {
		mask |= tcell.ModCtrl
	}
	if m.Alt {
		mask |= tcell.ModAlt
	}
	if m.Shift {
		mask |= tcell.ModShift
	}
	if m.Command {
		mask |= tcell.ModMeta
	}
	return mask
}
