package keystroke

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// keyGlyphs are the named keys rendered as a single symbol.
var keyGlyphs = map[string]string{
	"backspace": "⌫",
	"up":        "↑",
	"down":      "↓",
	"left":      "←",
	"right":     "→",
	"tab":       "⇥",
	"escape":    "⎋",
}

// String renders k for menus and tooltips, e.g. "^S", "⌘⇧P", "⌫".
// The function modifier has no glyph. The result is not parseable; use Spec
// for that.
func (k Keystroke) String() string {
	var b strings.Builder
	if k.Modifiers.Control {
		b.WriteByte('^')
	}
	if k.Modifiers.Alt {
		b.WriteString("⌥")
	}
	if k.Modifiers.Command {
		b.WriteString("⌘")
	}
	if k.Modifiers.Shift {
		b.WriteString("⇧")
	}

	if glyph, ok := keyGlyphs[k.Key]; ok {
		b.WriteString(glyph)
		return b.String()
	}
	if len(k.Key) == 1 {
		c := k.Key[0]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
		return b.String()
	}
	b.WriteString(k.Key)
	return b.String()
}

// DisplayWidth returns the number of terminal cells String occupies.
func (k Keystroke) DisplayWidth() int {
	return runewidth.StringWidth(k.String())
}
