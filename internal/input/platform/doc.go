// Package platform converts terminal key events into keystrokes.
//
// The terminal reports either a named key (tcell.KeyF5, tcell.KeyUp) or a
// rune. Runes typed without control, alt or meta are treated as IME output:
// the keystroke's key is the unshifted label and its IME text is the rune
// that was inserted, so "A" arrives as shift-a with IME text "A".
package platform
