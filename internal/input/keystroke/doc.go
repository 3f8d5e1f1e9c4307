// Package keystroke models a single key press and the text an input method
// produced for it.
//
// A Keystroke carries the modifier state, the literal key label reported by
// the keyboard layout ("s", "space", "f5") and, optionally, the string the
// IME composed for the same press ("ß" for option-s on a US Mac layout).
//
// # Chord Grammar
//
// Keystrokes are written in configuration files as hyphen separated chords:
//
//	[ctrl-][alt-][shift-][cmd-][fn-]key[->ime_key]
//
// Examples:
//
//	"ctrl-s"       - Control+S
//	"cmd-shift-p"  - Command+Shift+P
//	"a->å"         - key a that composed to å
//	"-"            - the hyphen key itself
//	"ctrl--"       - Control+hyphen
//
// # Match Candidates
//
// A resolver cannot know whether a binding was written against the literal
// key or the composed character. MatchCandidates returns every shape worth
// trying, the IME interpretation first:
//
//	ks := keystroke.MustParse("alt-s->ß")
//	for _, c := range ks.MatchCandidates() {
//	    // "ß", then "alt-s"
//	}
package keystroke
