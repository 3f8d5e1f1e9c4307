// Package lua runs Lua scripts that build and inspect keystrokes.
//
// Scripts see a global "keystroke" module:
//
//	local ks, err = keystroke.parse("alt-s->ß")
//	print(ks.key, ks.ime_key, ks.alt)         -- s  ß  true
//	for _, c in ipairs(keystroke.candidates(ks)) do
//	    print(c)                                -- ß, then alt-s
//	end
//	print(keystroke.display("cmd-shift-p"))   -- ⌘⇧P
//	print(keystroke.spec(keystroke.simulate_ime("shift-a")))  -- shift-a->A
//	print(keystroke.match("cmd-s", "editor")) -- file.save, when a keymap is attached
//
// Functions taking a keystroke accept either a chord string or a table with
// fields ctrl, alt, shift, cmd, fn, key and ime_key.
//
// Only the base, table, string and math libraries are opened.
package lua
