// Package keymap loads keybinding tables and matches key presses against
// them.
//
// Bindings are written with the keystroke chord grammar and grouped by
// context. Context "" is global and applies everywhere.
//
// # Matching
//
// A press is matched by trying each of its match candidates in order. For a
// press with IME text the composed character is tried before the literal
// key, so on a layout where option-s types "ß" a binding for "ß" wins over
// one for "alt-s". For the same candidate, a binding in the requested
// context wins over a global one.
//
// # Files
//
// Keymaps can be written as TOML, YAML or JSON:
//
//	name = "user"
//
//	[[bindings]]
//	keys = "cmd-s"
//	action = "file.save"
//
//	[[bindings]]
//	keys = "ctrl--"
//	action = "view.zoomOut"
//	context = "editor"
//
// A file with any invalid chord is rejected as a whole.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	km, err := keymap.LoadFile("keymap.toml")
//	if err != nil {
//	    return err
//	}
//	if err := registry.Register(km); err != nil {
//	    return err
//	}
//	if b, ok := registry.Match(press, "editor"); ok {
//	    // run b.Action
//	}
package keymap
