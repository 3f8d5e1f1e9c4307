// Package config loads the keystroke tool configuration.
//
// Settings come from a TOML file and are then overridden by environment
// variables:
//
//	[keymap]
//	path = "~/.config/keystroke/keymap.toml"
//	context = "editor"
//
//	[input]
//	simulate_ime = true
//
//	[logging]
//	level = "debug"
//
// Environment overrides: KEYSTROKE_KEYMAP, KEYSTROKE_CONTEXT,
// KEYSTROKE_SIMULATE_IME and KEYSTROKE_LOG_LEVEL.
package config
