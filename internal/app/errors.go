package app

import "errors"

// Session errors.
var (
	// ErrQuit signals that an interactive command should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrInitialization indicates a session could not be set up.
	ErrInitialization = errors.New("initialization failed")

	// ErrNoUserKeymap indicates an operation needs a user keymap file but
	// none is configured.
	ErrNoUserKeymap = errors.New("no user keymap configured")
)
