package keymap

import (
	"errors"
	"fmt"
)

// Errors returned by keymap operations.
var (
	// ErrEmptyAction indicates a binding without an action.
	ErrEmptyAction = errors.New("empty action")

	// ErrNilKeymap indicates an attempt to register a nil keymap.
	ErrNilKeymap = errors.New("nil keymap")

	// ErrUnknownFormat indicates a keymap file with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown keymap format")
)

// BindingError reports an invalid binding within a keymap.
type BindingError struct {
	// Index is the position of the binding in the keymap.
	Index int
	// Keys is the chord as written.
	Keys string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return fmt.Sprintf("binding %d (%s): %v", e.Index, e.Keys, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindingError) Unwrap() error {
	return e.Err
}
