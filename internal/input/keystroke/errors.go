package keystroke

import "errors"

// ErrInvalidKeystroke is matched by every error returned from Parse.
var ErrInvalidKeystroke = errors.New("invalid keystroke")

// ParseError reports a chord that could not be parsed.
type ParseError struct {
	// Source is the text that was rejected, verbatim.
	Source string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "Invalid keystroke: " + e.Source
}

// Is reports whether target is ErrInvalidKeystroke.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidKeystroke
}
