package router

import "errors"

// ErrMissingArgument is returned when a command is called with too few arguments.
var ErrMissingArgument = errors.New("missing argument")

// ErrCheckFailed is returned by checks denying an invocation without telling the user.
var ErrCheckFailed = errors.New("check failed")

// DenialError is returned by checks denying an invocation with a message for the user.
type DenialError struct {
	Reason string
}

// Error stringifies the error.
func (e DenialError) Error() string {
	return "denied: " + e.Reason
}
