package main

import "fmt"

// Exit codes for the collisionmap CLI.
const (
	ExitOK      = 0 // Clean shutdown.
	ExitFailure = 1 // Bad configuration, unreadable source, or server error.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		msg = "collisionmap: error"
	}
	return &exitCodeError{code: code, msg: msg}
}
