package main

import (
	"errors"
	"fmt"
	"io"
)

// Exit codes.
const (
	ExitSuccess    = 0
	ExitNoMatch    = 1 // eval found no matching record
	ExitInputError = 2
)

// exitError attaches an exit code to an error. A nil err exits without a message.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func inputError(err error) error {
	return &exitError{code: ExitInputError, err: err}
}

var errNoMatch = &exitError{code: ExitNoMatch}

// exitCode reports err on stderr and maps it to an exit code.
// Errors without a code, such as cobra flag errors, are input errors.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitInputError
}
