package domain

import (
	"errors"
	"strconv"
)

// ExitError carries a process exit status alongside the underlying failure.
type ExitError struct {
	Code int
	Err  error
}

// Error implements error.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying failure.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeOf extracts an exit status from anywhere in err's chain.
func ExitCodeOf(err error) (int, bool) {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), true
	}
	return 0, false
}
