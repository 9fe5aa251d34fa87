package shell

import (
	"errors"
	"fmt"
)

// ExitError carries the exit code of the shell and, for failed runs,
// the error that caused it.
type ExitError struct {
	ExitCode int
	Err      error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shell exited with %d: %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("shell exited with %d", e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(exitCode int) *ExitError {
	return &ExitError{ExitCode: exitCode}
}

// NewFailedExitError returns an ExitError with exit code 1 caused by err.
func NewFailedExitError(err error) *ExitError {
	return &ExitError{ExitCode: 1, Err: err}
}

func IsExitError(err error) bool {
	if err == nil {
		return false
	}

	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// ExitCode returns the exit code carried by err, 0 for nil and 1 for
// any error that is not an ExitError.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}

	return 1
}
