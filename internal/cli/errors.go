package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// exitError attaches an exit code to an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError reports bad input: a malformed argument, a missing selection,
// or an id the inventory does not know.
func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// sysError reports a failure outside the user's control.
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps err to a process exit code. Storage failures are system
// errors; anything else unclassified, including cobra argument errors, is a
// user error.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, types.ErrStorageUnavailable) || errors.Is(err, types.ErrQueryFailure) || errors.Is(err, types.ErrDetached) {
		return exitSysError
	}
	return exitUserError
}
