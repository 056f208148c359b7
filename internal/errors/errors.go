package errors

import (
	"github.com/cockroachdb/errors"
)

// Exit codes used by the CLI.
const (
	ExitSuccess = 0
	ExitUser    = 1
	ExitSystem  = 2
)

// Re-exported helpers from cockroachdb/errors. Keeping a single import
// point lets the rest of the codebase say `errors.Wrap` without caring
// which library sits underneath.
var (
	New    = errors.New
	Newf   = errors.Newf
	Errorf = errors.Errorf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// ExitError carries a process exit code alongside the underlying error,
// plus an optional suggestion shown to the user on stderr.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewUserError wraps err as a user-correctable failure (exit code 1).
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError wraps err as an environment or internal failure
// (exit code 2).
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError wraps a configuration problem with a pointer at the
// offending file. Configuration problems are user errors.
func NewConfigError(err error, configPath string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Check your configuration file: " + configPath,
	}
}

// ExitCode extracts the exit code from err. Errors that do not carry an
// ExitError default to ExitSystem; nil means success.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSystem
}
