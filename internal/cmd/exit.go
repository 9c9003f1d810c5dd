// Package cmd implements the tcore CLI's command tree: flag parsing,
// configuration bootstrap, and the exit-code mapping every command
// returns through.
package cmd

import (
	"errors"
	"os"

	"github.com/glitchwizard/tcore/internal/config"
	tcerrors "github.com/glitchwizard/tcore/internal/errors"
)

// Exit codes returned by the tcore binary.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitValidationError = 2
	ExitNotFound        = 3
)

// ExitError pairs an error with the exit code it should produce, for
// commands that need to report something more specific than "general
// error".
type ExitError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with an explicit exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError maps an error to the exit code the CLI should
// terminate with: an explicit *ExitError wins, a config.ValidationErrors
// maps to ExitValidationError, a tcerrors.ErrNotFound maps to
// ExitNotFound, everything else is ExitGeneralError.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		return ExitValidationError
	}

	if errors.Is(err, tcerrors.ErrNotFound) {
		return ExitNotFound
	}

	return ExitGeneralError
}

// ExitCodeName renders code as a short label, for diagnostics.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// Exit terminates the process with the exit code appropriate for err.
func Exit(err error) {
	os.Exit(ExitCodeFromError(err))
}
