package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used when printing errors.
// It keeps this package independent of the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// NoColor is a ColorProvider that emits no escape sequences.
type NoColor struct{}

func (NoColor) Red() string    { return "" }
func (NoColor) Yellow() string { return "" }
func (NoColor) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing anything.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		configErr     ConfigError
		validationErr ValidationError
		mismatchErr   MismatchError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	}
	return ExitErrorGeneric
}

// HandleCalculationError prints a user-facing description of err and returns
// the matching exit code. A nil error returns ExitSuccess and prints nothing.
//
// Parameters:
//   - err: The error returned by a calculation.
//   - duration: Time spent before the failure (0 if unknown).
//   - out: The writer receiving the message.
//   - colors: Escape sequences for highlighting.
//
// Returns:
//   - int: The exit code for the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = NoColor{}
	}

	code := ExitCodeFor(err)
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}

	switch code {
	case ExitErrorTimeout:
		limit := ""
		var timeoutErr TimeoutError
		if errors.As(err, &timeoutErr) {
			limit = fmt.Sprintf(" of %s for %s", timeoutErr.Limit, timeoutErr.Operation)
		}
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit%s was reached%s.%s\n",
			colors.Red(), limit, suffix, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user%s.%s\n", colors.Yellow(), suffix, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sStatus: Invalid input. %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. An unexpected error occurred: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
