package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit statuses.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3
	ExitErrorConfig   = 4   // bad flag, env value or out-of-domain input
	ExitErrorCanceled = 130 // SIGINT convention
)

// ConfigError is a user mistake in flags or environment values.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a printf-style message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError marks a failure that happened inside a calculator.
// The cause stays reachable through errors.Is and errors.As.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError is a deadline failure tagged with the operation that hit it
// and the configured limit. It unwraps to context.DeadlineExceeded.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

func (TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// AsTimeout turns a deadline failure of operation into a TimeoutError
// carrying limit. Any other error, nil included, is returned as is.
func AsTimeout(err error, operation string, limit time.Duration) error {
	var timeoutErr TimeoutError
	if !errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr) {
		return err
	}
	return TimeoutError{Operation: operation, Limit: limit}
}

// ValidationError rejects an input that parsed fine but lies outside what
// the chosen operation accepts, such as n above an algorithm's limit.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports two algorithms that produced different values for
// the same input.
type MismatchError struct {
	N         uint64
	Reference string
	Other     string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch for n=%d: %s disagrees with %s", e.N, e.Other, e.Reference)
}

// WrapError prefixes err with a formatted message, keeping it in the chain.
// A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
