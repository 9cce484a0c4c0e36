// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// simulation, engine-contract violations, etc.) and for carrying the
// underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types that wrap a cause implement the Unwrap() method to support
// errors.Is() and errors.As().
package apperrors

import (
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorCounts   = 3   // Indicates an engine contract violation in the counts.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input (m < 1, an unknown oracle variant, a non-positive shot count).
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
	// Cause is an optional underlying sentinel or error.
	Cause error
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// Unwrap returns the underlying cause, enabling errors.Is/errors.As.
func (e ConfigError) Unwrap() error { return e.Cause }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// WrapConfigError creates a ConfigError around an existing sentinel so that
// callers can match either the sentinel (errors.Is) or the error class
// (errors.As).
//
// Parameters:
//   - cause: The underlying sentinel error.
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError wrapping the cause.
func WrapConfigError(cause error, format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...), Cause: cause}
}

// SimulationError encapsulates a failure reported by the simulation engine
// while preserving the original cause. Per the algorithm's single-query
// design, engine failures are never retried; they propagate to the caller
// unchanged inside this wrapper.
type SimulationError struct {
	// Cause is the underlying error reported by the engine.
	Cause error
}

// Error returns a descriptive message including the underlying cause.
func (e SimulationError) Error() string {
	return fmt.Sprintf("simulation failed: %v", e.Cause)
}

// Unwrap returns the underlying cause, enabling errors.Is/errors.As.
func (e SimulationError) Unwrap() error { return e.Cause }

// NewSimulationError wraps an engine failure in a SimulationError.
func NewSimulationError(cause error) error {
	return SimulationError{Cause: cause}
}

// CountsError signals a violation of the simulation-engine contract in the
// measurement-outcome counts: totals that do not sum to the requested shot
// count, bit-strings of unexpected length, or non-binary characters.
// These are treated as fatal and are never silently tolerated.
type CountsError struct {
	// Message explains which part of the contract was violated.
	Message string
}

// Error returns the error message for a CountsError.
func (e CountsError) Error() string { return e.Message }

// NewCountsError creates a new CountsError with a formatted message.
func NewCountsError(format string, a ...any) error {
	return CountsError{Message: fmt.Sprintf(format, a...)}
}

// ServerError represents a failure in the HTTP server layer, wrapping the
// underlying cause for inspection.
type ServerError struct {
	// Message describes the server operation that failed.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns a descriptive message including the underlying cause.
func (e ServerError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying cause, enabling errors.Is/errors.As.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError wrapping the given cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}
