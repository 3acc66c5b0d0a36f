// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Batch job errors.
var (
	// ErrJobAlreadyRunning indicates another instance holds the batch job lock.
	ErrJobAlreadyRunning = errors.New("job already running")
)

// External collaborator errors.
var (
	// ErrProviderUnavailable indicates no event-search provider is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrCircuitBreakerOpen indicates the circuit breaker has tripped and requests are blocked.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")

	// ErrMalformedResponse indicates a verifier response did not match the wire format.
	ErrMalformedResponse = errors.New("malformed verifier response")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
