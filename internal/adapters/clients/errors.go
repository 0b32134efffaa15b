// Package clients provides the instrumented HTTP client used to talk to the
// notifier daemon.
package clients

import "errors"

// Client errors are infrastructure failures; the acl package translates them
// to domain errors before they reach the application layer.
var (
	// ErrCircuitOpen is returned while the circuit breaker is blocking
	// requests to an unhealthy downstream.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded is returned after every retry attempt failed.
	// The last attempt's error is wrapped for context.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
