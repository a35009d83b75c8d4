package retry

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Use this type to signal transient failures like network timeouts,
// temporary DNS resolution failures, or a backend that hasn't finished
// starting up yet.
//
// Prefer using the [Retryable] helper function for convenience:
//
//	if err := client.Ping(ctx); err != nil {
//	    return retry.Retryable(err)
//	}
//
// RetryableError implements error unwrapping, so errors.Is and errors.As
// work correctly with the wrapped error.
type RetryableError struct{ Err error }

// Retryable wraps an error as a [RetryableError], signaling to [Retry]
// that this failure should trigger a retry attempt. Returns nil if err is
// nil, allowing safe use in error returns.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error, enabling errors.Is and errors.As
// to inspect the underlying cause.
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times with exponential backoff.
//
// Only errors wrapped with [RetryableError] trigger a retry; all other
// errors are returned immediately. Between retries, Retry waits for delay,
// then doubles the delay for the next attempt (1s, 2s, 4s, etc.). If ctx is
// cancelled during a retry delay, Retry returns ctx.Err() immediately.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is a convenience wrapper around [Retry] with sensible
// defaults: up to 3 attempts with exponential backoff starting at 1 second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
