package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure worth another attempt. [Backoff.Retry]
// returns every other error immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff is a retry policy: up to Attempts calls, sleeping Delay after
// the first failure and twice as long after each further one.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used by [NewClient].
var DefaultBackoff = Backoff{Attempts: 3, Delay: 500 * time.Millisecond}

// Retry calls fn until it succeeds, fails with a non-retryable error, or
// the attempts run out. The last error is returned, or ctx.Err() if ctx is
// cancelled while waiting.
func (b Backoff) Retry(ctx context.Context, fn func(context.Context) error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(ctx); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			delay *= 2
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
