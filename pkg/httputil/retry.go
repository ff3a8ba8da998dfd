package httputil

import (
	"context"
	"errors"
	"time"
)

// maxDelay caps the backoff between two attempts.
const maxDelay = 5 * time.Second

// RetryableError marks a failure worth another attempt, such as a refused
// connection or a 5xx response. Any other error ends [Retry] at once.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn until it succeeds, returns a non-retryable error, or
// attempts run out. The wait starts at delay and doubles up to maxDelay.
// Cancelling ctx during a wait returns ctx.Err(); otherwise the last
// error from fn is returned.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for n := 1; ; n++ {
		if err = fn(); err == nil || !isRetryable(err) || n >= attempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay = min(delay*2, maxDelay)
	}
}

func isRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}
