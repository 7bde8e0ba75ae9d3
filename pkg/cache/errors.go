package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable reports a Redis cache or a network-backed store that
	// could not be reached.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrCacheMiss reports a query result that is not cached.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a failure worth another attempt, such as a Redis
// or MongoDB timeout.
type RetryableError struct{ Err error }

// Retryable marks err for RetryWithBackoff. A nil err stays nil, so a call
// result can be passed straight through.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, waiting one and then two
// seconds between attempts. Only errors marked with Retryable are retried.
// The stores use it to connect and to load snapshots.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return retryWithBackoff(ctx, time.Second, fn)
}

func retryWithBackoff(ctx context.Context, delay time.Duration, fn func() error) error {
	const attempts = 3
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
