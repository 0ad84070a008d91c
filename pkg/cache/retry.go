package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a cache failure caused by the backend's transport
// rather than by the cached data. Network-backed caches wrap their
// errors with it so callers can tell an unreachable server from a
// corrupt entry.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks an error as transient. Backends wrap failures
// worth retrying (timeouts, dropped connections); everything else
// fails the operation immediately.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is marked transient.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryingCache retries transient failures with exponential backoff.
// Local backends never mark errors transient, so the wrapper only
// changes behavior for network-backed caches.
type retryingCache struct {
	inner    Cache
	attempts int
	delay    time.Duration
}

// WithRetry wraps a backend so operations failing with a transient
// error are attempted up to attempts times, doubling delay after each
// failure. The transient marker is stripped from the final error.
func WithRetry(inner Cache, attempts int, delay time.Duration) Cache {
	if attempts < 1 {
		attempts = 1
	}
	return &retryingCache{inner: inner, attempts: attempts, delay: delay}
}

func (c *retryingCache) Get(ctx context.Context, key string) (data []byte, found bool, err error) {
	err = c.retry(ctx, func() error {
		var opErr error
		data, found, opErr = c.inner.Get(ctx, key)
		return opErr
	})
	return data, found, err
}

func (c *retryingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.retry(ctx, func() error {
		return c.inner.Set(ctx, key, data, ttl)
	})
}

func (c *retryingCache) Delete(ctx context.Context, key string) error {
	return c.retry(ctx, func() error {
		return c.inner.Delete(ctx, key)
	})
}

func (c *retryingCache) Close() error {
	return c.inner.Close()
}

func (c *retryingCache) retry(ctx context.Context, fn func() error) error {
	delay := c.delay
	var lastErr error

	for i := 0; i < c.attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < c.attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}

	var re *RetryableError
	if errors.As(lastErr, &re) {
		return re.Err
	}
	return lastErr
}

// Ensure retryingCache implements Cache.
var _ Cache = (*retryingCache)(nil)
