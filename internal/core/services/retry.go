package services

import (
	"context"
	"time"
)

// withRetry runs fn up to attempts times with a fixed delay between tries,
// honoring context cancellation. Transient external-service errors get a
// second chance; the last error is returned once attempts are exhausted.
func withRetry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

const (
	// External calls are retried once, matching the product's original
	// two-tries-one-second policy.
	retryAttempts = 2
	retryDelay    = time.Second
)
