package store

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures retry behavior for store writes
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterEnabled bool
}

// DefaultRetryConfig returns the retry configuration used for batch writes
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   5,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// RetryableOperation represents an operation that can be retried
type RetryableOperation func(ctx context.Context, attempt int) error

// IsRetryable reports whether err marks a temporary condition
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// WithRetry runs op until it succeeds, fails with a non-retryable error, or
// runs out of attempts. The last error is returned.
func WithRetry(ctx context.Context, config *RetryConfig, op RetryableOperation) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= config.MaxAttempts || !IsRetryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.calculateDelay(attempt)):
		}
	}

	return lastErr
}

// calculateDelay returns initial_delay * backoff_factor^(attempt-1), capped at
// MaxDelay, plus up to 10% jitter
func (c *RetryConfig) calculateDelay(attempt int) time.Duration {
	delay := float64(c.InitialDelay) * math.Pow(c.BackoffFactor, float64(attempt-1))

	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	if c.JitterEnabled {
		delay += rand.Float64() * 0.1 * delay
	}

	return time.Duration(delay)
}
