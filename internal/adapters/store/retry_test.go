package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastRetry(attempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds after retryable failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), fastRetry(3), func(ctx context.Context, attempt int) error {
			calls++
			if attempt < 3 {
				return ErrUnavailable
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		boom := errors.New("access denied")
		err := WithRetry(context.Background(), fastRetry(5), func(ctx context.Context, attempt int) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error when attempts run out", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), fastRetry(4), func(ctx context.Context, attempt int) error {
			calls++
			return NewStoreError("Put", "causes", ErrUnavailable)
		})
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, 4, calls)
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, fastRetry(3), func(ctx context.Context, attempt int) error {
			t.Fatal("operation should not run")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCalculateDelay(t *testing.T) {
	c := &RetryConfig{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2,
	}

	assert.Equal(t, 100*time.Millisecond, c.calculateDelay(1))
	assert.Equal(t, 200*time.Millisecond, c.calculateDelay(2))
	assert.Equal(t, 400*time.Millisecond, c.calculateDelay(3))
	assert.Equal(t, time.Second, c.calculateDelay(10))

	c.JitterEnabled = true
	d := c.calculateDelay(1)
	assert.GreaterOrEqual(t, d, 100*time.Millisecond)
	assert.LessOrEqual(t, d, 110*time.Millisecond)
}
