package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoNonRetryableCallsOnce(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0

	err := Do(context.Background(), Options{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		RetryIf:    func(error) bool { return false },
	}, func(ctx context.Context) error {
		calls++
		return permanent
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsRetries(t *testing.T) {
	transient := errors.New("connection reset")
	calls := 0

	err := Do(context.Background(), Options{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
	}, func(ctx context.Context) error {
		calls++
		return transient
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, transient)
	// One initial try plus MaxRetries retries.
	assert.Equal(t, 4, calls)
}

func TestDoRecoversMidway(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
	}, func(ctx context.Context) error {
		calls++
		if calls < 4 {
			return errors.New("still failing")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestDoOnRetryObserver(t *testing.T) {
	var attempts []int
	var delays []time.Duration

	err := Do(context.Background(), Options{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		OnRetry: func(err error, attempt int, delay time.Duration) {
			attempts = append(attempts, attempt)
			delays = append(delays, delay)
		},
	}, func(ctx context.Context) error {
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, []int{1, 2}, attempts)
	require.Len(t, delays, 2)
	// Exponential schedule: base, then base*2.
	assert.Equal(t, time.Millisecond, delays[0])
	assert.Equal(t, 2*time.Millisecond, delays[1])
}

func TestDoContextCancelAbortsWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, Options{
			MaxRetries: 5,
			BaseDelay:  time.Hour, // never actually waited out
		}, func(ctx context.Context) error {
			calls++
			return errors.New("transient")
		})
	}()

	// Let the first attempt run, then cancel during the backoff wait.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, DefaultMaxRetries, opts.MaxRetries)
	assert.Equal(t, DefaultBaseDelay, opts.BaseDelay)
	assert.Greater(t, opts.MaxDelay, opts.BaseDelay)
}
