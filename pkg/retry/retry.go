package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultMaxRetries is the number of retries after the initial attempt
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the delay before the first retry
	DefaultBaseDelay = 500 * time.Millisecond
)

// Options configures a retried operation
type Options struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Total attempts = MaxRetries + 1.
	MaxRetries int

	// BaseDelay is the delay before the first retry. Each subsequent
	// retry doubles the delay (BaseDelay * 2^(attempt-1)).
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries. Zero means no cap.
	MaxDelay time.Duration

	// RetryIf decides whether an error is worth retrying. A nil
	// predicate retries every error. Non-retryable errors abort
	// immediately without waiting.
	RetryIf func(error) bool

	// OnRetry is invoked before each wait with the failed attempt's
	// error, the retry number (1-based) and the upcoming delay.
	// Purely informational, it cannot alter control flow.
	OnRetry func(err error, attempt int, delay time.Duration)
}

func (o Options) withDefaults() Options {
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.MaxDelay <= 0 {
		// Wide enough that the exponential schedule is never clipped
		// for realistic retry counts.
		o.MaxDelay = o.BaseDelay << 16
	}
	return o
}

// Do executes op with exponential backoff. The operation runs once and,
// on a retryable failure, is re-run up to MaxRetries more times. The
// final error is returned unwrapped. Cancelling ctx aborts any pending
// wait and returns ctx.Err().
//
// Concurrent calls are independent; Do holds no shared state.
func Do(ctx context.Context, opts Options, op func(ctx context.Context) error) error {
	opts = opts.withDefaults()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.BaseDelay
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = opts.MaxDelay
	b.MaxElapsedTime = 0
	b.Reset()

	operation := func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if opts.RetryIf != nil && !opts.RetryIf(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	attempt := 0
	notify := func(err error, delay time.Duration) {
		attempt++
		if opts.OnRetry != nil {
			opts.OnRetry(err, attempt, delay)
		}
	}

	return backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(opts.MaxRetries)), ctx),
		notify,
	)
}
