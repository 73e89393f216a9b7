package cancellation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stayease/pkg/logger"
	"stayease/pkg/retry"
)

// State is the orchestration state of one cancellation attempt
type State string

const (
	StateIdle                State = "IDLE"
	StateReasonSelected      State = "REASON_SELECTED"
	StateConfirmationPending State = "CONFIRMATION_PENDING"
	StateSubmitting          State = "SUBMITTING"
	StateSucceeded           State = "SUCCEEDED"
	StateFailed              State = "FAILED"
)

// BookingStore is notified once a cancellation succeeds. The booking record
// itself is owned elsewhere; the orchestrator only requests the mutation.
type BookingStore interface {
	MarkCancelled(ctx context.Context, bookingID string) error
}

// Orchestrator drives a single booking through the cancellation flow:
// reason selection, explicit confirmation, provider submission with
// retries, then success or failure. The zero value is not usable;
// construct with NewOrchestrator.
//
// Failures leave the booking untouched and the flow fully re-triable.
// The only observable side effect happens on success, when the booking
// store is told to mark the booking cancelled.
type Orchestrator struct {
	mu        sync.Mutex
	state     State
	bookingID string
	reason    string
	comments  string
	lastErr   *BookingError
	result    *CancellationResult

	adapter   ProviderAdapter
	store     BookingStore
	retryOpts retry.Options
	log       *logger.Logger
}

// NewOrchestrator creates an orchestrator for one booking
func NewOrchestrator(bookingID string, adapter ProviderAdapter, store BookingStore, retryOpts retry.Options, log *logger.Logger) *Orchestrator {
	o := &Orchestrator{
		state:     StateIdle,
		bookingID: bookingID,
		adapter:   adapter,
		store:     store,
		retryOpts: retryOpts,
		log:       log,
	}
	if o.retryOpts.RetryIf == nil {
		o.retryOpts.RetryIf = IsRetryable
	}
	return o
}

// State returns the current orchestration state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastError returns the classified error from the most recent failure
func (o *Orchestrator) LastError() *BookingError {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Result returns the provider result after a successful submission
func (o *Orchestrator) Result() *CancellationResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// SelectReason records the cancellation reason. An empty reason is a
// validation error and blocks any further progress.
func (o *Orchestrator) SelectReason(reason, comments string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateIdle && o.state != StateReasonSelected && o.state != StateFailed {
		return fmt.Errorf("cannot select reason in state %s", o.state)
	}

	if reason == "" {
		o.lastErr = NewBookingError(ErrKindValidation, "A cancellation reason is required.", false)
		return o.lastErr
	}

	o.reason = reason
	o.comments = comments
	o.state = StateReasonSelected
	o.lastErr = nil
	return nil
}

// Confirm moves to the confirmation step. Selecting a reason alone never
// cancels anything; the caller must confirm explicitly.
func (o *Orchestrator) Confirm() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateReasonSelected {
		return fmt.Errorf("cannot confirm in state %s", o.state)
	}

	o.state = StateConfirmationPending
	return nil
}

// Back returns from the confirmation step without side effects
func (o *Orchestrator) Back() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateConfirmationPending {
		return fmt.Errorf("cannot go back in state %s", o.state)
	}

	o.state = StateReasonSelected
	return nil
}

// Reset returns the orchestrator to Idle so the flow can start over
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = StateIdle
	o.reason = ""
	o.comments = ""
	o.lastErr = nil
	o.result = nil
}

// Submit calls the provider to cancel the reservation, retrying transient
// failures. On success the booking store is notified and the result is
// returned; on failure the classified error is surfaced and nothing is
// written locally.
func (o *Orchestrator) Submit(ctx context.Context) (*CancellationResult, error) {
	o.mu.Lock()
	if o.state != StateConfirmationPending {
		state := o.state
		o.mu.Unlock()
		return nil, fmt.Errorf("cannot submit in state %s", state)
	}
	o.state = StateSubmitting
	bookingID, reason, comments := o.bookingID, o.reason, o.comments
	o.mu.Unlock()

	var result *CancellationResult
	opts := o.retryOpts
	opts.OnRetry = func(err error, attempt int, delay time.Duration) {
		o.log.LogCancellationRetry(ctx, bookingID, attempt, delay, err)
		if o.retryOpts.OnRetry != nil {
			o.retryOpts.OnRetry(err, attempt, delay)
		}
	}

	err := retry.Do(ctx, opts, func(ctx context.Context) error {
		res, callErr := o.adapter.CancelReservation(ctx, bookingID, reason, comments)
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})

	if err != nil {
		classified := Classify(err)
		o.mu.Lock()
		o.state = StateFailed
		o.lastErr = classified
		o.mu.Unlock()
		return nil, classified
	}

	if err := o.store.MarkCancelled(ctx, bookingID); err != nil {
		classified := Classify(fmt.Errorf("cancelled at provider but local update failed: %w", err))
		o.mu.Lock()
		o.state = StateFailed
		o.lastErr = classified
		o.mu.Unlock()
		return nil, classified
	}

	o.mu.Lock()
	o.state = StateSucceeded
	o.result = result
	o.lastErr = nil
	o.mu.Unlock()

	return result, nil
}
