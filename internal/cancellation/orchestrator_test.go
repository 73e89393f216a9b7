package cancellation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayease/pkg/logger"
	"stayease/pkg/retry"
)

// scriptedAdapter fails with the scripted errors in order, then succeeds
type scriptedAdapter struct {
	failures []error
	calls    int
	result   *CancellationResult
}

func (a *scriptedAdapter) CancelReservation(ctx context.Context, bookingID, reason, comments string) (*CancellationResult, error) {
	a.calls++
	if a.calls <= len(a.failures) {
		return nil, a.failures[a.calls-1]
	}
	if a.result != nil {
		return a.result, nil
	}
	return &CancellationResult{
		BookingID:       bookingID,
		ReferenceNumber: "CXL-TEST-001",
		CancelledAt:     time.Now(),
		RefundAmount:    decimal.NewFromInt(100),
		RefundCurrency:  "USD",
		RefundStatus:    RefundPending,
		Reason:          reason,
	}, nil
}

type recordingStore struct {
	cancelled []string
	err       error
}

func (s *recordingStore) MarkCancelled(ctx context.Context, bookingID string) error {
	if s.err != nil {
		return s.err
	}
	s.cancelled = append(s.cancelled, bookingID)
	return nil
}

func fastRetryOpts(maxRetries int) retry.Options {
	return retry.Options{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		RetryIf:    IsRetryable,
	}
}

func newTestOrchestrator(adapter ProviderAdapter, store BookingStore, opts retry.Options) *Orchestrator {
	return NewOrchestrator("b-123", adapter, store, opts, logger.GetDefault())
}

func TestOrchestrator_HappyPath(t *testing.T) {
	adapter := &scriptedAdapter{}
	store := &recordingStore{}
	orch := newTestOrchestrator(adapter, store, fastRetryOpts(3))

	assert.Equal(t, StateIdle, orch.State())

	require.NoError(t, orch.SelectReason("Change of plans", ""))
	assert.Equal(t, StateReasonSelected, orch.State())

	require.NoError(t, orch.Confirm())
	assert.Equal(t, StateConfirmationPending, orch.State())

	result, err := orch.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, orch.State())
	assert.Equal(t, "CXL-TEST-001", result.ReferenceNumber)
	assert.Equal(t, 1, adapter.calls)
	assert.Equal(t, []string{"b-123"}, store.cancelled)
	assert.Nil(t, orch.LastError())
}

func TestOrchestrator_EmptyReasonBlocksFlow(t *testing.T) {
	adapter := &scriptedAdapter{}
	orch := newTestOrchestrator(adapter, &recordingStore{}, fastRetryOpts(3))

	err := orch.SelectReason("", "")
	require.Error(t, err)

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, ErrKindValidation, bookingErr.Kind)
	assert.False(t, bookingErr.Retryable)

	assert.Equal(t, StateIdle, orch.State())
	assert.Error(t, orch.Confirm())
	assert.Equal(t, 0, adapter.calls)
}

func TestOrchestrator_BackFromConfirmationHasNoSideEffects(t *testing.T) {
	adapter := &scriptedAdapter{}
	store := &recordingStore{}
	orch := newTestOrchestrator(adapter, store, fastRetryOpts(3))

	require.NoError(t, orch.SelectReason("Found a better rate", ""))
	require.NoError(t, orch.Confirm())
	require.NoError(t, orch.Back())

	assert.Equal(t, StateReasonSelected, orch.State())
	assert.Equal(t, 0, adapter.calls)
	assert.Empty(t, store.cancelled)

	// the flow can still be completed after going back
	require.NoError(t, orch.Confirm())
	_, err := orch.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, orch.State())
}

func TestOrchestrator_RetriesServerErrorsThenSucceeds(t *testing.T) {
	adapter := &scriptedAdapter{
		failures: []error{
			&ProviderError{StatusCode: 500, Body: "internal"},
			&ProviderError{StatusCode: 500, Body: "internal"},
			&ProviderError{StatusCode: 500, Body: "internal"},
		},
	}
	store := &recordingStore{}
	orch := newTestOrchestrator(adapter, store, fastRetryOpts(3))

	require.NoError(t, orch.SelectReason("Trip cancelled", ""))
	require.NoError(t, orch.Confirm())

	result, err := orch.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, orch.State())
	assert.NotNil(t, result)
	assert.Equal(t, 4, adapter.calls)
	assert.Len(t, store.cancelled, 1)
}

func TestOrchestrator_ValidationErrorFailsAfterOneCall(t *testing.T) {
	adapter := &scriptedAdapter{
		failures: []error{
			&ProviderError{StatusCode: 400, Body: "bad request"},
			&ProviderError{StatusCode: 400, Body: "bad request"},
		},
	}
	store := &recordingStore{}
	orch := newTestOrchestrator(adapter, store, fastRetryOpts(3))

	require.NoError(t, orch.SelectReason("Trip cancelled", ""))
	require.NoError(t, orch.Confirm())

	_, err := orch.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateFailed, orch.State())
	assert.Equal(t, 1, adapter.calls)
	assert.Empty(t, store.cancelled)

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, ErrKindValidation, bookingErr.Kind)
	assert.Same(t, bookingErr, orch.LastError())
}

func TestOrchestrator_ExhaustedRetriesFail(t *testing.T) {
	adapter := &scriptedAdapter{
		failures: []error{
			&ProviderError{StatusCode: 503, Body: "unavailable"},
			&ProviderError{StatusCode: 503, Body: "unavailable"},
			&ProviderError{StatusCode: 503, Body: "unavailable"},
		},
	}
	store := &recordingStore{}
	orch := newTestOrchestrator(adapter, store, fastRetryOpts(2))

	require.NoError(t, orch.SelectReason("Trip cancelled", ""))
	require.NoError(t, orch.Confirm())

	_, err := orch.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateFailed, orch.State())
	assert.Equal(t, 3, adapter.calls) // maxRetries 2 means 3 total attempts
	assert.Empty(t, store.cancelled)

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, ErrKindNetwork, bookingErr.Kind)
	assert.True(t, bookingErr.Retryable)
}

func TestOrchestrator_ResetAllowsRetryFromIdle(t *testing.T) {
	adapter := &scriptedAdapter{
		failures: []error{&ProviderError{StatusCode: 400, Body: "bad"}},
	}
	store := &recordingStore{}
	orch := newTestOrchestrator(adapter, store, fastRetryOpts(0))

	require.NoError(t, orch.SelectReason("reason", ""))
	require.NoError(t, orch.Confirm())
	_, err := orch.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StateFailed, orch.State())

	orch.Reset()
	assert.Equal(t, StateIdle, orch.State())
	assert.Nil(t, orch.LastError())

	require.NoError(t, orch.SelectReason("reason", ""))
	require.NoError(t, orch.Confirm())
	result, err := orch.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, orch.State())
	assert.NotNil(t, result)
}

func TestOrchestrator_SubmitRequiresConfirmation(t *testing.T) {
	adapter := &scriptedAdapter{}
	orch := newTestOrchestrator(adapter, &recordingStore{}, fastRetryOpts(3))

	_, err := orch.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, adapter.calls)

	require.NoError(t, orch.SelectReason("reason", ""))
	_, err = orch.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, adapter.calls)
}

func TestOrchestrator_StoreFailureSurfacesError(t *testing.T) {
	adapter := &scriptedAdapter{}
	store := &recordingStore{err: assert.AnError}
	orch := newTestOrchestrator(adapter, store, fastRetryOpts(3))

	require.NoError(t, orch.SelectReason("reason", ""))
	require.NoError(t, orch.Confirm())

	_, err := orch.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, orch.State())
	assert.NotNil(t, orch.LastError())
}
