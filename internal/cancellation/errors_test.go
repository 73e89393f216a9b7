package cancellation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_StatusCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{400, ErrKindValidation},
		{402, ErrKindPaymentDeclined},
		{404, ErrKindHotelUnavailable},
		{409, ErrKindBookingFailed},
		{429, ErrKindRateLimit},
		{500, ErrKindNetwork},
		{502, ErrKindNetwork},
		{503, ErrKindNetwork},
		{403, ErrKindUnknown},
		{418, ErrKindUnknown},
	}

	for _, tc := range cases {
		err := &ProviderError{StatusCode: tc.status, Body: "boom"}
		classified := Classify(err)
		require.NotNil(t, classified, "status=%d", tc.status)
		assert.Equal(t, tc.kind, classified.Kind, "status=%d", tc.status)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	original := Classify(&ProviderError{StatusCode: 402})

	again := Classify(original)

	assert.Same(t, original, again)
	assert.Equal(t, ErrKindPaymentDeclined, again.Kind)
}

func TestClassify_PreservesWrappedBookingError(t *testing.T) {
	inner := NewBookingError(ErrKindCancellationFail, "provider said no", true)
	wrapped := fmt.Errorf("submitting cancellation: %w", inner)

	classified := Classify(wrapped)

	assert.Same(t, inner, classified)
}

func TestClassify_BareNetworkError(t *testing.T) {
	classified := Classify(errors.New("dial tcp 10.0.0.1:443: connection refused"))

	assert.Equal(t, ErrKindNetwork, classified.Kind)
	assert.True(t, classified.Retryable)
}

func TestClassify_DeadlineExceeded(t *testing.T) {
	classified := Classify(fmt.Errorf("provider call: %w", context.DeadlineExceeded))

	assert.Equal(t, ErrKindNetwork, classified.Kind)
	assert.True(t, classified.Retryable)
}

func TestClassify_UnknownError(t *testing.T) {
	classified := Classify(errors.New("something odd happened"))

	assert.Equal(t, ErrKindUnknown, classified.Kind)
	assert.False(t, classified.Retryable)
}

func TestClassify_NilError(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&ProviderError{StatusCode: 500}))
	assert.True(t, IsRetryable(&ProviderError{StatusCode: 503}))
	assert.True(t, IsRetryable(&ProviderError{StatusCode: 408}))
	assert.True(t, IsRetryable(&ProviderError{StatusCode: 429}))

	assert.False(t, IsRetryable(&ProviderError{StatusCode: 400}))
	assert.False(t, IsRetryable(&ProviderError{StatusCode: 402}))
	assert.False(t, IsRetryable(&ProviderError{StatusCode: 404}))
	assert.False(t, IsRetryable(&ProviderError{StatusCode: 409}))

	assert.True(t, IsRetryable(errors.New("read tcp: connection reset by peer")))
	assert.False(t, IsRetryable(nil))

	flagged := NewBookingError(ErrKindCancellationFail, "transient", true)
	assert.True(t, IsRetryable(flagged))
	assert.False(t, IsRetryable(NewBookingError(ErrKindValidation, "bad input", false)))
}

func TestUserMessage(t *testing.T) {
	for _, kind := range []ErrorKind{
		ErrKindValidation, ErrKindAvailabilityCheck, ErrKindBookingFailed,
		ErrKindPaymentDeclined, ErrKindNetwork, ErrKindHotelUnavailable,
		ErrKindModificationFail, ErrKindCancellationFail, ErrKindRateLimit,
		ErrKindUnknown,
	} {
		assert.NotEmpty(t, UserMessage(kind), "kind=%s", kind)
	}

	// unrecognised kinds fall back to the generic message
	assert.Equal(t, UserMessage(ErrKindUnknown), UserMessage(ErrorKind("NO_SUCH_KIND")))
}

func TestBookingError_ErrorAndUnwrap(t *testing.T) {
	cause := &ProviderError{StatusCode: 500, Body: "internal"}
	classified := Classify(cause)

	assert.Contains(t, classified.Error(), string(ErrKindNetwork))
	assert.ErrorIs(t, classified, error(cause))
}
