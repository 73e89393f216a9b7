package cancellation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorKind is the closed taxonomy of booking failures
type ErrorKind string

const (
	ErrKindValidation        ErrorKind = "VALIDATION_ERROR"
	ErrKindAvailabilityCheck ErrorKind = "AVAILABILITY_CHECK_FAILED"
	ErrKindBookingFailed     ErrorKind = "BOOKING_FAILED"
	ErrKindPaymentDeclined   ErrorKind = "PAYMENT_DECLINED"
	ErrKindNetwork           ErrorKind = "NETWORK_ERROR"
	ErrKindHotelUnavailable  ErrorKind = "HOTEL_UNAVAILABLE"
	ErrKindModificationFail  ErrorKind = "MODIFICATION_FAILED"
	ErrKindCancellationFail  ErrorKind = "CANCELLATION_FAILED"
	ErrKindRateLimit         ErrorKind = "RATE_LIMIT_ERROR"
	ErrKindUnknown           ErrorKind = "UNKNOWN_ERROR"
)

// BookingError is a classified failure. It is constructed once at the
// classification boundary and treated as immutable afterwards.
type BookingError struct {
	Kind      ErrorKind   `json:"kind"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Retryable bool        `json:"retryable"`
	cause     error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.cause
}

// NewBookingError constructs a pre-classified error
func NewBookingError(kind ErrorKind, message string, retryable bool) *BookingError {
	return &BookingError{
		Kind:      kind,
		Message:   message,
		Retryable: retryable,
	}
}

// userMessages maps each error kind to a stable user-facing sentence
var userMessages = map[ErrorKind]string{
	ErrKindValidation:        "Please check your input and try again.",
	ErrKindAvailabilityCheck: "We could not verify availability. Please try again.",
	ErrKindBookingFailed:     "This booking could not be processed due to a conflict.",
	ErrKindPaymentDeclined:   "Your payment was declined. Please use a different payment method.",
	ErrKindNetwork:           "A network error occurred. Please check your connection and try again.",
	ErrKindHotelUnavailable:  "This hotel is no longer available.",
	ErrKindModificationFail:  "Your booking could not be modified. Please try again.",
	ErrKindCancellationFail:  "Your booking could not be cancelled. Please try again or contact support.",
	ErrKindRateLimit:         "Too many requests. Please wait a moment and try again.",
	ErrKindUnknown:           "Something went wrong. Please try again.",
}

// UserMessage returns the fixed user-facing message for an error kind
func UserMessage(kind ErrorKind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[ErrKindUnknown]
}

// Classify maps an arbitrary error into a BookingError. Classification is
// idempotent: an error that already carries a kind is returned unchanged.
func Classify(err error) *BookingError {
	if err == nil {
		return nil
	}

	var bookingErr *BookingError
	if errors.As(err, &bookingErr) {
		return bookingErr
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		kind := kindFromStatus(providerErr.StatusCode)
		return &BookingError{
			Kind:      kind,
			Message:   UserMessage(kind),
			Details:   providerErr.Body,
			Retryable: retryableStatus(providerErr.StatusCode),
			cause:     err,
		}
	}

	if isNetworkError(err) {
		return &BookingError{
			Kind:      ErrKindNetwork,
			Message:   UserMessage(ErrKindNetwork),
			Retryable: true,
			cause:     err,
		}
	}

	return &BookingError{
		Kind:      ErrKindUnknown,
		Message:   UserMessage(ErrKindUnknown),
		Retryable: false,
		cause:     err,
	}
}

// IsRetryable reports whether the failure is worth another attempt
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var bookingErr *BookingError
	if errors.As(err, &bookingErr) {
		return bookingErr.Retryable
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return retryableStatus(providerErr.StatusCode)
	}

	// Bare network failures without a status code are assumed transient
	return isNetworkError(err)
}

func kindFromStatus(status int) ErrorKind {
	switch {
	case status == 400:
		return ErrKindValidation
	case status == 402:
		return ErrKindPaymentDeclined
	case status == 404:
		return ErrKindHotelUnavailable
	case status == 409:
		return ErrKindBookingFailed
	case status == 429:
		return ErrKindRateLimit
	case status >= 500:
		return ErrKindNetwork
	default:
		return ErrKindUnknown
	}
}

func retryableStatus(status int) bool {
	if status >= 500 {
		return true
	}
	return status == 408 || status == 429
}

// isNetworkError applies a transport-level failure heuristic for errors
// that never produced an HTTP status code.
func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"connection refused", "connection reset", "no such host", "network", "timeout", "eof"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
