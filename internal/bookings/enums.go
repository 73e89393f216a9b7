package bookings

// Status represents the lifecycle state of a booking
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// IsValidStatus checks whether a string is a recognised booking status
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanBeCancelled reports whether a booking in this status may still be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusConfirmed
}
