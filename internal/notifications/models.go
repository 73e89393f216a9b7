package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what happened
type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationTypeRefundIssued     NotificationType = "REFUND_ISSUED"
	NotificationTypeWelcome          NotificationType = "WELCOME"
)

// NotificationStatus tracks the delivery state of a message
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is the message envelope published to Kafka
type Notification struct {
	ID             uuid.UUID              `json:"id"`
	Type           NotificationType       `json:"type"`
	RecipientID    uuid.UUID              `json:"recipient_id"`
	RecipientEmail string                 `json:"recipient_email"`
	RecipientName  string                 `json:"recipient_name"`
	Subject        string                 `json:"subject"`
	Status         NotificationStatus     `json:"status"`
	BookingID      *uuid.UUID             `json:"booking_id,omitempty"`
	HotelID        *uuid.UUID             `json:"hotel_id,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	LastError      *string                `json:"last_error,omitempty"`
}

// NewNotification creates a notification with defaults filled in
func NewNotification(nType NotificationType, recipientID uuid.UUID, email, name string) *Notification {
	now := time.Now()
	return &Notification{
		ID:             uuid.New(),
		Type:           nType,
		RecipientID:    recipientID,
		RecipientEmail: email,
		RecipientName:  name,
		Status:         NotificationStatusPending,
		Data:           make(map[string]interface{}),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// WithBooking attaches booking context to the notification
func (n *Notification) WithBooking(bookingID, hotelID uuid.UUID) *Notification {
	n.BookingID = &bookingID
	n.HotelID = &hotelID
	return n
}

// ToJSON serializes the notification for the wire
func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// GetPartitionKey returns the Kafka partition key. Messages for the same
// recipient land on the same partition so delivery order is preserved.
func (n *Notification) GetPartitionKey() string {
	return n.RecipientID.String()
}
