package cancellation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CancellationPolicy defines the refund staircase for a hotel
type CancellationPolicy struct {
	ID                   uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	HotelID              uuid.UUID    `gorm:"type:uuid;unique;not null" json:"hotel_id"`
	Type                 PolicyType   `gorm:"type:varchar(20);check:type IN ('FLEXIBLE', 'MODERATE', 'STRICT', 'NON_REFUNDABLE');not null" json:"type"`
	Description          string       `gorm:"type:text" json:"description"`
	Rules                []PolicyRule `gorm:"serializer:json" json:"rules"`
	AllowCancellation    bool         `gorm:"default:true" json:"allow_cancellation"`
	RefundProcessingDays int          `gorm:"default:5" json:"refund_processing_days"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// Cancellation records one processed booking cancellation
type Cancellation struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID          uuid.UUID       `gorm:"type:uuid;unique;not null" json:"booking_id"`
	ReferenceNumber    string          `gorm:"type:varchar(64)" json:"reference_number"`
	RequestedAt        time.Time       `json:"requested_at"`
	ProcessedAt        *time.Time      `json:"processed_at,omitempty"`
	RefundPercentage   int             `gorm:"default:0" json:"refund_percentage"`
	RefundAmount       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"refund_amount"`
	RefundCurrency     string          `gorm:"type:varchar(3);default:'USD'" json:"refund_currency"`
	RefundStatus       RefundStatus    `gorm:"type:varchar(20);check:refund_status IN ('PENDING', 'PROCESSED', 'FAILED');default:'PENDING'" json:"refund_status"`
	Reason             string          `gorm:"not null" json:"reason"`
	AdditionalComments string          `gorm:"type:text" json:"additional_comments,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName sets the table name for CancellationPolicy
func (CancellationPolicy) TableName() string {
	return "cancellation_policies"
}

// TableName sets the table name for Cancellation
func (Cancellation) TableName() string {
	return "cancellations"
}

// PolicyRequest represents a request to create or update a hotel's policy
type PolicyRequest struct {
	Type                 string       `json:"type" binding:"required,oneof=FLEXIBLE MODERATE STRICT NON_REFUNDABLE"`
	Description          string       `json:"description"`
	Rules                []PolicyRule `json:"rules" binding:"required,min=1"`
	AllowCancellation    *bool        `json:"allow_cancellation"`
	RefundProcessingDays int          `json:"refund_processing_days" binding:"omitempty,min=1,max=30"`
}

// CancelRequest represents a user's request to cancel a booking
type CancelRequest struct {
	Reason             string `json:"reason" binding:"required,min=3,max=500"`
	AdditionalComments string `json:"additional_comments" binding:"max=1000"`
}

// RefundPreview is the pre-confirmation refund estimate shown to the user
type RefundPreview struct {
	BookingID        string          `json:"booking_id"`
	PolicyType       PolicyType      `json:"policy_type"`
	DaysRemaining    int             `json:"days_remaining"`
	RefundPercentage int             `json:"refund_percentage"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
	RefundCurrency   string          `json:"refund_currency"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Message          string          `json:"message"`
}
