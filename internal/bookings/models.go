package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayease/internal/hotels"
	"stayease/internal/users"
)

// Booking defines a confirmed hotel stay
type Booking struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	HotelID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"hotel_id"`
	RoomID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"room_id"`
	CheckInDate  time.Time       `gorm:"type:date;not null" json:"check_in_date"`
	CheckOutDate time.Time       `gorm:"type:date;not null" json:"check_out_date"`
	Nights       int             `gorm:"not null" json:"nights"`
	Guests       int             `gorm:"not null;default:1" json:"guests"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	Currency     string          `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status       Status          `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	BookingRef   string          `gorm:"unique;not null" json:"booking_ref"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`

	// Relationships
	User     *users.User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Hotel    *hotels.Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	Room     *hotels.Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Payments []Payment     `json:"payments,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;"`
}

// Payment defines the structure for payment tracking
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status        PaymentStatus   `gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED');default:'PENDING'" json:"status"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method"`
	TransactionID string          `gorm:"unique" json:"transaction_id"`
	QRPayload     string          `gorm:"type:text" json:"qr_payload,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// CreateBookingRequest represents a booking creation request
type CreateBookingRequest struct {
	RoomID        string `json:"room_id" binding:"required,uuid"`
	CheckInDate   string `json:"check_in_date" binding:"required"`  // YYYY-MM-DD
	CheckOutDate  string `json:"check_out_date" binding:"required"` // YYYY-MM-DD
	Guests        int    `json:"guests" binding:"required,min=1,max=10"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CARD UPI QR WALLET"`
}

// BookingListQuery represents filters for listing bookings
type BookingListQuery struct {
	Status   string `form:"status"`
	HotelID  string `form:"hotel_id"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// BookingConfirmationResponse represents the booking confirmation payload
type BookingConfirmationResponse struct {
	BookingID    string          `json:"booking_id"`
	BookingRef   string          `json:"booking_ref"`
	Status       string          `json:"status"`
	HotelID      string          `json:"hotel_id"`
	RoomID       string          `json:"room_id"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Nights       int             `json:"nights"`
	Guests       int             `json:"guests"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Currency     string          `json:"currency"`
	Payment      PaymentInfo     `json:"payment"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PaymentInfo represents payment information in responses
type PaymentInfo struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	QRPayload     string          `json:"qr_payload,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
}

// Helper methods for booking management
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) Cancel() {
	b.Status = StatusCancelled
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// Helper methods for payment management
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentCompleted
}

func (p *Payment) MarkCompleted() {
	now := time.Now()
	p.Status = PaymentCompleted
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

func (p *Payment) MarkRefunded() {
	now := time.Now()
	p.Status = PaymentRefunded
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

// ToPaymentInfo converts a Payment to its response representation
func (p *Payment) ToPaymentInfo() PaymentInfo {
	return PaymentInfo{
		ID:            p.ID.String(),
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        string(p.Status),
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		QRPayload:     p.QRPayload,
		ProcessedAt:   p.ProcessedAt,
	}
}
