package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayease/internal/hotels"
	"stayease/internal/notifications"
	"stayease/pkg/logger"
)

var (
	ErrInvalidDateFormat  = errors.New("dates must be in YYYY-MM-DD format")
	ErrCheckInPast        = errors.New("check-in date cannot be in the past")
	ErrCheckOutNotAfter   = errors.New("check-out date must be after check-in date")
	ErrStayTooLong        = errors.New("stay cannot exceed 30 nights")
	ErrTooManyGuests      = errors.New("guest count exceeds room capacity")
	ErrNotBookingOwner    = errors.New("booking does not belong to user")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
)

const maxStayNights = 30

// Service interface defines the contract for booking business logic
type Service interface {
	ConfirmBooking(ctx context.Context, userID uuid.UUID, userEmail string, req CreateBookingRequest) (*BookingConfirmationResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetBookingForUser(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// CancelBookingInternal flips a booking to CANCELLED without ownership
	// checks. It exists for the cancellation service which performs its own
	// eligibility validation.
	CancelBookingInternal(ctx context.Context, bookingID uuid.UUID) error

	// Payment operations
	ProcessPayment(ctx context.Context, bookingID uuid.UUID) (*PaymentInfo, error)
	RefundPayment(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal) error
}

type service struct {
	repo     Repository
	hotelSvc hotels.Service
	notifier notifications.Service
	log      *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo Repository, hotelSvc hotels.Service, notifier notifications.Service, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		hotelSvc: hotelSvc,
		notifier: notifier,
		log:      log,
	}
}

// ConfirmBooking validates the stay, prices it, and creates the booking with
// a mock payment attached.
func (s *service) ConfirmBooking(ctx context.Context, userID uuid.UUID, userEmail string, req CreateBookingRequest) (*BookingConfirmationResponse, error) {
	checkIn, checkOut, nights, err := parseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID: %w", err)
	}

	room, err := s.hotelSvc.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, hotels.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if req.Guests > room.MaxGuests {
		return nil, ErrTooManyGuests
	}

	totalPrice := room.PricePerNight.Mul(decimal.NewFromInt(int64(nights))).Round(2)

	bookingRef, err := s.generateBookingReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	currency := room.Currency
	if currency == "" {
		currency = "USD"
	}

	payment := Payment{
		Amount:        totalPrice,
		Currency:      currency,
		Status:        PaymentPending,
		PaymentMethod: req.PaymentMethod,
		TransactionID: s.generateTransactionID(),
	}
	if req.PaymentMethod == "QR" || req.PaymentMethod == "UPI" {
		payment.QRPayload = fmt.Sprintf("upi://pay?pa=payments@stayease&tn=%s&am=%s&cu=%s",
			bookingRef, totalPrice.StringFixed(2), currency)
	}

	booking := &Booking{
		UserID:       userID,
		HotelID:      room.HotelID,
		RoomID:       room.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Nights:       nights,
		Guests:       req.Guests,
		TotalPrice:   totalPrice,
		Currency:     currency,
		Status:       StatusConfirmed,
		BookingRef:   bookingRef,
		Payments:     []Payment{payment},
	}

	if err := s.repo.CreateBookingWithAvailabilityCheck(ctx, booking); err != nil {
		return nil, err
	}

	paymentInfo, err := s.ProcessPayment(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("payment processing failed: %w", err)
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.HotelID.String(), userID.String())

	if err := s.notifier.NotifyBookingConfirmed(ctx, userID, userEmail, userEmail, booking.ID, booking.HotelID, bookingRef); err != nil {
		// notification failure never fails the booking
		s.log.WarnContext(ctx, "Booking confirmation notification failed", "booking_id", booking.ID, "error", err)
	}

	return &BookingConfirmationResponse{
		BookingID:    booking.ID.String(),
		BookingRef:   booking.BookingRef,
		Status:       string(booking.Status),
		HotelID:      booking.HotelID.String(),
		RoomID:       booking.RoomID.String(),
		CheckInDate:  booking.CheckInDate.Format("2006-01-02"),
		CheckOutDate: booking.CheckOutDate.Format("2006-01-02"),
		Nights:       booking.Nights,
		Guests:       booking.Guests,
		TotalPrice:   booking.TotalPrice,
		Currency:     booking.Currency,
		Payment:      *paymentInfo,
		CreatedAt:    booking.CreatedAt,
	}, nil
}

// GetBooking retrieves a booking by ID
func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetBookingByIDWithRelations(ctx, bookingID)
}

// GetBookingForUser retrieves a booking and verifies ownership
func (s *service) GetBookingForUser(ctx context.Context, bookingID, userID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetBookingByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetUserBookings(ctx, userID, query)
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetAllBookings(ctx, query)
}

func (s *service) CancelBookingInternal(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.IsCancelled() {
		return ErrAlreadyCancelled
	}

	now := time.Now()
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, StatusCancelled, &now); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	return nil
}

// ProcessPayment completes the mock payment attached to a booking
func (s *service) ProcessPayment(ctx context.Context, bookingID uuid.UUID) (*PaymentInfo, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if len(booking.Payments) == 0 {
		return nil, fmt.Errorf("no payment record found for booking")
	}

	payment := &booking.Payments[0]
	payment.MarkCompleted()

	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment record: %w", err)
	}

	info := payment.ToPaymentInfo()
	return &info, nil
}

// RefundPayment marks the booking's payment as refunded for the given amount
func (s *service) RefundPayment(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if len(booking.Payments) == 0 {
		return fmt.Errorf("no payment record found for booking")
	}

	payment := &booking.Payments[0]
	payment.Amount = amount
	payment.MarkRefunded()

	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		return fmt.Errorf("failed to update payment record: %w", err)
	}

	return nil
}

// parseStayDates validates and parses the requested stay window
func parseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, int, error) {
	checkIn, err := time.Parse("2006-01-02", checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, 0, ErrInvalidDateFormat
	}
	checkOut, err := time.Parse("2006-01-02", checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, 0, ErrInvalidDateFormat
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, 0, ErrCheckInPast
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, 0, ErrCheckOutNotAfter
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights > maxStayNights {
		return time.Time{}, time.Time{}, 0, ErrStayTooLong
	}

	return checkIn, checkOut, nights, nil
}

// generateBookingReference generates a unique booking reference
func (s *service) generateBookingReference() (string, error) {
	timestamp := time.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("STY-%s-%s", timestamp, string(randomPart)), nil
}

// generateTransactionID generates a mock transaction ID
func (s *service) generateTransactionID() string {
	timestamp := time.Now().Unix()
	id := uuid.New().String()
	shortID := strings.ReplaceAll(id, "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", timestamp, strings.ToUpper(shortID))
}
