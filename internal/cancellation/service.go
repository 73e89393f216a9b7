package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayease/internal/notifications"
	"stayease/pkg/logger"
	"stayease/pkg/retry"
)

var (
	ErrNotOwner           = errors.New("booking does not belong to user")
	ErrBookingCancelled   = errors.New("booking is already cancelled")
	ErrCancellationExists = errors.New("cancellation request already exists for this booking")
	ErrNotAllowed         = errors.New("cancellation is not allowed for this hotel")
)

// Service interface defines the contract for cancellation business logic
type Service interface {
	// Policy management
	CreatePolicy(ctx context.Context, hotelID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error)
	GetPolicy(ctx context.Context, hotelID uuid.UUID) (*CancellationPolicy, error)
	UpdatePolicy(ctx context.Context, hotelID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error)

	// Cancellation flow
	PreviewRefund(ctx context.Context, bookingID, userID uuid.UUID) (*RefundPreview, error)
	RequestCancellation(ctx context.Context, bookingID, userID uuid.UUID, req CancelRequest) (*Cancellation, error)
	GetCancellation(ctx context.Context, cancellationID, userID uuid.UUID) (*Cancellation, error)
	GetUserCancellations(ctx context.Context, userID uuid.UUID) ([]Cancellation, error)
}

// BookingService is the slice of the booking feature this package needs.
// Declared locally so the two features stay decoupled.
type BookingService interface {
	GetBooking(ctx context.Context, bookingID uuid.UUID) (BookingInfo, error)
	CancelBookingInternal(ctx context.Context, bookingID uuid.UUID) error
	RefundPayment(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal) error
}

// BookingInfo represents booking information for cancellation decisions
type BookingInfo struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	UserEmail   string          `json:"user_email"`
	HotelID     uuid.UUID       `json:"hotel_id"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	CheckInDate time.Time       `json:"check_in_date"`
	BookingRef  string          `json:"booking_ref"`
}

type service struct {
	repo       Repository
	bookingSvc BookingService
	adapter    ProviderAdapter
	notifier   notifications.Service
	retryOpts  retry.Options
	log        *logger.Logger
}

// NewService creates a new cancellation service instance
func NewService(repo Repository, bookingSvc BookingService, adapter ProviderAdapter, notifier notifications.Service, retryOpts retry.Options, log *logger.Logger) Service {
	return &service{
		repo:       repo,
		bookingSvc: bookingSvc,
		adapter:    adapter,
		notifier:   notifier,
		retryOpts:  retryOpts,
		log:        log,
	}
}

// CreatePolicy creates a new cancellation policy for a hotel
func (s *service) CreatePolicy(ctx context.Context, hotelID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error) {
	if _, err := s.repo.GetPolicyByHotelID(ctx, hotelID); err == nil {
		return nil, ErrPolicyExists
	}

	policy, err := s.buildPolicy(hotelID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreatePolicy(ctx, policy); err != nil {
		return nil, err
	}

	return policy, nil
}

// GetPolicy retrieves a hotel's cancellation policy
func (s *service) GetPolicy(ctx context.Context, hotelID uuid.UUID) (*CancellationPolicy, error) {
	return s.repo.GetPolicyByHotelID(ctx, hotelID)
}

// UpdatePolicy updates an existing cancellation policy
func (s *service) UpdatePolicy(ctx context.Context, hotelID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error) {
	existing, err := s.repo.GetPolicyByHotelID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	updated, err := s.buildPolicy(hotelID, req)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.repo.UpdatePolicy(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// PreviewRefund computes the refund the user would receive if they
// cancelled right now. Pure calculation, nothing is written.
func (s *service) PreviewRefund(ctx context.Context, bookingID, userID uuid.UUID) (*RefundPreview, error) {
	booking, policy, err := s.loadBookingAndPolicy(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	eval := EvaluateRefund(policy, booking.TotalPrice, booking.CheckInDate, time.Now())

	message := fmt.Sprintf("You will receive a refund of %d%% (%s %s).",
		eval.RefundPercentage, eval.RefundAmount.StringFixed(2), booking.Currency)
	if eval.RefundPercentage == 0 {
		message = "This booking is non-refundable under the cancellation policy."
	}

	return &RefundPreview{
		BookingID:        booking.ID.String(),
		PolicyType:       policy.Type,
		DaysRemaining:    eval.DaysRemaining,
		RefundPercentage: eval.RefundPercentage,
		RefundAmount:     eval.RefundAmount,
		RefundCurrency:   booking.Currency,
		TotalPrice:       booking.TotalPrice,
		Message:          message,
	}, nil
}

// RequestCancellation runs the full cancellation flow for a booking:
// eligibility checks, refund evaluation, provider submission with retries,
// then local bookkeeping. The request body carries the user's confirmed
// intent, so the orchestrator's confirmation step is driven straight through.
func (s *service) RequestCancellation(ctx context.Context, bookingID, userID uuid.UUID, req CancelRequest) (*Cancellation, error) {
	booking, policy, err := s.loadBookingAndPolicy(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if !policy.AllowCancellation {
		return nil, ErrNotAllowed
	}

	if _, err := s.repo.GetCancellationByBookingID(ctx, bookingID); err == nil {
		return nil, ErrCancellationExists
	}

	eval := EvaluateRefund(policy, booking.TotalPrice, booking.CheckInDate, time.Now())

	orch := NewOrchestrator(bookingID.String(), s.adapter, s.bookingStore(), s.retryOpts, s.log)
	if err := orch.SelectReason(req.Reason, req.AdditionalComments); err != nil {
		return nil, err
	}
	if err := orch.Confirm(); err != nil {
		return nil, err
	}

	result, err := orch.Submit(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cancellation := &Cancellation{
		BookingID:          bookingID,
		ReferenceNumber:    result.ReferenceNumber,
		RequestedAt:        now,
		ProcessedAt:        &result.CancelledAt,
		RefundPercentage:   eval.RefundPercentage,
		RefundAmount:       result.RefundAmount,
		RefundCurrency:     result.RefundCurrency,
		RefundStatus:       result.RefundStatus,
		Reason:             req.Reason,
		AdditionalComments: req.AdditionalComments,
	}
	if cancellation.RefundCurrency == "" {
		cancellation.RefundCurrency = booking.Currency
	}

	if err := s.repo.CreateCancellation(ctx, cancellation); err != nil {
		return nil, err
	}

	if cancellation.RefundAmount.IsPositive() {
		if err := s.bookingSvc.RefundPayment(ctx, bookingID, cancellation.RefundAmount); err != nil {
			s.log.WarnContext(ctx, "Failed to mark payment refunded", "booking_id", bookingID, "error", err)
		} else if err := s.notifier.NotifyRefundIssued(ctx, userID, booking.UserEmail, booking.UserEmail, bookingID, booking.HotelID, cancellation.RefundAmount, cancellation.RefundCurrency); err != nil {
			s.log.WarnContext(ctx, "Refund notification failed", "booking_id", bookingID, "error", err)
		}
	}

	s.log.LogBookingCancelled(ctx, bookingID.String(), userID.String(), cancellation.RefundAmount.StringFixed(2))

	if err := s.notifier.NotifyBookingCancelled(ctx, userID, booking.UserEmail, booking.UserEmail, bookingID, booking.HotelID, cancellation.RefundAmount); err != nil {
		s.log.WarnContext(ctx, "Cancellation notification failed", "booking_id", bookingID, "error", err)
	}

	return cancellation, nil
}

// GetCancellation retrieves a cancellation and verifies ownership
func (s *service) GetCancellation(ctx context.Context, cancellationID, userID uuid.UUID) (*Cancellation, error) {
	cancellation, err := s.repo.GetCancellationByID(ctx, cancellationID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingSvc.GetBooking(ctx, cancellation.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking.UserID != userID {
		return nil, ErrNotOwner
	}

	return cancellation, nil
}

// GetUserCancellations retrieves all cancellations for a user
func (s *service) GetUserCancellations(ctx context.Context, userID uuid.UUID) ([]Cancellation, error) {
	return s.repo.GetCancellationsByUserID(ctx, userID)
}

// loadBookingAndPolicy fetches the booking, verifies ownership and status,
// and resolves the hotel's policy.
func (s *service) loadBookingAndPolicy(ctx context.Context, bookingID, userID uuid.UUID) (*BookingInfo, *CancellationPolicy, error) {
	booking, err := s.bookingSvc.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.UserID != userID {
		return nil, nil, ErrNotOwner
	}

	if booking.Status == "CANCELLED" {
		return nil, nil, ErrBookingCancelled
	}

	policy, err := s.repo.GetPolicyByHotelID(ctx, booking.HotelID)
	if err != nil {
		return nil, nil, err
	}

	return &booking, policy, nil
}

// bookingStore adapts the booking service to the orchestrator's store
func (s *service) bookingStore() BookingStore {
	return bookingStoreFunc(func(ctx context.Context, bookingID string) error {
		id, err := uuid.Parse(bookingID)
		if err != nil {
			return fmt.Errorf("invalid booking ID: %w", err)
		}
		return s.bookingSvc.CancelBookingInternal(ctx, id)
	})
}

type bookingStoreFunc func(ctx context.Context, bookingID string) error

func (f bookingStoreFunc) MarkCancelled(ctx context.Context, bookingID string) error {
	return f(ctx, bookingID)
}

// buildPolicy validates a policy request and assembles the model
func (s *service) buildPolicy(hotelID uuid.UUID, req PolicyRequest) (*CancellationPolicy, error) {
	policyType := PolicyType(req.Type)

	hasFloor := false
	for _, rule := range req.Rules {
		if rule.DaysBeforeCheckIn < 0 {
			return nil, fmt.Errorf("rule threshold cannot be negative")
		}
		if rule.RefundPercentage < 0 || rule.RefundPercentage > 100 {
			return nil, fmt.Errorf("refund percentage must be between 0 and 100")
		}
		if rule.DaysBeforeCheckIn == 0 {
			hasFloor = true
		}
	}

	// NON_REFUNDABLE policies carry a single 0% floor rule no matter
	// what the request contains.
	rules := req.Rules
	if policyType == PolicyNonRefundable {
		rules = []PolicyRule{{DaysBeforeCheckIn: 0, RefundPercentage: 0}}
	} else if !hasFloor {
		s.log.Warn("Cancellation policy defined without a 0-day floor rule",
			"hotel_id", hotelID,
			"type", policyType,
		)
	}

	allowCancellation := true
	if req.AllowCancellation != nil {
		allowCancellation = *req.AllowCancellation
	}

	processingDays := req.RefundProcessingDays
	if processingDays == 0 {
		processingDays = 5
	}

	return &CancellationPolicy{
		HotelID:              hotelID,
		Type:                 policyType,
		Description:          req.Description,
		Rules:                rules,
		AllowCancellation:    allowCancellation,
		RefundProcessingDays: processingDays,
	}, nil
}
