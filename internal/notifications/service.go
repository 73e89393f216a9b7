package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayease/pkg/logger"
)

// Service provides high-level notification publishing for the rest of the app.
// When Kafka is disabled the service degrades to a no-op so booking flows
// never depend on broker availability.
type Service interface {
	NotifyBookingConfirmed(ctx context.Context, userID uuid.UUID, email, name string, bookingID, hotelID uuid.UUID, bookingRef string) error
	NotifyBookingCancelled(ctx context.Context, userID uuid.UUID, email, name string, bookingID, hotelID uuid.UUID, refundAmount decimal.Decimal) error
	NotifyRefundIssued(ctx context.Context, userID uuid.UUID, email, name string, bookingID, hotelID uuid.UUID, refundAmount decimal.Decimal, currency string) error
	NotifyWelcome(ctx context.Context, userID uuid.UUID, email, name string) error
	Close() error
}

type service struct {
	producer Producer
	log      *logger.Logger
}

// NewService creates a notification service backed by the given producer.
// Pass a nil producer to get no-op behavior.
func NewService(producer Producer, log *logger.Logger) Service {
	return &service{producer: producer, log: log}
}

func (s *service) NotifyBookingConfirmed(ctx context.Context, userID uuid.UUID, email, name string, bookingID, hotelID uuid.UUID, bookingRef string) error {
	if s.producer == nil {
		return nil
	}

	notification := NewNotification(NotificationTypeBookingConfirmed, userID, email, name).
		WithBooking(bookingID, hotelID)
	notification.Subject = fmt.Sprintf("Booking confirmed: %s", bookingRef)
	notification.Data["booking_ref"] = bookingRef

	if err := s.producer.Publish(ctx, notification); err != nil {
		s.log.WarnContext(ctx, "Failed to publish booking confirmation", "booking_id", bookingID, "error", err)
		return err
	}
	return nil
}

func (s *service) NotifyBookingCancelled(ctx context.Context, userID uuid.UUID, email, name string, bookingID, hotelID uuid.UUID, refundAmount decimal.Decimal) error {
	if s.producer == nil {
		return nil
	}

	notification := NewNotification(NotificationTypeBookingCancelled, userID, email, name).
		WithBooking(bookingID, hotelID)
	notification.Subject = "Your booking has been cancelled"
	notification.Data["refund_amount"] = refundAmount.StringFixed(2)

	if err := s.producer.Publish(ctx, notification); err != nil {
		s.log.WarnContext(ctx, "Failed to publish cancellation notification", "booking_id", bookingID, "error", err)
		return err
	}
	return nil
}

func (s *service) NotifyRefundIssued(ctx context.Context, userID uuid.UUID, email, name string, bookingID, hotelID uuid.UUID, refundAmount decimal.Decimal, currency string) error {
	if s.producer == nil {
		return nil
	}

	notification := NewNotification(NotificationTypeRefundIssued, userID, email, name).
		WithBooking(bookingID, hotelID)
	notification.Subject = fmt.Sprintf("Refund of %s %s on its way", currency, refundAmount.StringFixed(2))
	notification.Data["refund_amount"] = refundAmount.StringFixed(2)
	notification.Data["currency"] = currency

	if err := s.producer.Publish(ctx, notification); err != nil {
		s.log.WarnContext(ctx, "Failed to publish refund notification", "booking_id", bookingID, "error", err)
		return err
	}
	return nil
}

func (s *service) NotifyWelcome(ctx context.Context, userID uuid.UUID, email, name string) error {
	if s.producer == nil {
		return nil
	}

	notification := NewNotification(NotificationTypeWelcome, userID, email, name)
	notification.Subject = "Welcome to StayEase"

	if err := s.producer.Publish(ctx, notification); err != nil {
		s.log.WarnContext(ctx, "Failed to publish welcome notification", "user_id", userID, "error", err)
		return err
	}
	return nil
}

func (s *service) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
