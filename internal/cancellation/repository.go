package cancellation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPolicyNotFound       = errors.New("cancellation policy not found")
	ErrPolicyExists         = errors.New("cancellation policy already exists for this hotel")
	ErrCancellationNotFound = errors.New("cancellation not found")
)

// Repository interface defines the contract for cancellation data operations
type Repository interface {
	// Policy operations
	CreatePolicy(ctx context.Context, policy *CancellationPolicy) error
	GetPolicyByHotelID(ctx context.Context, hotelID uuid.UUID) (*CancellationPolicy, error)
	UpdatePolicy(ctx context.Context, policy *CancellationPolicy) error

	// Cancellation operations
	CreateCancellation(ctx context.Context, cancellation *Cancellation) error
	GetCancellationByID(ctx context.Context, id uuid.UUID) (*Cancellation, error)
	GetCancellationByBookingID(ctx context.Context, bookingID uuid.UUID) (*Cancellation, error)
	GetCancellationsByUserID(ctx context.Context, userID uuid.UUID) ([]Cancellation, error)
	UpdateCancellation(ctx context.Context, cancellation *Cancellation) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new cancellation repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePolicy(ctx context.Context, policy *CancellationPolicy) error {
	if err := r.db.WithContext(ctx).Create(policy).Error; err != nil {
		return fmt.Errorf("failed to create cancellation policy: %w", err)
	}
	return nil
}

func (r *repository) GetPolicyByHotelID(ctx context.Context, hotelID uuid.UUID) (*CancellationPolicy, error) {
	var policy CancellationPolicy
	err := r.db.WithContext(ctx).First(&policy, "hotel_id = ?", hotelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get cancellation policy: %w", err)
	}
	return &policy, nil
}

func (r *repository) UpdatePolicy(ctx context.Context, policy *CancellationPolicy) error {
	if err := r.db.WithContext(ctx).Save(policy).Error; err != nil {
		return fmt.Errorf("failed to update cancellation policy: %w", err)
	}
	return nil
}

func (r *repository) CreateCancellation(ctx context.Context, cancellation *Cancellation) error {
	if err := r.db.WithContext(ctx).Create(cancellation).Error; err != nil {
		return fmt.Errorf("failed to create cancellation: %w", err)
	}
	return nil
}

func (r *repository) GetCancellationByID(ctx context.Context, id uuid.UUID) (*Cancellation, error) {
	var cancellation Cancellation
	err := r.db.WithContext(ctx).First(&cancellation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCancellationNotFound
		}
		return nil, fmt.Errorf("failed to get cancellation: %w", err)
	}
	return &cancellation, nil
}

func (r *repository) GetCancellationByBookingID(ctx context.Context, bookingID uuid.UUID) (*Cancellation, error) {
	var cancellation Cancellation
	err := r.db.WithContext(ctx).First(&cancellation, "booking_id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCancellationNotFound
		}
		return nil, fmt.Errorf("failed to get cancellation by booking ID: %w", err)
	}
	return &cancellation, nil
}

func (r *repository) GetCancellationsByUserID(ctx context.Context, userID uuid.UUID) ([]Cancellation, error) {
	var cancellations []Cancellation

	// Join with bookings to filter by the owning user
	err := r.db.WithContext(ctx).
		Joins("JOIN bookings ON cancellations.booking_id = bookings.id").
		Where("bookings.user_id = ?", userID).
		Order("cancellations.created_at DESC").
		Find(&cancellations).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get user cancellations: %w", err)
	}

	return cancellations, nil
}

func (r *repository) UpdateCancellation(ctx context.Context, cancellation *Cancellation) error {
	if err := r.db.WithContext(ctx).Save(cancellation).Error; err != nil {
		return fmt.Errorf("failed to update cancellation: %w", err)
	}
	return nil
}
