package hotels

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrHotelNotFound = errors.New("hotel not found")
var ErrRoomNotFound = errors.New("room not found")

type Repository interface {
	// Hotel operations
	CreateHotel(ctx context.Context, hotel *Hotel) error
	GetHotelByID(ctx context.Context, id uuid.UUID) (*Hotel, error)
	UpdateHotel(ctx context.Context, hotel *Hotel) error
	DeleteHotel(ctx context.Context, id uuid.UUID) error
	SearchHotels(ctx context.Context, query SearchQuery) ([]Hotel, int64, error)

	// Room operations
	CreateRoom(ctx context.Context, room *Room) error
	GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetRoomsByHotelID(ctx context.Context, hotelID uuid.UUID) ([]Room, error)
	UpdateRoom(ctx context.Context, room *Room) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateHotel(ctx context.Context, hotel *Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

func (r *repository) GetHotelByID(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	var hotel Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		Where("id = ?", id).
		First(&hotel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) UpdateHotel(ctx context.Context, hotel *Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

func (r *repository) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Hotel{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHotelNotFound
	}
	return nil
}

func (r *repository) SearchHotels(ctx context.Context, query SearchQuery) ([]Hotel, int64, error) {
	var results []Hotel
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Hotel{}).
		Where("active = ?", true)

	if query.City != "" {
		baseQuery = baseQuery.Where("LOWER(city) = LOWER(?)", query.City)
	}
	if query.Country != "" {
		baseQuery = baseQuery.Where("LOWER(country) = LOWER(?)", query.Country)
	}
	if query.MinRating > 0 {
		baseQuery = baseQuery.Where("rating >= ?", query.MinRating)
	}
	if query.Guests > 0 {
		baseQuery = baseQuery.Where(
			"EXISTS (SELECT 1 FROM rooms WHERE rooms.hotel_id = hotels.id AND rooms.max_guests >= ?)",
			query.Guests,
		)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Rooms").
		Order("rating DESC, name ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&results).Error

	return results, totalCount, err
}

func (r *repository) CreateRoom(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *repository) GetRoomByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) GetRoomsByHotelID(ctx context.Context, hotelID uuid.UUID) ([]Room, error) {
	var rooms []Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("price_per_night ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *repository) UpdateRoom(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// CalculateTotalPages computes pagination metadata
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
