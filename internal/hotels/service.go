package hotels

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"stayease/internal/shared/constants"
	"stayease/pkg/cache"
	"stayease/pkg/logger"

	"github.com/google/uuid"
)

// SearchResult carries one page of hotel search results
type SearchResult struct {
	Hotels     []Hotel `json:"hotels"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
}

// Service interface defines the contract for hotel catalog logic
type Service interface {
	SearchHotels(ctx context.Context, query SearchQuery) (*SearchResult, error)
	GetHotel(ctx context.Context, hotelID uuid.UUID) (*Hotel, error)
	GetRoom(ctx context.Context, roomID uuid.UUID) (*Room, error)
	GetRooms(ctx context.Context, hotelID uuid.UUID) ([]Room, error)

	// Admin operations
	CreateHotel(ctx context.Context, req HotelRequest) (*Hotel, error)
	UpdateHotel(ctx context.Context, hotelID uuid.UUID, req HotelRequest) (*Hotel, error)
	DeleteHotel(ctx context.Context, hotelID uuid.UUID) error
	AddRoom(ctx context.Context, hotelID uuid.UUID, req RoomRequest) (*Room, error)
}

type service struct {
	repo      Repository
	cache     cache.Service
	cacheTTL  time.Duration
	searchTTL time.Duration
	log       *logger.Logger
}

// NewService creates a new hotel service instance. The cache service
// may be nil, in which case every read goes to the database.
func NewService(repo Repository, cacheService cache.Service, hotelTTL, searchTTL time.Duration) Service {
	return &service{
		repo:      repo,
		cache:     cacheService,
		cacheTTL:  hotelTTL,
		searchTTL: searchTTL,
		log:       logger.GetDefault(),
	}
}

func (s *service) SearchHotels(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	fetch := func() (*SearchResult, error) {
		results, totalCount, err := s.repo.SearchHotels(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("hotel search failed: %w", err)
		}
		return &SearchResult{
			Hotels:     results,
			TotalCount: totalCount,
			Page:       query.Page,
			TotalPages: CalculateTotalPages(totalCount, query.Limit),
		}, nil
	}

	if s.cache == nil {
		return fetch()
	}

	var result SearchResult
	key := constants.CacheKeySearchPrefix + searchCacheKey(query)
	err := s.cache.GetOrSet(ctx, key, s.searchTTL, func() (interface{}, error) {
		return fetch()
	}, &result)
	if err != nil {
		// Cache trouble must not take down search.
		s.log.WarnContext(ctx, "search cache unavailable, falling back to database", "error", err)
		return fetch()
	}

	return &result, nil
}

func (s *service) GetHotel(ctx context.Context, hotelID uuid.UUID) (*Hotel, error) {
	if s.cache == nil {
		return s.repo.GetHotelByID(ctx, hotelID)
	}

	var hotel Hotel
	key := constants.CacheKeyHotelPrefix + hotelID.String()
	err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetHotelByID(ctx, hotelID)
	}, &hotel)
	if err != nil {
		return s.repo.GetHotelByID(ctx, hotelID)
	}
	return &hotel, nil
}

func (s *service) GetRoom(ctx context.Context, roomID uuid.UUID) (*Room, error) {
	return s.repo.GetRoomByID(ctx, roomID)
}

func (s *service) GetRooms(ctx context.Context, hotelID uuid.UUID) ([]Room, error) {
	return s.repo.GetRoomsByHotelID(ctx, hotelID)
}

func (s *service) CreateHotel(ctx context.Context, req HotelRequest) (*Hotel, error) {
	hotel := &Hotel{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Rating:      req.Rating,
		Amenities:   req.Amenities,
		ImageURL:    req.ImageURL,
		Active:      true,
	}

	if err := s.repo.CreateHotel(ctx, hotel); err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}

	s.invalidateCache(ctx)
	return hotel, nil
}

func (s *service) UpdateHotel(ctx context.Context, hotelID uuid.UUID, req HotelRequest) (*Hotel, error) {
	hotel, err := s.repo.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	hotel.Name = req.Name
	hotel.Description = req.Description
	hotel.Address = req.Address
	hotel.City = req.City
	hotel.Country = req.Country
	hotel.Latitude = req.Latitude
	hotel.Longitude = req.Longitude
	hotel.Rating = req.Rating
	hotel.Amenities = req.Amenities
	hotel.ImageURL = req.ImageURL
	hotel.UpdatedAt = time.Now()

	if err := s.repo.UpdateHotel(ctx, hotel); err != nil {
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}

	s.invalidateCache(ctx)
	return hotel, nil
}

func (s *service) DeleteHotel(ctx context.Context, hotelID uuid.UUID) error {
	if err := s.repo.DeleteHotel(ctx, hotelID); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) AddRoom(ctx context.Context, hotelID uuid.UUID, req RoomRequest) (*Room, error) {
	if _, err := s.repo.GetHotelByID(ctx, hotelID); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	room := &Room{
		HotelID:       hotelID,
		Name:          req.Name,
		Type:          req.Type,
		PricePerNight: req.PricePerNight,
		Currency:      currency,
		MaxGuests:     req.MaxGuests,
		TotalUnits:    req.TotalUnits,
		Amenities:     req.Amenities,
	}

	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateCache(ctx)
	return room, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.CachePatternHotels); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate hotel cache", "error", err)
	}
}

// searchCacheKey produces a stable key for one combination of filters
func searchCacheKey(q SearchQuery) string {
	raw := fmt.Sprintf("%s|%s|%d|%s|%s|%.1f|%d|%d",
		q.City, q.Country, q.Guests, q.CheckIn, q.CheckOut, q.MinRating, q.Page, q.Limit)
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
