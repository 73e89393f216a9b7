package hotels

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Hotel defines the hotel catalog entry
type Hotel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Address     string    `gorm:"not null" json:"address"`
	City        string    `gorm:"not null;index" json:"city"`
	Country     string    `gorm:"not null" json:"country"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	Amenities   []string  `gorm:"serializer:json" json:"amenities"`
	ImageURL    string    `json:"image_url,omitempty"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE;"`
}

// Room defines a bookable room type within a hotel
type Room struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	HotelID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"hotel_id"`
	Name          string          `gorm:"not null" json:"name"`
	Type          string          `gorm:"type:varchar(30);check:type IN ('STANDARD', 'DELUXE', 'SUITE', 'FAMILY');default:'STANDARD'" json:"type"`
	PricePerNight decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_per_night"`
	Currency      string          `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	MaxGuests     int             `gorm:"not null;default:2" json:"max_guests"`
	TotalUnits    int             `gorm:"not null;default:1" json:"total_units"`
	Amenities     []string        `gorm:"serializer:json" json:"amenities"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

// TableName sets the table name for Hotel
func (Hotel) TableName() string {
	return "hotels"
}

// TableName sets the table name for Room
func (Room) TableName() string {
	return "rooms"
}

// SearchQuery represents hotel search filters
type SearchQuery struct {
	City      string `form:"city"`
	Country   string `form:"country"`
	Guests    int    `form:"guests"`
	CheckIn   string `form:"check_in"`  // YYYY-MM-DD
	CheckOut  string `form:"check_out"` // YYYY-MM-DD
	MinRating float64 `form:"min_rating"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// HotelRequest represents a create/update hotel payload (admin)
type HotelRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Description string   `json:"description"`
	Address     string   `json:"address" binding:"required"`
	City        string   `json:"city" binding:"required"`
	Country     string   `json:"country" binding:"required"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Rating      float64  `json:"rating" binding:"min=0,max=5"`
	Amenities   []string `json:"amenities"`
	ImageURL    string   `json:"image_url"`
}

// RoomRequest represents a create/update room payload (admin)
type RoomRequest struct {
	Name          string          `json:"name" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=STANDARD DELUXE SUITE FAMILY"`
	PricePerNight decimal.Decimal `json:"price_per_night" binding:"required"`
	Currency      string          `json:"currency"`
	MaxGuests     int             `json:"max_guests" binding:"required,min=1,max=10"`
	TotalUnits    int             `json:"total_units" binding:"required,min=1"`
	Amenities     []string        `json:"amenities"`
}
