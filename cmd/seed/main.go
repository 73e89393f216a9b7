package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"stayease/internal/cancellation"
	"stayease/internal/hotels"
	"stayease/internal/shared/config"
	"stayease/internal/shared/database"
	"stayease/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting StayEase database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.GetPostgreSQL()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed, database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"cancellations",
		"cancellation_policies",
		"payments",
		"bookings",
		"rooms",
		"hotels",
		"users",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll seeds users, hotels, rooms, and cancellation policies
func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	return s.seedHotels()
}

func (s *Seeder) seedUsers() error {
	seedUsers := []struct {
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"Admin", "User", "admin@stayease.dev", users.RoleAdmin},
		{"Alice", "Traveler", "alice@example.com", users.RoleUser},
		{"Bob", "Wanderer", "bob@example.com", users.RoleUser},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for _, u := range seedUsers {
		user := users.User{
			FirstName: u.firstName,
			LastName:  u.lastName,
			Email:     u.email,
			Password:  string(hash),
			Role:      u.role,
		}
		if err := s.db.GetPostgreSQL().Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.email, err)
		}
		fmt.Printf("  user: %s (%s)\n", u.email, u.role)
	}
	return nil
}

func (s *Seeder) seedHotels() error {
	type seedRoom struct {
		name   string
		rType  string
		price  string
		guests int
		units  int
	}

	seedHotels := []struct {
		name    string
		city    string
		country string
		rating  float64
		policy  cancellation.PolicyType
		rules   []cancellation.PolicyRule
		rooms   []seedRoom
	}{
		{
			name: "Seaside Grand", city: "Lisbon", country: "Portugal", rating: 4.6,
			policy: cancellation.PolicyFlexible,
			rules: []cancellation.PolicyRule{
				{DaysBeforeCheckIn: 1, RefundPercentage: 100},
				{DaysBeforeCheckIn: 0, RefundPercentage: 0},
			},
			rooms: []seedRoom{
				{"Ocean View Double", "DELUXE", "189.50", 2, 12},
				{"Garden Standard", "STANDARD", "119.00", 2, 20},
			},
		},
		{
			name: "Alpine Lodge", city: "Innsbruck", country: "Austria", rating: 4.3,
			policy: cancellation.PolicyModerate,
			rules: []cancellation.PolicyRule{
				{DaysBeforeCheckIn: 5, RefundPercentage: 100},
				{DaysBeforeCheckIn: 2, RefundPercentage: 50},
				{DaysBeforeCheckIn: 0, RefundPercentage: 0},
			},
			rooms: []seedRoom{
				{"Mountain Suite", "SUITE", "310.00", 4, 4},
				{"Valley Standard", "STANDARD", "145.75", 2, 15},
			},
		},
		{
			name: "Metro Business Inn", city: "Singapore", country: "Singapore", rating: 4.1,
			policy: cancellation.PolicyStrict,
			rules: []cancellation.PolicyRule{
				{DaysBeforeCheckIn: 14, RefundPercentage: 100},
				{DaysBeforeCheckIn: 7, RefundPercentage: 50},
				{DaysBeforeCheckIn: 0, RefundPercentage: 0},
			},
			rooms: []seedRoom{
				{"Executive King", "DELUXE", "220.00", 2, 30},
			},
		},
		{
			name: "Budget Stay Central", city: "Bangkok", country: "Thailand", rating: 3.8,
			policy: cancellation.PolicyNonRefundable,
			rules: []cancellation.PolicyRule{
				{DaysBeforeCheckIn: 0, RefundPercentage: 0},
			},
			rooms: []seedRoom{
				{"Compact Standard", "STANDARD", "39.99", 2, 50},
				{"Family Room", "FAMILY", "74.50", 5, 10},
			},
		},
	}

	for _, h := range seedHotels {
		hotel := hotels.Hotel{
			Name:      h.name,
			Address:   fmt.Sprintf("1 Main Street, %s", h.city),
			City:      h.city,
			Country:   h.country,
			Rating:    h.rating,
			Amenities: []string{"wifi", "breakfast"},
			Active:    true,
		}
		if err := s.db.GetPostgreSQL().Create(&hotel).Error; err != nil {
			return fmt.Errorf("failed to create hotel %s: %w", h.name, err)
		}

		for _, r := range h.rooms {
			price, err := decimal.NewFromString(r.price)
			if err != nil {
				return fmt.Errorf("invalid seed price %s: %w", r.price, err)
			}
			room := hotels.Room{
				HotelID:       hotel.ID,
				Name:          r.name,
				Type:          r.rType,
				PricePerNight: price,
				Currency:      "USD",
				MaxGuests:     r.guests,
				TotalUnits:    r.units,
			}
			if err := s.db.GetPostgreSQL().Create(&room).Error; err != nil {
				return fmt.Errorf("failed to create room %s: %w", r.name, err)
			}
		}

		policy := cancellation.CancellationPolicy{
			HotelID:              hotel.ID,
			Type:                 h.policy,
			Description:          policyDescription(h.policy),
			Rules:                h.rules,
			AllowCancellation:    true,
			RefundProcessingDays: 5,
		}
		if err := s.db.GetPostgreSQL().Create(&policy).Error; err != nil {
			return fmt.Errorf("failed to create policy for %s: %w", h.name, err)
		}

		fmt.Printf("  hotel: %s (%s, %d rooms, %s policy)\n", h.name, h.city, len(h.rooms), h.policy)
	}

	return nil
}

func policyDescription(t cancellation.PolicyType) string {
	switch t {
	case cancellation.PolicyFlexible:
		return "Full refund until the day before check-in."
	case cancellation.PolicyModerate:
		return "Full refund 5+ days out, 50% refund 2-4 days out."
	case cancellation.PolicyStrict:
		return "Full refund 14+ days out, 50% refund 7-13 days out."
	case cancellation.PolicyNonRefundable:
		return "No refund on cancellation."
	default:
		return ""
	}
}
