package database

import (
	"stayease/internal/bookings"
	"stayease/internal/cancellation"
	"stayease/internal/hotels"
	"stayease/internal/users"

	"gorm.io/gorm"
)

// Migrate runs GORM auto-migrations for all feature models
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults require the extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&hotels.Hotel{},
		&hotels.Room{},
		&bookings.Booking{},
		&bookings.Payment{},
		&cancellation.CancellationPolicy{},
		&cancellation.Cancellation{},
	)
}

// MigrateConstraints adds database constraints the auto-migration cannot express
func MigrateConstraints(db *gorm.DB) error {
	// Prevent overlapping confirmed bookings from racing past the
	// availability check without a supporting index.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_room_dates
		ON bookings (room_id, check_in_date, check_out_date)
		WHERE status = 'CONFIRMED';
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cancellations_booking_id
		ON cancellations (booking_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
