package database

import (
	"fmt"

	"portfolio-app/internal/domain/albums"
	"portfolio-app/internal/domain/bookings"
	"portfolio-app/internal/domain/links"
	"portfolio-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations. The handle is passed into
// the handler sets instead of living as a package global so tests can swap
// in their own connection.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate auto-migrates every domain model. Exported separately so the test
// suites can run it against their in-memory databases.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// identity
		&users.User{},
		&users.Profile{},

		// portfolio
		&albums.Album{},
		&albums.Image{},
		&links.CustomLink{},

		// bookings + chat
		&bookings.Booking{},
		&bookings.BookingMessage{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
