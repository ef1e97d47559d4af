package database

import (
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"doulabook/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info().Msg("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Info().Str("dsn", dsn).Msg("using SQLite")

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the schema for every domain model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.AvailabilityWindow{},
		&domain.Booking{},
		&domain.Review{},
		&domain.Payment{},
		&domain.Reminder{},
		&domain.Favourite{},
		&domain.Message{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return installBookingOverlapGuard(db)
	}
	return nil
}

// installBookingOverlapGuard adds the exclusion constraint that rejects two
// blocking bookings for the same doula over overlapping [starts_at, ends_at)
// intervals. AutoMigrate cannot express EXCLUDE, so the DDL is applied here;
// its violations surface as SQLSTATE 23P01 and the booking repository maps
// them to ErrSlotTaken.
func installBookingOverlapGuard(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Raw(
		`SELECT count(*) FROM pg_constraint WHERE conname = 'bookings_no_overlap'`,
	).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Info().Msg("adding bookings_no_overlap exclusion constraint")

	return db.Exec(`
ALTER TABLE bookings
ADD CONSTRAINT bookings_no_overlap
EXCLUDE USING gist (
	doula_id WITH =,
	tstzrange(starts_at, ends_at, '[)') WITH &&
) WHERE (status IN ('requested', 'confirmed', 'paid'))
`).Error
}
