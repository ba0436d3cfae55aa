package database

import (
	"gorm.io/gorm"

	"eventbook/internal/bookings"
	"eventbook/internal/events"
	"eventbook/internal/users"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&bookings.Booking{},
	); err != nil {
		return err
	}
	return migrateConstraints(db)
}

// migrateConstraints adds the constraints AutoMigrate cannot express. The
// partial unique index backs the one-active-booking rule at the database
// level, so the application-side duplicate check cannot be raced past.
func migrateConstraints(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_one_active_per_user_event
		ON bookings (user_id, event_id)
		WHERE status <> 'CANCELLED';
	`).Error
}
