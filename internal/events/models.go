package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is the persisted catalog record. TotalSeats is fixed at creation;
// AvailableSeats is the live counter mutated by bookings and cancellations,
// always within [0, TotalSeats]. Price is exact two-place decimal.
type Event struct {
	ID             uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid"`
	EventName      string          `json:"eventName" gorm:"size:150;not null"`
	EventType      string          `json:"eventType" gorm:"size:150;not null"`
	Description    string          `json:"description" gorm:"type:text"`
	EventDate      time.Time       `json:"eventDate" gorm:"type:date;not null"`
	EventTime      string          `json:"eventTime" gorm:"size:8;not null"`
	Location       string          `json:"location" gorm:"size:200;not null"`
	TotalSeats     int             `json:"totalSeats" gorm:"not null;check:total_seats > 0"`
	AvailableSeats int             `json:"availableSeats" gorm:"not null;check:available_seats >= 0 AND available_seats <= total_seats"`
	Price          decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Image          string          `json:"image" gorm:"size:255"`
	CreatedAt      time.Time       `json:"createdAt" gorm:"autoCreateTime;<-:create"`
}

func (Event) TableName() string {
	return "events"
}

// HasAvailability reports whether the event can seat the requested count.
func (e *Event) HasAvailability(seats int) bool {
	return e.AvailableSeats >= seats
}
