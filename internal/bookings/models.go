package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eventbook/internal/events"
)

// Booking is one settled seat purchase. TotalAmount is computed once, at
// booking time, from the event price then in force; later price edits never
// touch it.
type Booking struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `json:"userId" gorm:"type:uuid;not null;index"`
	EventID     uuid.UUID       `json:"eventId" gorm:"type:uuid;not null;index"`
	PaymentID   string          `json:"paymentId" gorm:"size:100;not null"`
	SeatsBooked int             `json:"seatsBooked" gorm:"not null;check:seats_booked > 0"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:numeric(10,2);not null"`
	Status      Status          `json:"bookingStatus" gorm:"size:20;not null;default:'BOOKED'"`
	BookingDate time.Time       `json:"bookingDate" gorm:"autoCreateTime;<-:create"`
}

func (Booking) TableName() string {
	return "bookings"
}

// UserBooking pairs a booking with its event for history listings.
type UserBooking struct {
	Booking Booking       `json:"booking"`
	Event   *events.Event `json:"event"`
}
