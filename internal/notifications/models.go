package notifications

import "time"

const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingNotification is the message published for downstream consumers
// (email, audit) whenever a booking is created or cancelled.
type BookingNotification struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"bookingId"`
	UserID      string    `json:"userId"`
	EventID     string    `json:"eventId"`
	SeatsBooked int       `json:"seatsBooked"`
	TotalAmount string    `json:"totalAmount"`
	OccurredAt  time.Time `json:"occurredAt"`
}
