package bookings

type Status string

const (
	StatusBooked    Status = "BOOKED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	return s == StatusBooked || s == StatusCancelled
}

// IsActive reports whether the booking still holds seats.
func (s Status) IsActive() bool {
	return s == StatusBooked
}

func (s Status) CanBeCancelled() bool {
	return s == StatusBooked
}
