package bookings

// BookEventRequest is the bookEvent payload. The user is always taken from
// the bearer token, never from the body.
type BookEventRequest struct {
	EventID     string `json:"eventId" binding:"required"`
	SeatsBooked int    `json:"seatsBooked" binding:"required"`
	PaymentID   string `json:"paymentId"`
}

// GetUserBookingsQuery captures the getUserBookings query string. Role is
// mandatory; userId only applies to the ADMIN branch.
type GetUserBookingsQuery struct {
	Role   string `form:"role" binding:"required"`
	UserID string `form:"userId"`
}
