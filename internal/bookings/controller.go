package bookings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventbook/internal/shared/apierror"
	"eventbook/internal/shared/utils/response"
)

type Controller interface {
	BookEvent(c *gin.Context)
	GetBookingByID(c *gin.Context)
	GetUserBookings(c *gin.Context)
	CancelBooking(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// BookEvent godoc
// @Summary Book seats for an event
// @Tags bookings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param request body BookEventRequest true "Booking details"
// @Success 200 {object} response.ApiResponse
// @Router /bookings/bookEvent [post]
func (ctrl *controller) BookEvent(c *gin.Context) {
	var req BookEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierror.Wrap(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	booking, err := ctrl.service.BookEvent(c.Request.Context(), c.GetHeader("Authorization"), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "Event booked successfully", booking)
}

// GetBookingByID godoc
// @Summary Fetch a booking by its ID
// @Tags bookings
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.ApiResponse
// @Router /bookings/getBookingById/{bookingId} [get]
func (ctrl *controller) GetBookingByID(c *gin.Context) {
	booking, err := ctrl.service.GetBookingByID(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "Booking fetched successfully", booking)
}

// GetUserBookings godoc
// @Summary List a user's bookings with their events
// @Tags bookings
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param role query string true "Caller role (USER or ADMIN)"
// @Param userId query string false "Target user ID (ADMIN only)"
// @Success 200 {object} response.ApiResponse
// @Router /bookings/getUserBookings [get]
func (ctrl *controller) GetUserBookings(c *gin.Context) {
	var query GetUserBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, apierror.BadRequest("Role parameter is required"))
		return
	}

	list, err := ctrl.service.GetUserBookings(c.Request.Context(), c.GetHeader("Authorization"), &query)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "Bookings fetched successfully", list)
}

// CancelBooking godoc
// @Summary Cancel a booking and return its seats
// @Tags bookings
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.ApiResponse
// @Router /bookings/cancelBooking/{bookingId} [put]
func (ctrl *controller) CancelBooking(c *gin.Context) {
	booking, err := ctrl.service.CancelBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "Booking cancelled successfully", booking)
}
