package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes mounts the booking endpoints. Auth is handled inside
// the service from the Authorization header rather than by middleware, so
// getUserBookings can serve both the token and the admin userId branch.
func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	bookingGroup := router.Group("/bookings")
	{
		bookingGroup.POST("/bookEvent", controller.BookEvent)
		bookingGroup.GET("/getBookingById/:bookingId", controller.GetBookingByID)
		bookingGroup.GET("/getUserBookings", controller.GetUserBookings)
		bookingGroup.PUT("/cancelBooking/:bookingId", controller.CancelBooking)
	}
}
