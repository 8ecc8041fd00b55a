package routes

import (
	"sparklewash/handlers"
	"sparklewash/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		// Availability is public so shop pages can render slots
		// before login.
		booking.POST("/availability", hb.Booking.GetAvailability)

		booking.Use(middleware.JWTAuthMiddleware())
		booking.POST("/session", hb.Booking.StartSession)                             // Phase 1: Start session
		booking.PUT("/session/:sessionID", hb.Booking.UpdateSession)                  // Phase 2: Select services, date, time
		booking.GET("/session/:sessionID/slots", hb.Booking.GetSessionSlots)          // Phase 2: Slots for the draft's date
		booking.POST("/session/:sessionID/review", hb.Booking.Review)                 // Phase 3: Review
		booking.POST("/session/:sessionID/create-order", hb.Booking.CreateOrder)      // Phase 4: Open gateway order
		booking.POST("/session/:sessionID/verify-payment", hb.Booking.VerifyPayment)  // Phase 5: Verify and persist
		booking.DELETE("/session/:sessionID", hb.Booking.CancelSession)               // Abandon (refused mid-charge)
		booking.GET("/my-bookings", hb.Booking.MyBookings)
	}
}
