package routes

import (
	"carzi/internal/handlers"
	"carzi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(rg *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	bookings := rg.Group("/bookings", middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/my-bookings", bookingHandler.GetMyBookings)
		bookings.GET("/owner-bookings", bookingHandler.GetOwnerBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id/pay", bookingHandler.MarkPaid)
		bookings.GET("/:id/invoice", bookingHandler.DownloadInvoice)

		bookings.PUT("/:id/status", middleware.AdminRequired(), bookingHandler.UpdateStatus)
	}
}
