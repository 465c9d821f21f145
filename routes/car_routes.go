package routes

import (
	"carzi/internal/handlers"
	"carzi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCarRoutes(rg *gin.RouterGroup, carHandler *handlers.CarHandler, reviewHandler *handlers.ReviewHandler, jwtSecret string) {
	cars := rg.Group("/cars")
	{
		cars.GET("", carHandler.ListCars)
		cars.GET("/:id", carHandler.GetCar)
		cars.GET("/:id/reviews", reviewHandler.GetCarReviews)

		// Frees cars stuck behind expired bookings on demand.
		cars.PUT("/maintenance/availability", carHandler.ReconcileAvailability)

		authed := cars.Group("", middleware.AuthRequired(jwtSecret))
		{
			authed.GET("/:id/location", carHandler.GetCarLocation)
			authed.POST("/:id/reviews", reviewHandler.SubmitReview)
			authed.DELETE("/:id/reviews/:reviewId", reviewHandler.DeleteReview)

			owner := authed.Group("", middleware.CarOwnerRequired())
			{
				owner.POST("", carHandler.CreateCar)
				owner.GET("/my-cars", carHandler.GetMyCars)
				owner.PUT("/:id", carHandler.UpdateCar)
				owner.DELETE("/:id", carHandler.DeleteCar)
			}
		}
	}
}
