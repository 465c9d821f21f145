package routes

import (
	"carzi/internal/handlers"
	"carzi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/send-otp", authHandler.SendOTP)
		auth.POST("/verify-otp", authHandler.VerifyOTP)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password/:token", authHandler.ResetPassword)

		auth.GET("/profile", middleware.AuthRequired(jwtSecret), authHandler.Profile)
	}
}
