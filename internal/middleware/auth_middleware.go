package middleware

import (
	"strings"

	"carzi/internal/models"
	"carzi/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and loads the caller's identity
// into the context for downstream handlers.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_type", claims.UserType)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

func CarOwnerRequired() gin.HandlerFunc {
	return requireUserType(string(models.UserTypeCarOwner))
}

func AdminRequired() gin.HandlerFunc {
	return requireUserType(string(models.UserTypeAdmin))
}

func requireUserType(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString("user_type")
		if userType != required && userType != string(models.UserTypeAdmin) {
			utils.ForbiddenResponse(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
