package handlers

import (
	"net/http"

	"carzi/internal/services"
	"carzi/internal/utils"
	"carzi/internal/validators"
	"carzi/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthHandler struct {
	authService services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case services.ErrEmailTaken, services.ErrPhoneTaken:
			utils.ConflictResponse(c, err.Error())
		default:
			h.logger.WithError(err).Error("Signup failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "account created", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case services.ErrInvalidPassword:
			utils.BadRequestResponse(c, utils.ErrInvalidCredentials)
		case services.ErrVerificationRequired:
			// The client uses this flag to route the user into the OTP flow.
			utils.ErrorResponseWithDetails(c, http.StatusUnauthorized, "VERIFICATION_REQUIRED",
				err.Error(), map[string]string{"verification_required": "true"})
		default:
			h.logger.WithError(err).Error("Login failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "logged in", resp)
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	if err := h.authService.SendOTP(c.Request.Context(), req.Email); err != nil {
		switch err {
		case services.ErrUserNotFound:
			utils.NotFoundResponse(c, "user")
		default:
			h.logger.WithError(err).Error("Failed to send OTP")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "verification code sent", nil)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
		Code  string `json:"code" validate:"required,len=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	if err := h.authService.VerifyOTP(c.Request.Context(), req.Email, req.Code); err != nil {
		switch err {
		case services.ErrInvalidOTP:
			utils.BadRequestResponse(c, err.Error())
		case services.ErrUserNotFound:
			utils.NotFoundResponse(c, "user")
		default:
			h.logger.WithError(err).Error("OTP verification failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "account verified", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		switch err {
		case services.ErrUserNotFound:
			utils.NotFoundResponse(c, "user")
		default:
			h.logger.WithError(err).Error("Forgot-password failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "password reset email sent", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" validate:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	token := c.Param("token")
	if err := h.authService.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		switch err {
		case services.ErrInvalidResetToken:
			utils.BadRequestResponse(c, err.Error())
		default:
			h.logger.WithError(err).Error("Password reset failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "password updated", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.MustGet("user_id").(primitive.ObjectID)

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			utils.NotFoundResponse(c, "user")
		default:
			h.logger.WithError(err).Error("Failed to load profile")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "profile", user)
}
