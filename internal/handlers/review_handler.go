package handlers

import (
	"carzi/internal/services"
	"carzi/internal/utils"
	"carzi/internal/validators"
	"carzi/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	logger        *logger.Logger
}

func NewReviewHandler(reviewService services.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log,
	}
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID := c.MustGet("user_id").(primitive.ObjectID)

	var req services.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	req.CarID = c.Param("id")
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case services.ErrCarNotFound:
			utils.NotFoundResponse(c, "car")
		case services.ErrDuplicateReview:
			utils.ConflictResponse(c, err.Error())
		default:
			h.logger.WithError(err).Error("Failed to submit review")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "review submitted", review)
}

func (h *ReviewHandler) GetCarReviews(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid car id")
		return
	}

	reviews, err := h.reviewService.GetCarReviews(c.Request.Context(), carID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list reviews")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "reviews", reviews)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID := c.MustGet("user_id").(primitive.ObjectID)

	reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid review id")
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, userID); err != nil {
		switch err {
		case services.ErrReviewNotFound:
			utils.NotFoundResponse(c, "review")
		case services.ErrNotReviewAuthor:
			utils.ForbiddenResponse(c, err.Error())
		default:
			h.logger.WithError(err).Error("Failed to delete review")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "review deleted", nil)
}
