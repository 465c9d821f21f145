package handlers

import (
	"carzi/internal/services"
	"carzi/internal/utils"
	"carzi/internal/validators"
	"carzi/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarHandler struct {
	carService services.CarService
	logger     *logger.Logger
}

func NewCarHandler(carService services.CarService, log *logger.Logger) *CarHandler {
	return &CarHandler{
		carService: carService,
		logger:     log,
	}
}

// CreateCar accepts a multipart form: listing fields plus 1 to 5 images
// under the "images" key.
func (h *CarHandler) CreateCar(c *gin.Context) {
	ownerID := c.MustGet("user_id").(primitive.ObjectID)

	var req services.CreateCarRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "multipart form required")
		return
	}
	images := form.File["images"]

	car, err := h.carService.CreateCar(c.Request.Context(), ownerID, &req, images)
	if err != nil {
		switch err {
		case services.ErrTooFewImages, services.ErrTooManyImages, utils.ErrUnsupportedImageType:
			utils.BadRequestResponse(c, err.Error())
		default:
			h.logger.WithError(err).Error("Failed to create car listing")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "car listed", car)
}

func (h *CarHandler) ListCars(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	cars, total, err := h.carService.ListCars(c.Request.Context(), params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list cars")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "cars", cars, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *CarHandler) GetCar(c *gin.Context) {
	id, ok := h.carIDParam(c)
	if !ok {
		return
	}

	car, err := h.carService.GetCar(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrCarNotFound:
			utils.NotFoundResponse(c, "car")
		default:
			h.logger.WithError(err).Error("Failed to get car")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "car", car)
}

func (h *CarHandler) GetMyCars(c *gin.Context) {
	ownerID := c.MustGet("user_id").(primitive.ObjectID)

	cars, err := h.carService.GetOwnerCars(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list owner cars")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "cars", cars)
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	requesterID := c.MustGet("user_id").(primitive.ObjectID)
	id, ok := h.carIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	car, err := h.carService.UpdateCar(c.Request.Context(), id, requesterID, &req)
	if err != nil {
		switch err {
		case services.ErrCarNotFound:
			utils.NotFoundResponse(c, "car")
		case services.ErrNotCarOwner:
			utils.ForbiddenResponse(c, err.Error())
		default:
			h.logger.WithError(err).Error("Failed to update car")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "car updated", car)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	requesterID := c.MustGet("user_id").(primitive.ObjectID)
	id, ok := h.carIDParam(c)
	if !ok {
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), id, requesterID); err != nil {
		switch err {
		case services.ErrCarNotFound:
			utils.NotFoundResponse(c, "car")
		case services.ErrNotCarOwner:
			utils.ForbiddenResponse(c, err.Error())
		default:
			h.logger.WithError(err).Error("Failed to delete car")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "car removed", nil)
}

func (h *CarHandler) GetCarLocation(c *gin.Context) {
	id, ok := h.carIDParam(c)
	if !ok {
		return
	}

	coords, err := h.carService.GetCarLocation(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrCarNotFound:
			utils.NotFoundResponse(c, "car")
		default:
			h.logger.WithError(err).Error("Failed to get car location")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "car location", coords)
}

// ReconcileAvailability is the maintenance endpoint that frees cars stuck
// behind expired bookings without waiting for the next listing sweep.
func (h *CarHandler) ReconcileAvailability(c *gin.Context) {
	freed, err := h.carService.ReconcileAvailability(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Availability reconciliation failed")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "availability reconciled", gin.H{"freed": freed})
}

func (h *CarHandler) carIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid car id")
		return primitive.NilObjectID, false
	}
	return id, true
}
