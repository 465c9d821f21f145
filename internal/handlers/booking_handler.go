package handlers

import (
	"fmt"
	"net/http"

	"carzi/internal/models"
	"carzi/internal/services"
	"carzi/internal/utils"
	"carzi/internal/validators"
	"carzi/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         log,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	customerID := c.MustGet("user_id").(primitive.ObjectID)

	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if details := validators.ValidateStruct(&req); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), customerID, &req)
	if err != nil {
		switch err {
		case services.ErrCarNotFound:
			utils.NotFoundResponse(c, "car")
		case services.ErrInvalidDates:
			utils.BadRequestResponse(c, err.Error())
		case services.ErrCarUnavailable:
			utils.ConflictResponse(c, "booking failed, the car may already be booked")
		default:
			h.logger.WithError(err).Error("Failed to create booking")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "booking confirmed", booking)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	customerID := c.MustGet("user_id").(primitive.ObjectID)

	bookings, err := h.bookingService.GetCustomerBookings(c.Request.Context(), customerID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list customer bookings")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "bookings", bookings)
}

func (h *BookingHandler) GetOwnerBookings(c *gin.Context) {
	ownerID := c.MustGet("user_id").(primitive.ObjectID)

	bookings, err := h.bookingService.GetOwnerBookings(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list owner bookings")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "bookings", bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	requesterID := c.MustGet("user_id").(primitive.ObjectID)
	id, ok := h.bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrBookingNotFound:
			utils.NotFoundResponse(c, "booking")
		default:
			h.logger.WithError(err).Error("Failed to get booking")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	if booking.CustomerID != requesterID && booking.OwnerID != requesterID {
		utils.ForbiddenResponse(c, "not authorized for this booking")
		return
	}

	utils.SuccessResponse(c, "booking", booking)
}

// MarkPaid settles a pay-later booking. Only the car owner of the booking
// may confirm payment; anyone else gets a 401.
func (h *BookingHandler) MarkPaid(c *gin.Context) {
	requesterID := c.MustGet("user_id").(primitive.ObjectID)
	id, ok := h.bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.MarkPaid(c.Request.Context(), id, requesterID)
	if err != nil {
		switch err {
		case services.ErrBookingNotFound:
			utils.NotFoundResponse(c, "booking")
		case services.ErrNotBookingOwner:
			utils.UnauthorizedResponse(c)
		default:
			h.logger.WithError(err).Error("Failed to mark booking paid")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "payment recorded", booking)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bookingIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if !models.ValidBookingStatus(req.Status) {
		utils.BadRequestResponse(c, "invalid booking status")
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, models.BookingStatus(req.Status))
	if err != nil {
		switch err {
		case services.ErrBookingNotFound:
			utils.NotFoundResponse(c, "booking")
		default:
			h.logger.WithError(err).Error("Failed to update booking status")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "booking status updated", booking)
}

func (h *BookingHandler) DownloadInvoice(c *gin.Context) {
	requesterID := c.MustGet("user_id").(primitive.ObjectID)
	id, ok := h.bookingIDParam(c)
	if !ok {
		return
	}

	data, err := h.bookingService.GenerateInvoice(c.Request.Context(), id, requesterID)
	if err != nil {
		switch err {
		case services.ErrBookingNotFound:
			utils.NotFoundResponse(c, "booking")
		case services.ErrNotBookingOwner:
			utils.ForbiddenResponse(c, err.Error())
		default:
			h.logger.WithError(err).Error("Failed to generate invoice")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", id.Hex()))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *BookingHandler) bookingIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid booking id")
		return primitive.NilObjectID, false
	}
	return id, true
}
