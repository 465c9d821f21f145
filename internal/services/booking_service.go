package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"carzi/internal/models"
	"carzi/internal/repositories/interfaces"
	"carzi/internal/utils"
	"carzi/pkg/logger"
	"carzi/pkg/payment"
	"carzi/pkg/pdf"
	"carzi/pkg/sms"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	CreateBooking(ctx context.Context, customerID primitive.ObjectID, req *CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetCustomerBookings(ctx context.Context, customerID primitive.ObjectID) ([]*models.Booking, error)
	GetOwnerBookings(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Booking, error)

	// MarkPaid flips a pay-later booking's payment status to completed. Only
	// the car owner of the booking may call it, confirming the cash was
	// received.
	MarkPaid(ctx context.Context, id, requesterID primitive.ObjectID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error)
	GenerateInvoice(ctx context.Context, id, requesterID primitive.ObjectID) ([]byte, error)
}

type CreateBookingRequest struct {
	CarID         string               `json:"car_id" validate:"required"`
	StartDate     time.Time            `json:"start_date" validate:"required"`
	EndDate       time.Time            `json:"end_date" validate:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=pay-later online"`
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	carRepo     interfaces.CarRepository
	userRepo    interfaces.UserRepository
	gateway     payment.Gateway
	smsProvider sms.Provider
	logger      *logger.Logger
	currency    string
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	carRepo interfaces.CarRepository,
	userRepo interfaces.UserRepository,
	gateway payment.Gateway,
	smsProvider sms.Provider,
	log *logger.Logger,
	currency string,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		smsProvider: smsProvider,
		logger:      log,
		currency:    currency,
	}
}

// CreateBooking reserves the car first, then creates the payment order and
// the booking record. The conditional reserve is what makes concurrent
// attempts safe: the second caller loses there and gets ErrCarUnavailable.
// Any later failure releases the car again.
func (s *bookingService) CreateBooking(ctx context.Context, customerID primitive.ObjectID, req *CreateBookingRequest) (*models.Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDates
	}

	carID, err := primitive.ObjectIDFromHex(req.CarID)
	if err != nil {
		return nil, ErrCarNotFound
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	days := totalDays(req.StartDate, req.EndDate)
	amount := car.PricePerDay*float64(days) + utils.ServiceFee

	if err := s.carRepo.Reserve(ctx, carID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		CarID:         carID,
		CustomerID:    customerID,
		OwnerID:       car.OwnerID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalDays:     days,
		TotalAmount:   amount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		BookingStatus: models.BookingStatusConfirmed,
	}

	if req.PaymentMethod == models.PaymentMethodOnline {
		order, err := s.gateway.CreateOrder(ctx, &payment.OrderRequest{
			Amount:   amount,
			Currency: s.currency,
			Receipt:  fmt.Sprintf("car-%s", carID.Hex()),
			Notes: map[string]string{
				"car_id":      carID.Hex(),
				"customer_id": customerID.Hex(),
			},
		})
		if err != nil {
			s.release(ctx, carID)
			return nil, fmt.Errorf("failed to create payment order: %w", err)
		}
		booking.PaymentReference = order.ID
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.release(ctx, carID)
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, "created", map[string]interface{}{
		"car_id":         carID.Hex(),
		"customer_id":    customerID.Hex(),
		"total_amount":   amount,
		"payment_method": string(req.PaymentMethod),
	})

	s.notifyOwner(ctx, car, booking)

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID primitive.ObjectID) ([]*models.Booking, error) {
	return s.bookingRepo.GetByCustomerID(ctx, customerID)
}

func (s *bookingService) GetOwnerBookings(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Booking, error) {
	return s.bookingRepo.GetByOwnerID(ctx, ownerID)
}

func (s *bookingService) MarkPaid(ctx context.Context, id, requesterID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != requesterID {
		return nil, ErrNotBookingOwner
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, id, models.PaymentStatusCompleted); err != nil {
		return nil, err
	}
	booking.PaymentStatus = models.PaymentStatusCompleted

	s.logger.LogBookingEvent(id, "payment_completed", nil)

	return booking, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateBookingStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.BookingStatus = status

	// A terminal status stops blocking the car; free it right away rather
	// than waiting for the next reconciliation sweep.
	if status == models.BookingStatusCancelled || status == models.BookingStatusCompleted {
		s.release(ctx, booking.CarID)
	}

	s.logger.LogBookingEvent(id, "status_changed", map[string]interface{}{"status": string(status)})

	return booking, nil
}

func (s *bookingService) GenerateInvoice(ctx context.Context, id, requesterID primitive.ObjectID) ([]byte, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != requesterID && booking.OwnerID != requesterID {
		return nil, ErrNotBookingOwner
	}

	car, err := s.carRepo.GetByID(ctx, booking.CarID)
	if err != nil {
		return nil, err
	}
	customer, err := s.userRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByID(ctx, booking.OwnerID)
	if err != nil {
		return nil, err
	}

	return pdf.RenderInvoice(&pdf.InvoiceData{
		BookingID:     booking.ID.Hex(),
		CarTitle:      car.Title,
		CarNumber:     car.CarNumber,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		OwnerName:     owner.Name,
		OwnerEmail:    owner.Email,
		StartDate:     booking.StartDate,
		EndDate:       booking.EndDate,
		Days:          booking.TotalDays,
		PricePerDay:   car.PricePerDay,
		Subtotal:      booking.TotalAmount - utils.ServiceFee,
		ServiceFee:    utils.ServiceFee,
		Total:         booking.TotalAmount,
		PaymentMethod: string(booking.PaymentMethod),
		PaymentStatus: string(booking.PaymentStatus),
		Currency:      s.currency,
	})
}

// totalDays rounds any partial day up; a rental always costs at least one day.
func totalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func (s *bookingService) release(ctx context.Context, carID primitive.ObjectID) {
	if err := s.carRepo.Release(ctx, carID); err != nil {
		s.logger.WithError(err).WithCarID(carID).Error("Failed to release car")
	}
}

// notifyOwner sends the owner a booking alert SMS. Delivery failures are
// logged and swallowed; the booking stands either way.
func (s *bookingService) notifyOwner(ctx context.Context, car *models.Car, booking *models.Booking) {
	if s.smsProvider == nil {
		return
	}

	owner, err := s.userRepo.GetByID(ctx, car.OwnerID)
	if err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Warn("Failed to look up owner for SMS alert")
		return
	}

	msg := fmt.Sprintf("%s: your car %s was booked from %s to %s.",
		utils.AppName, car.Title,
		booking.StartDate.Format("02 Jan"), booking.EndDate.Format("02 Jan"))
	if err := s.smsProvider.SendSMS(ctx, owner.Phone, msg); err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Warn("Failed to send owner SMS alert")
	}
}
