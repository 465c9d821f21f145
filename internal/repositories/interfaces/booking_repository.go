package interfaces

import (
	"context"
	"time"

	"carzi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]*models.Booking, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Booking, error)

	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error
	UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error

	// HasActiveBooking reports whether any booking still blocks the car:
	// end_date >= now and status confirmed or ongoing.
	HasActiveBooking(ctx context.Context, carID primitive.ObjectID, now time.Time) (bool, error)
}
