package mongodb

import (
	"context"
	"fmt"
	"time"

	"carzi/internal/models"
	"carzi/internal/repositories/interfaces"
	"carzi/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) GetByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]*models.Booking, error) {
	return r.findBookings(ctx, bson.M{"customer_id": customerID})
}

func (r *bookingRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Booking, error) {
	return r.findBookings(ctx, bson.M{"owner_id": ownerID})
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) error {
	return r.updateField(ctx, id, "payment_status", status)
}

func (r *bookingRepository) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	return r.updateField(ctx, id, "booking_status", status)
}

// HasActiveBooking checks for any booking still blocking the car: the rental
// window has not elapsed and the booking was neither cancelled nor completed.
// Start date is intentionally not part of the filter.
func (r *bookingRepository) HasActiveBooking(ctx context.Context, carID primitive.ObjectID, now time.Time) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"car_id":   carID,
		"end_date": bson.M{"$gte": now},
		"booking_status": bson.M{"$in": []models.BookingStatus{
			models.BookingStatusConfirmed,
			models.BookingStatusOngoing,
		}},
	})
	if err != nil {
		return false, fmt.Errorf("failed to count active bookings: %w", err)
	}

	return count > 0, nil
}

func (r *bookingRepository) findBookings(ctx context.Context, filter bson.M) ([]*models.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) updateField(ctx context.Context, id primitive.ObjectID, field string, value interface{}) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: value, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrBookingNotFound
	}

	return nil
}
