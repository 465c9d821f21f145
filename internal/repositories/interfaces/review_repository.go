package interfaces

import (
	"context"

	"carzi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	GetByCarID(ctx context.Context, carID primitive.ObjectID) ([]*models.Review, error)
	GetByCarAndUser(ctx context.Context, carID, userID primitive.ObjectID) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// GetCarAggregate computes the mean rating and count over all reviews
	// for the car. Returns (0, 0) when no reviews exist.
	GetCarAggregate(ctx context.Context, carID primitive.ObjectID) (float64, int64, error)
}
