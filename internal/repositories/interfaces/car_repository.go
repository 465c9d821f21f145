package interfaces

import (
	"context"

	"carzi/internal/models"
	"carzi/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error)
	GetUnavailable(ctx context.Context) ([]*models.Car, error)

	// Reserve atomically flips available true->false. It fails with
	// ErrCarUnavailable when the flag was already false, which is the
	// conflict signal for concurrent booking attempts.
	Reserve(ctx context.Context, id primitive.ObjectID) error
	Release(ctx context.Context, id primitive.ObjectID) error

	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int64) error
}
