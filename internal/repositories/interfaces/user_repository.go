package interfaces

import (
	"context"
	"time"

	"carzi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error)

	SetVerified(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	// Password-reset token lifecycle: write-once-then-cleared.
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
}
