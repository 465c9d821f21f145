package interfaces

import (
	"context"

	"carzi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OTPRepository interface {
	// Replace removes any existing code for the email and stores the new
	// one, so only a single code is ever active per email.
	Replace(ctx context.Context, email, code string) error
	GetByEmailAndCode(ctx context.Context, email, code string) (*models.OTP, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
