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
)

type otpRepository struct {
	collection *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) interfaces.OTPRepository {
	return &otpRepository{
		collection: db.Collection("otps"),
	}
}

// Replace keeps at most one active code per email. Expiry is enforced by the
// TTL index on created_at, so stale codes never match a lookup.
func (r *otpRepository) Replace(ctx context.Context, email, code string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return fmt.Errorf("failed to clear existing OTPs: %w", err)
	}

	otp := &models.OTP{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Code:      code,
		CreatedAt: time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, otp); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	return nil
}

func (r *otpRepository) GetByEmailAndCode(ctx context.Context, email, code string) (*models.OTP, error) {
	var otp models.OTP
	err := r.collection.FindOne(ctx, bson.M{"email": email, "code": code}).Decode(&otp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrInvalidOTP
		}
		return nil, fmt.Errorf("failed to get OTP: %w", err)
	}

	return &otp, nil
}

func (r *otpRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}

	return nil
}
