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

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error) {
	var user models.User
	filter := bson.M{"$or": []bson.M{
		{"email": email},
		{"phone": phone},
	}}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email or phone: %w", err)
	}

	return &user, nil
}

func (r *userRepository) SetVerified(ctx context.Context, email string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"verified": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": passwordHash, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"reset_password_token":  tokenHash,
			"reset_password_expiry": expiry,
			"updated_at":            time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$unset": bson.M{
			"reset_password_token":  "",
			"reset_password_expiry": "",
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	return nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	var user models.User
	filter := bson.M{
		"reset_password_token":  tokenHash,
		"reset_password_expiry": bson.M{"$gt": now},
	}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return &user, nil
}
