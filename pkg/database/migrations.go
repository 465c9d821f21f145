package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the booking and auth flows rely on:
// unique user identity, the one-review-per-(car,user) rule, OTP expiry, and
// the lookups used by reconciliation and dashboard listings.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return err
	}

	cars := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "available", Value: 1}}},
	}
	if _, err := db.Collection("cars").Indexes().CreateMany(ctx, cars); err != nil {
		return err
	}

	bookings := []mongo.IndexModel{
		{Keys: bson.D{{Key: "car_id", Value: 1}, {Key: "end_date", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	if _, err := db.Collection("bookings").Indexes().CreateMany(ctx, bookings); err != nil {
		return err
	}

	reviews := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "car_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("reviews").Indexes().CreateMany(ctx, reviews); err != nil {
		return err
	}

	otps := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(300),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}
	if _, err := db.Collection("otps").Indexes().CreateMany(ctx, otps); err != nil {
		return err
	}

	return nil
}
