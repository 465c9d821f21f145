package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a per-(car,user) rating. The unique index on (car_id, user_id)
// backs the one-review-per-car rule; the car's aggregate rating is recomputed
// after every review write or delete.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CarID     primitive.ObjectID `json:"car_id" bson:"car_id"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Rating    int                `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment   string             `json:"comment" bson:"comment" validate:"required"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
