package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP is a one-time email verification code. Records expire via a TTL index
// on created_at; issuing a new code replaces any prior one for the email.
type OTP struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Code      string             `json:"-" bson:"code"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
