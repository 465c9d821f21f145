package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeCarOwner UserType = "car-owner"
	UserTypeAdmin    UserType = "admin"
)

// User is a marketplace account. Customers are verified at signup;
// car-owners stay unverified until they confirm an email OTP.
type User struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name                string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email               string             `json:"email" bson:"email" validate:"required,email"`
	Phone               string             `json:"phone" bson:"phone" validate:"required"`
	Password            string             `json:"-" bson:"password"`
	UserType            UserType           `json:"type" bson:"type" validate:"required"`
	Verified            bool               `json:"verified" bson:"verified"`
	Aadhaar             string             `json:"aadhaar,omitempty" bson:"aadhaar,omitempty"`
	ResetPasswordToken  string             `json:"-" bson:"reset_password_token,omitempty"`
	ResetPasswordExpiry *time.Time         `json:"-" bson:"reset_password_expiry,omitempty"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) IsCarOwner() bool {
	return u.UserType == UserTypeCarOwner
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}
