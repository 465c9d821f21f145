package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string
type PaymentStatus string
type BookingStatus string

const (
	PaymentMethodPayLater PaymentMethod = "pay-later"
	PaymentMethodOnline   PaymentMethod = "online"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a reservation of a car for a date range. TotalAmount is
// price_per_day x days plus the flat service fee. PaymentReference holds the
// gateway order id for online bookings.
type Booking struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CarID            primitive.ObjectID `json:"car_id" bson:"car_id"`
	CustomerID       primitive.ObjectID `json:"customer_id" bson:"customer_id"`
	OwnerID          primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	StartDate        time.Time          `json:"start_date" bson:"start_date"`
	EndDate          time.Time          `json:"end_date" bson:"end_date"`
	TotalDays        int                `json:"total_days" bson:"total_days"`
	TotalAmount      float64            `json:"total_amount" bson:"total_amount"`
	PaymentMethod    PaymentMethod      `json:"payment_method" bson:"payment_method"`
	PaymentStatus    PaymentStatus      `json:"payment_status" bson:"payment_status"`
	BookingStatus    BookingStatus      `json:"booking_status" bson:"booking_status"`
	PaymentReference string             `json:"payment_reference,omitempty" bson:"payment_reference,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsActive reports whether the booking still blocks its car: the rental
// window has not elapsed and the booking was not cancelled or completed.
// StartDate is deliberately ignored; a future booking blocks the car now.
func (b *Booking) IsActive(now time.Time) bool {
	if b.BookingStatus != BookingStatusConfirmed && b.BookingStatus != BookingStatusOngoing {
		return false
	}
	return !b.EndDate.Before(now)
}

func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusConfirmed, BookingStatusOngoing, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}
