package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransmissionType string
type FuelType string

const (
	TransmissionManual    TransmissionType = "manual"
	TransmissionAutomatic TransmissionType = "automatic"

	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelCNG      FuelType = "cng"
)

// LocationCoords is the simulated GPS position of a car.
type LocationCoords struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Car is a rental listing. Available is a single coarse flag: one outstanding
// booking monopolizes the car until reconciliation frees it. Rating and
// ReviewCount are denormalized from the reviews collection.
type Car struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID             primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	Title               string             `json:"title" bson:"title" validate:"required,min=3,max=120"`
	Brand               string             `json:"brand" bson:"brand" validate:"required"`
	Model               string             `json:"model" bson:"model" validate:"required"`
	Year                int                `json:"year" bson:"year" validate:"required,min=1980"`
	CarType             string             `json:"car_type" bson:"car_type" validate:"required"`
	Transmission        TransmissionType   `json:"transmission" bson:"transmission" validate:"required"`
	Fuel                FuelType           `json:"fuel" bson:"fuel" validate:"required"`
	Seats               int                `json:"seats" bson:"seats" validate:"required,min=2,max=12"`
	PricePerDay         float64            `json:"price_per_day" bson:"price_per_day" validate:"required,gt=0"`
	Location            string             `json:"location" bson:"location" validate:"required"`
	LocationCoords      *LocationCoords    `json:"location_coords,omitempty" bson:"location_coords,omitempty"`
	Images              []string           `json:"images" bson:"images"`
	Features            []string           `json:"features" bson:"features"`
	Available           bool               `json:"available" bson:"available"`
	Rating              float64            `json:"rating" bson:"rating"`
	ReviewCount         int64              `json:"review_count" bson:"review_count"`
	CarNumber           string             `json:"car_number" bson:"car_number" validate:"required"`
	HasInsurance        bool               `json:"has_insurance" bson:"has_insurance"`
	InsuranceExpiryDate *time.Time         `json:"insurance_expiry_date,omitempty" bson:"insurance_expiry_date,omitempty"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" bson:"updated_at"`
}
