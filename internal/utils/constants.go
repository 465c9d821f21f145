package utils

import "time"

// Application constants
const (
	AppName    = "Carzi"
	AppVersion = "1.0.0"

	DefaultCurrency = "INR"

	// Every booking carries this flat fee on top of price_per_day x days.
	ServiceFee = 100.0

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour
	PasswordMinLength = 6
	OTPLength         = 6
	OTPExpiry         = 5 * time.Minute
	ResetTokenLength  = 32
	ResetTokenExpiry  = time.Hour

	// Car listings
	MinCarImages  = 1
	MaxCarImages  = 5
	MaxImageSize  = 5 * 1024 * 1024 // 5MB
	MaxImageWidth = 1600
)

// Response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrValidationFailed   = "validation failed"
)

// Cache keys
const (
	CacheCarPrefix  = "car:"
	CacheUserPrefix = "user:"
)

// File types accepted for car images
var AllowedImageTypes = []string{"jpg", "jpeg", "png"}
