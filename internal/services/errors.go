package services

import "errors"

// Domain errors, mapped onto HTTP statuses at the handler boundary.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("an account with this email already exists")
	ErrPhoneTaken      = errors.New("an account with this phone number already exists")
	ErrInvalidPassword = errors.New("invalid credentials")

	// ErrVerificationRequired distinguishes an unverified car-owner login
	// from a plain credential failure so the client can redirect to the
	// OTP flow.
	ErrVerificationRequired = errors.New("account not verified")

	ErrInvalidOTP        = errors.New("invalid or expired OTP")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	ErrCarNotFound    = errors.New("car not found")
	ErrCarUnavailable = errors.New("car is not available for booking")
	ErrNotCarOwner    = errors.New("not authorized to modify this car")
	ErrTooFewImages   = errors.New("at least one image is required")
	ErrTooManyImages  = errors.New("a listing can have at most five images")

	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidDates    = errors.New("end date must be after start date")
	ErrNotBookingOwner = errors.New("not authorized for this booking")

	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("you have already submitted a review for this car")
	ErrNotReviewAuthor = errors.New("not authorized to delete this review")
)
