package validators

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("object_id", validateObjectID)
}

// ValidateStruct runs the tag rules on a request struct and returns a
// field -> message map suitable for the validation error envelope.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		details[strings.ToLower(fieldErr.Field())] = messageFor(fieldErr)
	}

	return details
}

// ValidateBookingDates rejects inverted or zero-length ranges.
func ValidateBookingDates(start, end time.Time) bool {
	return end.After(start)
}

func validateObjectID(fl validator.FieldLevel) bool {
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "value is too short or too small (min " + fieldErr.Param() + ")"
	case "max":
		return "value is too long or too large (max " + fieldErr.Param() + ")"
	case "gt":
		return "must be greater than " + fieldErr.Param()
	case "oneof":
		return "must be one of: " + fieldErr.Param()
	case "object_id":
		return "must be a valid id"
	default:
		return "invalid value"
	}
}
