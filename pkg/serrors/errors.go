package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error carried across service and transport boundaries.
// Code is a stable machine-readable identifier, Message is human-readable.
type Base struct {
	Code    string
	Message string
}

func (e *Base) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

// ValidationErrors maps struct field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	for field, msg := range v {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return "validation failed"
}

// ProcessValidatorErrors flattens go-playground validator errors into a
// field -> message map.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		switch err.Tag() {
		case "required":
			out[err.Field()] = fmt.Sprintf("%s is required", err.Field())
		case "email":
			out[err.Field()] = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "min":
			out[err.Field()] = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			out[err.Field()] = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			out[err.Field()] = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		default:
			out[err.Field()] = fmt.Sprintf("%s is invalid", err.Field())
		}
	}
	return out
}
