package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
)

// BindingErrorDetail converts a request binding failure into an error detail.
// Field-level validation failures are expanded into readable messages; other
// binding errors (malformed JSON, wrong types) keep the raw error as details.
func BindingErrorDetail(err error, message string) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		messages := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			messages = append(messages, formatValidationError(fe))
		}
		if len(fieldErrors) == 1 {
			detail = detail.WithField(fieldErrors[0].Field())
		}
		return detail.WithDetails(messages)
	}

	return detail.WithDetails(err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
