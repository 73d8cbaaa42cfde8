package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
)

// BindingErrorDetail turns a gin binding error into a client-facing error
// detail. Validator failures list the offending fields; anything else is
// reported as a malformed request.
func BindingErrorDetail(err error) *dto.ErrorDetail {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := dto.NewValidationErrors()
		for _, fieldErr := range validationErrs {
			details.AddError(fieldErr.Field(), formatValidationError(fieldErr))
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		return errorDetail.WithDetails(details.Errors)
	}

	return dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")
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
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
