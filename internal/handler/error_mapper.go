package handler

import (
	"errors"

	"github.com/tradeline/jobtrack/api/internal/model"
	"github.com/tradeline/jobtrack/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrJobNotFound):
		return model.NewNotFoundError("job")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrEmailNotFound):
		return model.NewNotFoundError("email")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user profile")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrTitleRequired):
		return model.NewValidationError([]model.FieldError{
			{Field: "title", Message: "title is required"},
		})
	case errors.Is(err, service.ErrInvalidStatus):
		return model.NewValidationError([]model.FieldError{
			{Field: "status", Message: "must be one of pending, in-progress, completed, inactive"},
		})
	case errors.Is(err, service.ErrInvalidTransition):
		return model.NewValidationError([]model.FieldError{
			{Field: "status", Message: "transition not allowed from the current status"},
		})
	case errors.Is(err, service.ErrInvalidTimeRange):
		return model.NewValidationError([]model.FieldError{
			{Field: "end", Message: "end must be after start"},
		})
	case errors.Is(err, service.ErrInvalidClassification):
		return model.NewValidationError([]model.FieldError{
			{Field: "classification", Message: "must be active or one of the stored statuses"},
		})
	case errors.Is(err, service.ErrPasswordTooShort):
		return model.NewValidationError([]model.FieldError{
			{Field: "password", Message: "must be at least 8 characters"},
		})
	case errors.Is(err, service.ErrExtractionUnparsable):
		return model.NewValidationError([]model.FieldError{
			{Field: "email", Message: "AI output could not be parsed into job fields"},
		})

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrJobHasEvents),
		errors.Is(err, service.ErrEmailAlreadyProcessed),
		errors.Is(err, service.ErrSyncInProgress):
		return model.NewConflictError(err.Error())

	// ===== External Service Errors → 502 =====
	case errors.Is(err, service.ErrMailUnavailable),
		errors.Is(err, service.ErrCalendarUnavailable),
		errors.Is(err, service.ErrAIUnavailable):
		return model.NewExternalServiceError(err.Error())

	default:
		return model.NewInternalError("")
	}
}
