package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Not Found Errors =====
var (
	ErrJobNotFound   = errors.New("job not found")
	ErrEventNotFound = errors.New("event not found")
	ErrEmailNotFound = errors.New("email not found")
	ErrUserNotFound  = errors.New("user profile not found")
)

// ===== Validation Errors =====
var (
	ErrTitleRequired         = errors.New("title is required")
	ErrInvalidStatus         = errors.New("invalid job status")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrInvalidTimeRange      = errors.New("end time must be after start time")
	ErrInvalidClassification = errors.New("invalid classification filter")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
)

// ===== Conflict Errors =====
var (
	ErrJobHasEvents          = errors.New("job still has scheduled events")
	ErrEmailAlreadyProcessed = errors.New("email already processed")
	ErrSyncInProgress        = errors.New("sync already in progress")
)

// ===== External Service Errors =====
var (
	ErrMailUnavailable      = errors.New("mail gateway unavailable")
	ErrCalendarUnavailable  = errors.New("calendar service unavailable")
	ErrAIUnavailable        = errors.New("AI completion service unavailable")
	ErrExtractionUnparsable = errors.New("AI output could not be parsed into job fields")
)
