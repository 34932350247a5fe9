package models

import (
	"errors"
	"fmt"
)

// Domain errors. Controllers map each of these to a distinct HTTP status so
// the frontend can show an actionable message instead of a generic banner.
var (
	ErrFormNotFound          = errors.New("form not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrQuotaExceeded         = errors.New("daily form generation quota exceeded")
	ErrRevisionLimitExceeded = errors.New("revision limit reached for this form")

	ErrGoogleAuthRequired     = errors.New("google authorization required")
	ErrGoogleAuthExpired      = errors.New("google authorization expired")
	ErrGooglePermissionDenied = errors.New("google permission denied")
	ErrFormsAPI               = errors.New("forms provider error")
)

// SchemaValidationError names the offending field path in a malformed schema.
type SchemaValidationError struct {
	Path   string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("invalid schema at %s: %s", e.Path, e.Reason)
}
