package triage

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrNotResolved   = errors.New("feedback can only be submitted for resolved complaints")
	ErrNotFound      = errors.New("complaint not found")
)

// ValidationError reports the first submission field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
