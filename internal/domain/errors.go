package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for shelf operations
var (
	// ErrBookNotFound indicates the requested book does not exist
	ErrBookNotFound = errors.New("book not found")
)

// ValidationError reports a rejected creation or edit input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
