// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers match them with errors.Is; anything else is an
// infrastructure failure.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrNothingToUpdate    = errors.New("nothing to update")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func invalidNumber(field string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidNumber, field, cause)
}

func databaseError(err error) error {
	return fmt.Errorf("database error: %w", err)
}

// Detail returns the message after the sentinel prefix, for use as the
// details of a 400 response.
func Detail(err error) string {
	for _, sentinel := range []error{ErrValidation, ErrInvalidNumber} {
		prefix := sentinel.Error() + ": "
		if msg := err.Error(); len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return ""
}
