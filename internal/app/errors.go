package app

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound indicates the user has not created a profile yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrFoodNotFound indicates that the requested food does not exist.
	ErrFoodNotFound = errors.New("food not found")
	// ErrEntryNotFound indicates that the diary entry does not exist or
	// belongs to another user.
	ErrEntryNotFound = errors.New("diary entry not found")
	// ErrPremiumRequired indicates that the feature needs an active
	// premium subscription.
	ErrPremiumRequired = errors.New("premium subscription required")
)

// ValidationError reports invalid caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
