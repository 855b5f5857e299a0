package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps exactly one of them.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrInvalidInput      = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrInvalidUsername   = fmt.Errorf("%w: invalid username", ErrValidation)
	ErrInvalidPassword   = fmt.Errorf("%w: invalid password", ErrValidation)
	ErrInvalidDonor      = fmt.Errorf("%w: user is not a registered donor", ErrValidation)
	ErrUnknownClient     = fmt.Errorf("%w: user is not a registered client", ErrValidation)
	ErrNoActiveOrder     = fmt.Errorf("%w: no active order", ErrValidation)
	ErrMissingRange      = fmt.Errorf("%w: start and end dates are required", ErrValidation)
	ErrItemNotFound      = fmt.Errorf("%w: item", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("%w: order", ErrNotFound)
	ErrDuplicateUsername = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrItemUnavailable   = fmt.Errorf("%w: item does not exist or is already in an order", ErrConflict)
)

// IsUnexpected reports whether err belongs to none of the known kinds.
func IsUnexpected(err error) bool {
	if err == nil {
		return false
	}
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrAccessDenied, ErrConflict} {
		if errors.Is(err, kind) {
			return false
		}
	}
	return true
}
