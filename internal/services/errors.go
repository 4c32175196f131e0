package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidModelID     = errors.New("invalid model id")
	ErrModelNotFound      = errors.New("model not found")
	ErrInvalidCategory    = errors.New("category must be Local or Foreign")
	ErrInvalidBookingID   = errors.New("invalid booking id")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidStatus      = errors.New("status must be one of pending, confirmed, completed, cancelled")
	ErrInvalidTransition  = errors.New("booking status transition not allowed")
	ErrNotOwner           = errors.New("you do not have access to this resource")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateFieldError reports a uniqueness collision on a named field.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return e.Field + " already exists"
}
