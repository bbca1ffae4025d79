package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used with errors.Is across the service and HTTP layers.
var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("email already in use")
var ErrUserAlreadyPersisted = errors.New("user already has a database id")

// UserNotFoundError carries the id that failed to resolve so the HTTP layer
// can render a message naming it.
type UserNotFoundError struct {
	ID string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User with ID=%s was not found", e.ID)
}

func (e *UserNotFoundError) Unwrap() error { return ErrUserNotFound }

// DuplicateEmailError carries the offending email address. The message text
// is part of the API contract.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("Email %s is already in use.", e.Email)
}

func (e *DuplicateEmailError) Unwrap() error { return ErrDuplicateEmail }

// User is the sole entity of the system. ID is empty until the store assigns
// one on first save. Email is unique across all users; the service enforces
// the invariant and the store's unique index backs it.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Birthdate Date   `json:"birthdate"`
	Email     string `json:"email"`
}
