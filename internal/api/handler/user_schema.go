package handler

import "github.com/fittracker/user-service/internal/core/domain"

// errorResponse is the JSON envelope returned on validation and unexpected
// failures. Domain errors (404/409) render as plain-text bodies instead; see
// the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// createUserRequest carries the fields of a new user. The id field is
// accepted so that a client supplying one can be rejected explicitly rather
// than silently ignored.
type createUserRequest struct {
	ID        string      `json:"id,omitempty"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Birthdate domain.Date `json:"birthdate" validate:"required"`
	Email     string      `json:"email"     validate:"required,email"`
}

// updateUserRequest is a partial update: nil means "leave untouched".
// Names stay free text; only the email format is checked when supplied.
type updateUserRequest struct {
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	Birthdate *domain.Date `json:"birthdate"`
	Email     *string      `json:"email" validate:"omitempty,email"`
}

// --- Response types (views) ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal entity changes.

// userResponse is the full view: every persisted field.
type userResponse struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Birthdate domain.Date `json:"birthdate"`
	Email     string      `json:"email"`
}

// simpleUserResponse is the simplified view: id and names only.
type simpleUserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// emailUserResponse is the email view: id and email only.
type emailUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
