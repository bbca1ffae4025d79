package ports

import (
	"context"

	"github.com/fittracker/user-service/internal/core/domain"
)

// CreateUserInput carries the data needed to create a new user. ID must be
// empty: ids are assigned by the store, never by callers.
type CreateUserInput struct {
	ID        string
	FirstName string
	LastName  string
	Birthdate domain.Date
	Email     string
}

// UpdateUserInput is a partial update: only non-nil fields overwrite the
// stored user, absent fields are left untouched. Modelled as explicit
// pointers so "supplied" and "empty" stay distinguishable.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Birthdate *domain.Date
	Email     *string
}

// UserService defines use-case operations for users. All invariant checks
// (email uniqueness, existence) live behind this interface; the HTTP layer
// performs none.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAllUsers(ctx context.Context) ([]*domain.User, error)
	// FindUsersBornBefore returns users whose birthdate is strictly before
	// date; users born exactly on date are excluded.
	FindUsersBornBefore(ctx context.Context, date domain.Date) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
