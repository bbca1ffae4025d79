package ports

import (
	"context"

	"github.com/fittracker/user-service/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// FindByID and FindByEmail return domain.ErrUserNotFound when no record
// matches. Email lookup is an exact, case-sensitive string match.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindAll returns every user. Ordering is unspecified but stable within
	// a single call.
	FindAll(ctx context.Context) ([]*domain.User, error)
	// Save persists the user, assigning a fresh id when none is set, and
	// returns the persisted record. A write that violates the unique email
	// index returns domain.DuplicateEmailError.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}
