package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/fittracker/user-service/internal/api/metrics"
	"github.com/fittracker/user-service/internal/core/domain"
	"github.com/fittracker/user-service/internal/core/ports"
)

// EmailCache abstracts the read-through cache (Redis) used for lookups by
// email. Invariant checks never read from it; mutations invalidate it.
type EmailCache interface {
	Get(ctx context.Context, email string) (*domain.User, bool, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, email string) error
}

// UserService enforces the email-uniqueness and existence invariants around
// the repository. It is the only component with business logic.
type UserService struct {
	repo   ports.UserRepository
	cache  EmailCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache EmailCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// CreateUser persists a new user and returns it with a freshly assigned id.
// A payload that already carries an id is rejected: ids belong to the store.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.ID != "" {
		return nil, domain.ErrUserAlreadyPersisted
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		metrics.DuplicateEmailRejectionsTotal.WithLabelValues("create").Inc()
		return nil, &domain.DuplicateEmailError{Email: input.Email}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user := &domain.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Birthdate: input.Birthdate,
		Email:     input.Email,
	}

	created, err := s.repo.Save(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, err
	}

	metrics.CreatedTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return created, nil
}

// UpdateUser applies a partial update to the user with the given id. Only
// non-nil fields of input overwrite stored values. A supplied email
// conflicts only when a different user already owns it; re-submitting the
// target's own email succeeds.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, &domain.UserNotFoundError{ID: id}
		}
		return nil, err
	}
	previousEmail := user.Email

	if input.Email != nil && *input.Email != user.Email {
		owner, err := s.repo.FindByEmail(ctx, *input.Email)
		if err == nil && owner.ID != id {
			metrics.DuplicateEmailRejectionsTotal.WithLabelValues("update").Inc()
			return nil, &domain.DuplicateEmailError{Email: *input.Email}
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Birthdate != nil {
		user.Birthdate = *input.Birthdate
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.invalidateEmail(ctx, previousEmail)
	if updated.Email != previousEmail {
		s.invalidateEmail(ctx, updated.Email)
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, &domain.UserNotFoundError{ID: id}
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by exact email match, consulting the cache
// first. Cache failures degrade to a repository read, never to an error.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("email cache read failed, falling back to store")
		} else if ok {
			metrics.EmailCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.EmailCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to populate email cache")
		}
	}
	return user, nil
}

// FindAllUsers returns every user. Ordering is unspecified.
func (s *UserService) FindAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

// FindUsersBornBefore returns the users whose birthdate falls strictly
// before date.
func (s *UserService) FindUsersBornBefore(ctx context.Context, date domain.Date) ([]*domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if u.Birthdate.Before(date) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// DeleteUser removes the user with the given id. Deleting an unknown id is
// an error, symmetric with get and update.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return &domain.UserNotFoundError{ID: id}
		}
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return err
	}

	s.invalidateEmail(ctx, user.Email)
	metrics.DeletedTotal.Inc()
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) invalidateEmail(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to invalidate email cache")
	}
}
