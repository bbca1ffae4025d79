package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fittracker/user-service/internal/core/domain"
)

const emailCacheTTL = 5 * time.Minute

// EmailCache is a read-through cache for lookups by email, backed by Redis.
// Key format: user:email:<email>
// Entries expire after emailCacheTTL; every mutation of a user invalidates
// the affected email keys.
type EmailCache struct {
	client *redis.Client
}

// NewEmailCache creates an EmailCache wrapping the given Redis client.
func NewEmailCache(client *redis.Client) *EmailCache {
	return &EmailCache{client: client}
}

// Get returns the cached user for email, with ok reporting whether the key
// was present.
func (c *EmailCache) Get(ctx context.Context, email string) (*domain.User, bool, error) {
	payload, err := c.client.Get(ctx, c.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("email cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, false, fmt.Errorf("email cache decode: %w", err)
	}
	return &user, true, nil
}

// Set stores the user under its email key (expires after emailCacheTTL).
func (c *EmailCache) Set(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("email cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.Email), payload, emailCacheTTL).Err()
}

// Invalidate drops the entry for email, if any.
func (c *EmailCache) Invalidate(ctx context.Context, email string) error {
	return c.client.Del(ctx, c.key(email)).Err()
}

func (c *EmailCache) key(email string) string {
	return "user:email:" + email
}
