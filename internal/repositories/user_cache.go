package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

// UserCacheRepository caches users by id in Redis
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached users
}

func NewUserCacheRepository(client *redis.Client, expiration time.Duration) *UserCacheRepository {
	return &UserCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func userCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID)
}

// Get returns the cached user, or nil on a cache miss.
func (r *UserCacheRepository) Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	key := userCacheKey(userID)

	val, err := r.client.Get(ctx, key).Bytes()

	logger.FromContext(ctx).Infow("cache get",
		"key", key,
		"hit", err == nil,
		"error", err,
	)

	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry cachedUser
	if err := json.Unmarshal(val, &entry); err != nil {
		return nil, err
	}
	return entry.user(), nil
}

// Set stores the user for the configured expiration.
func (r *UserCacheRepository) Set(ctx context.Context, user *models.UserDB) error {
	key := userCacheKey(user.UserID)

	val, err := json.Marshal(newCachedUser(user))
	if err == nil {
		err = r.client.Set(ctx, key, val, r.exp).Err()
	}

	logger.FromContext(ctx).Infow("cache set",
		"key", key,
		"ttl", r.exp,
		"error", err,
	)

	return err
}

// Delete evicts the user from the cache.
func (r *UserCacheRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	key := userCacheKey(userID)
	err := r.client.Del(ctx, key).Err()

	logger.FromContext(ctx).Infow("cache delete",
		"key", key,
		"error", err,
	)

	return err
}

// cachedUser is the cached profile of models.UserDB. The password hash is
// never cached; credential checks go to the database.
type cachedUser struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newCachedUser(u *models.UserDB) cachedUser {
	return cachedUser{
		UserID:      u.UserID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c cachedUser) user() *models.UserDB {
	return &models.UserDB{
		UserID:      c.UserID,
		Email:       c.Email,
		Name:        c.Name,
		IsActive:    c.IsActive,
		IsStaff:     c.IsStaff,
		IsSuperuser: c.IsSuperuser,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
