package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

func TestUserCacheRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewUserCacheRepository(rdb, 2*time.Second)

	user := &models.UserDB{
		UserID:       uuid.New(),
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "hash",
		IsActive:     true,
		IsStaff:      true,
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get keeps the profile without the password hash", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, user))

		raw, err := rdb.Get(ctx, userCacheKey(user.UserID)).Result()
		require.NoError(t, err)
		assert.NotContains(t, raw, "password")

		got, err := repo.Get(ctx, user.UserID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.Email, got.Email)
		assert.Empty(t, got.PasswordHash)
		assert.True(t, got.IsStaff)
		assert.True(t, user.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("delete evicts", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, user))
		require.NoError(t, repo.Delete(ctx, user.UserID))

		got, err := repo.Get(ctx, user.UserID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, user))
		time.Sleep(3 * time.Second)

		got, err := repo.Get(ctx, user.UserID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCachedUser_OmitsPasswordHash(t *testing.T) {
	user := &models.UserDB{UserID: uuid.New(), Email: "bob@example.com", Name: "Bob", PasswordHash: "$2a$10$secret", IsStaff: true}

	raw, err := json.Marshal(newCachedUser(user))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")

	got := newCachedUser(user).user()
	assert.Empty(t, got.PasswordHash)
	assert.Equal(t, user.Email, got.Email)
	assert.True(t, got.IsStaff)
}
