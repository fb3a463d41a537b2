package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-recipe-api/internal/models"
	"github.com/sbilibin2017/gw-recipe-api/internal/repositories"
	"github.com/sbilibin2017/gw-recipe-api/internal/services"
)

func TestUserService_Get(t *testing.T) {
	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Email: "alice@example.com", IsActive: true}

	tests := []struct {
		name    string
		setup   func(r *services.MockUserReader, c *services.MockUserCache)
		want    *models.UserDB
		wantErr error
	}{
		{
			name: "cache hit",
			setup: func(r *services.MockUserReader, c *services.MockUserCache) {
				c.EXPECT().Get(gomock.Any(), userID).Return(user, nil)
			},
			want: user,
		},
		{
			name: "cache miss reads through",
			setup: func(r *services.MockUserReader, c *services.MockUserCache) {
				c.EXPECT().Get(gomock.Any(), userID).Return(nil, nil)
				r.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				c.EXPECT().Set(gomock.Any(), user).Return(nil)
			},
			want: user,
		},
		{
			name: "cache failure falls back to database",
			setup: func(r *services.MockUserReader, c *services.MockUserCache) {
				c.EXPECT().Get(gomock.Any(), userID).Return(nil, errors.New("redis down"))
				r.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				c.EXPECT().Set(gomock.Any(), user).Return(errors.New("redis down"))
			},
			want: user,
		},
		{
			name: "not found",
			setup: func(r *services.MockUserReader, c *services.MockUserCache) {
				c.EXPECT().Get(gomock.Any(), userID).Return(nil, nil)
				r.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)
			},
			wantErr: services.ErrNotFound,
		},
		{
			name: "database error",
			setup: func(r *services.MockUserReader, c *services.MockUserCache) {
				c.EXPECT().Get(gomock.Any(), userID).Return(nil, nil)
				r.EXPECT().GetByID(gomock.Any(), userID).Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := services.NewMockUserReader(ctrl)
			cache := services.NewMockUserCache(ctrl)
			tt.setup(reader, cache)

			svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), cache)

			got, err := svc.Get(context.Background(), userID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserService_IsStaff(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		user    *models.UserDB
		dbErr   error
		want    bool
		wantErr bool
	}{
		{"staff", &models.UserDB{UserID: userID, IsActive: true, IsStaff: true}, nil, true, false},
		{"regular", &models.UserDB{UserID: userID, IsActive: true}, nil, false, false},
		{"inactive staff", &models.UserDB{UserID: userID, IsStaff: true}, nil, false, false},
		{"missing", nil, nil, false, false},
		{"error", nil, errors.New("db error"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := services.NewMockUserReader(ctrl)
			cache := services.NewMockUserCache(ctrl)
			cache.EXPECT().Get(gomock.Any(), userID).Return(nil, nil)
			reader.EXPECT().GetByID(gomock.Any(), userID).Return(tt.user, tt.dbErr)
			if tt.user != nil {
				cache.EXPECT().Set(gomock.Any(), tt.user).Return(nil)
			}

			svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), cache)

			got, err := svc.IsStaff(context.Background(), userID)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	userID := uuid.New()
	name := "Alice Cooper"
	password := "newpass"
	email := " New@Example.com"

	t.Run("hashes password, normalizes email and evicts cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		writer := services.NewMockUserWriter(ctrl)
		cache := services.NewMockUserCache(ctrl)
		updated := &models.UserDB{UserID: userID, Email: "new@example.com", Name: name}

		writer.EXPECT().
			Update(gomock.Any(), userID, gomock.Any(), &name, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, e, _, hash *string) (*models.UserDB, error) {
				require.NotNil(t, e)
				assert.Equal(t, "new@example.com", *e)
				require.NotNil(t, hash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)))
				return updated, nil
			})
		cache.EXPECT().Delete(gomock.Any(), userID).Return(nil)

		svc := services.NewUserService(services.NewMockUserReader(ctrl), writer, cache)

		got, err := svc.Update(context.Background(), userID, models.UserUpdate{Email: &email, Name: &name, Password: &password})
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("name only leaves password untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		writer := services.NewMockUserWriter(ctrl)
		cache := services.NewMockUserCache(ctrl)
		writer.EXPECT().
			Update(gomock.Any(), userID, nil, &name, nil).
			Return(&models.UserDB{UserID: userID, Name: name}, nil)
		cache.EXPECT().Delete(gomock.Any(), userID).Return(nil)

		svc := services.NewUserService(services.NewMockUserReader(ctrl), writer, cache)

		_, err := svc.Update(context.Background(), userID, models.UserUpdate{Name: &name})
		assert.NoError(t, err)
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		writer := services.NewMockUserWriter(ctrl)
		writer.EXPECT().
			Update(gomock.Any(), userID, gomock.Any(), nil, nil).
			Return(nil, repositories.ErrConflict)

		svc := services.NewUserService(services.NewMockUserReader(ctrl), writer, services.NewMockUserCache(ctrl))

		_, err := svc.Update(context.Background(), userID, models.UserUpdate{Email: &email})
		assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
	})

	t.Run("blank email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := services.NewUserService(services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl), services.NewMockUserCache(ctrl))

		blank := " "
		_, err := svc.Update(context.Background(), userID, models.UserUpdate{Email: &blank})
		assert.ErrorIs(t, err, services.ErrEmailRequired)
	})

	t.Run("missing user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		writer := services.NewMockUserWriter(ctrl)
		writer.EXPECT().Update(gomock.Any(), userID, nil, &name, nil).Return(nil, nil)

		svc := services.NewUserService(services.NewMockUserReader(ctrl), writer, services.NewMockUserCache(ctrl))

		_, err := svc.Update(context.Background(), userID, models.UserUpdate{Name: &name})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockUserReader(ctrl)
	users := []models.UserDB{{Email: "a@example.com"}, {Email: "b@example.com"}}
	reader.EXPECT().List(gomock.Any()).Return(users, nil)

	svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), services.NewMockUserCache(ctrl))

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, got)
}
