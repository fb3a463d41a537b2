package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
	"github.com/sbilibin2017/gw-recipe-api/internal/repositories"
)

//go:generate mockgen -source=user.go -destination=mock_user.go -package=services

// UserCache caches users by id.
type UserCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	Set(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserService manages the authenticated user's profile.
type UserService struct {
	reader UserReader
	writer UserWriter
	cache  UserCache
}

func NewUserService(reader UserReader, writer UserWriter, cache UserCache) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// Get returns the user, reading through the cache.
func (svc *UserService) Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	log := logger.FromContext(ctx)

	user, err := svc.cache.Get(ctx, userID)
	if err != nil {
		log.Errorw("failed to read user cache", "user_id", userID, "error", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = svc.reader.GetByID(ctx, userID)
	if err != nil {
		log.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := svc.cache.Set(ctx, user); err != nil {
		log.Errorw("failed to cache user", "user_id", userID, "error", err)
	}
	return user, nil
}

// IsStaff reports whether the user exists and has the staff flag.
func (svc *UserService) IsStaff(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := svc.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsActive && user.IsStaff, nil
}

// Update applies the non-nil fields of upd. A new password is hashed and the
// cached copy of the user is dropped.
func (svc *UserService) Update(ctx context.Context, userID uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
	log := logger.FromContext(ctx)

	var email, passwordHash *string
	if upd.Email != nil {
		normalized := NormalizeEmail(*upd.Email)
		if normalized == "" {
			return nil, ErrEmailRequired
		}
		email = &normalized
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Errorw("failed to hash password", "error", err)
			return nil, err
		}
		h := string(hashed)
		passwordHash = &h
	}

	user, err := svc.writer.Update(ctx, userID, email, upd.Name, passwordHash)
	if errors.Is(err, repositories.ErrConflict) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		log.Errorw("failed to update user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := svc.cache.Delete(ctx, userID); err != nil {
		log.Errorw("failed to evict cached user", "user_id", userID, "error", err)
	}
	return user, nil
}

// List returns all users.
func (svc *UserService) List(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}
