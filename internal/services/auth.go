package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
	"github.com/sbilibin2017/gw-recipe-api/internal/repositories"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// Error variables
var (
	ErrEmailRequired      = errors.New("users must have an email address")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
	Update(ctx context.Context, userID uuid.UUID, email, name, passwordHash *string) (*models.UserDB, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active regular user.
func (svc *AuthService) Register(ctx context.Context, email, password, name string) (*models.UserDB, error) {
	return svc.create(ctx, email, password, name, false)
}

// CreateSuperuser creates an active user with staff and superuser flags set.
func (svc *AuthService) CreateSuperuser(ctx context.Context, email, password, name string) (*models.UserDB, error) {
	return svc.create(ctx, email, password, name, true)
}

func (svc *AuthService) create(ctx context.Context, email, password, name string, superuser bool) (*models.UserDB, error) {
	log := logger.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		log.Errorw("failed to check user exists", "email", email, "error", err)
		return nil, err
	}
	if existing != nil {
		log.Infow("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	user := &models.UserDB{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}
	if err := svc.writer.Save(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		log.Errorw("failed to save user", "email", email, "error", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContext(ctx)

	email = NormalizeEmail(email)
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		log.Errorw("failed to get user", "email", email, "error", err)
		return "", err
	}
	if user == nil || !user.IsActive {
		log.Infow("login rejected", "email", email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Infow("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		log.Errorw("failed to generate JWT", "error", err)
		return "", err
	}

	return token, nil
}
