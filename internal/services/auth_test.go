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

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	tests := []struct {
		name         string
		email        string
		wantEmail    string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		skipLookup   bool
		wantErr      error
	}{
		{
			name:      "successful registration normalizes email",
			email:     "Test@Example.com",
			wantEmail: "test@example.com",
		},
		{
			name:       "empty email",
			email:      "  ",
			skipLookup: true,
			wantErr:    services.ErrEmailRequired,
		},
		{
			name:         "user already exists",
			email:        "bob@example.com",
			wantEmail:    "bob@example.com",
			existingUser: &models.UserDB{UserID: uuid.New()},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:      "concurrent duplicate insert",
			email:     "carol@example.com",
			wantEmail: "carol@example.com",
			writerErr: repositories.ErrConflict,
			wantErr:   services.ErrUserAlreadyExists,
		},
		{
			name:      "reader error",
			email:     "eve@example.com",
			wantEmail: "eve@example.com",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			email:     "dave@example.com",
			wantEmail: "dave@example.com",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.skipLookup {
				mockReader.EXPECT().
					GetByEmail(gomock.Any(), tt.wantEmail).
					Return(tt.existingUser, tt.readerErr)
			}

			if !tt.skipLookup && tt.existingUser == nil && tt.readerErr == nil {
				mockWriter.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *models.UserDB) error {
						assert.Equal(t, tt.wantEmail, u.Email)
						assert.Equal(t, "Test Name", u.Name)
						assert.True(t, u.IsActive)
						assert.False(t, u.IsStaff)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pass123")))
						if tt.writerErr == nil {
							u.UserID = uuid.New()
						}
						return tt.writerErr
					})
			}

			user, err := svc.Register(context.Background(), tt.email, "pass123", "Test Name")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantEmail, user.Email)
				assert.NotEqual(t, uuid.Nil, user.UserID)
			}
		})
	}
}

func TestAuthService_CreateSuperuser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, services.NewMockJWTGenerator(ctrl))

	mockReader.EXPECT().GetByEmail(gomock.Any(), "admin@example.com").Return(nil, nil)
	mockWriter.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	user, err := svc.CreateSuperuser(context.Background(), "Admin@Example.com", "secret", "Admin")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsActive)
	assert.Equal(t, "admin@example.com", user.Email)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	password := "secret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	userID := uuid.New()

	tests := []struct {
		name      string
		user      *models.UserDB
		readerErr error
		jwtErr    error
		loginPass string
		wantErr   error
		wantToken string
	}{
		{
			name:      "successful login",
			user:      &models.UserDB{UserID: userID, Email: "alice@example.com", PasswordHash: string(hashed), IsActive: true},
			loginPass: password,
			wantToken: "token123",
		},
		{
			name:      "user not found",
			loginPass: password,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "inactive user",
			user:      &models.UserDB{UserID: userID, Email: "alice@example.com", PasswordHash: string(hashed)},
			loginPass: password,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "wrong password",
			user:      &models.UserDB{UserID: userID, Email: "alice@example.com", PasswordHash: string(hashed), IsActive: true},
			loginPass: "wrong",
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			readerErr: errors.New("db error"),
			loginPass: password,
			wantErr:   errors.New("db error"),
		},
		{
			name:      "jwt error",
			user:      &models.UserDB{UserID: userID, Email: "alice@example.com", PasswordHash: string(hashed), IsActive: true},
			loginPass: password,
			jwtErr:    errors.New("sign error"),
			wantErr:   errors.New("sign error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByEmail(gomock.Any(), "alice@example.com").
				Return(tt.user, tt.readerErr)

			if tt.wantToken != "" || tt.jwtErr != nil {
				mockJWT.EXPECT().
					Generate(gomock.Any(), userID).
					Return(tt.wantToken, tt.jwtErr)
			}

			token, err := svc.Login(context.Background(), " Alice@Example.com", tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "test@example.com", services.NormalizeEmail(" Test@EXAMPLE.com "))
	assert.Equal(t, "", services.NormalizeEmail("   "))
}
