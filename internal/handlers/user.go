package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

//go:generate mockgen -source=user.go -destination=mock_user.go -package=handlers

// UserCreator defines the interface that the registration service must implement.
type UserCreator interface {
	Register(ctx context.Context, email, password, name string) (*models.UserDB, error)
}

// TokenIssuer exchanges credentials for a bearer token.
type TokenIssuer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// UserProfile reads and updates users.
type UserProfile interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	Update(ctx context.Context, userID uuid.UUID, upd models.UserUpdate) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

func toUserResponse(u *models.UserDB) models.UserResponse {
	return models.UserResponse{Email: u.Email, Name: u.Name}
}

// NewCreateUserHandler returns an HTTP handler for user registration.
// @Summary Create a new user
// @Description Creates an account. The email is lower-cased and must be unique; the password is stored hashed.
// @Tags user
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User registration request"
// @Success 201 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input or email taken"
// @Failure 500 {object} models.ErrorResponse
// @Router /user/create [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateUserRequest
		if !decodeJSON(w, r, &req) || !checkValid(w, r, validate.Struct(req)) {
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(user))
	}
}

// NewTokenHandler returns an HTTP handler issuing bearer tokens.
// @Summary Obtain a token
// @Description Returns a bearer token for valid credentials of an active user.
// @Tags user
// @Accept json
// @Produce json
// @Param request body models.TokenRequest true "Credentials"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} models.ErrorResponse "Invalid credentials"
// @Failure 429 {object} models.ErrorResponse "Too many requests"
// @Router /user/token [post]
func NewTokenHandler(svc TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TokenRequest
		if !decodeJSON(w, r, &req) || !checkValid(w, r, validate.Struct(req)) {
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
	}
}

// NewGetMeHandler returns an HTTP handler for the authenticated user's profile.
// @Summary Get current user
// @Tags user
// @Produce json
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /user/me [get]
// @Security BearerAuth
func NewGetMeHandler(svc UserProfile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		user, err := svc.Get(r.Context(), userID)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(user))
	}
}

// NewUpdateMeHandler returns an HTTP handler updating the authenticated user.
// With partial set (PATCH) only supplied fields are validated and changed.
// @Summary Update current user
// @Tags user
// @Accept json
// @Produce json
// @Param request body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /user/me [put]
// @Router /user/me [patch]
// @Security BearerAuth
func NewUpdateMeHandler(svc UserProfile, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.UpdateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		err := validate.Struct(req)
		if partial {
			err = validate.StructPartial(req, req.PresentFields()...)
		}
		if !checkValid(w, r, err) {
			return
		}

		user, err := svc.Update(r.Context(), userID, models.UserUpdate{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
		})
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(user))
	}
}

// NewListUsersHandler returns an HTTP handler listing all users for staff.
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {array} models.AdminUserResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserProfile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		resp := make([]models.AdminUserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, models.AdminUserResponse{
				UserID:      u.UserID,
				Email:       u.Email,
				Name:        u.Name,
				IsActive:    u.IsActive,
				IsStaff:     u.IsStaff,
				IsSuperuser: u.IsSuperuser,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
