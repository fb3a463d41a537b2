package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-recipe-api/internal/jwt"
	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// StaffChecker reports whether a user may access admin routes.
type StaffChecker interface {
	IsStaff(ctx context.Context, userID uuid.UUID) (bool, error)
}

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the authenticated user id stored by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// AuthMiddleware returns a middleware that validates the bearer token and
// stores the user id from its claims in the request context.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.FromContext(ctx).Infow("authorization failed", "error", err)
				writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.FromContext(ctx).Infow("authorization failed", "error", err)
				writeError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, claims.UserID)))
		})
	}
}

// StaffMiddleware rejects authenticated users that are not staff. It must be
// mounted after AuthMiddleware.
func StaffMiddleware(checker StaffChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, ok := UserIDFromContext(ctx)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			isStaff, err := checker.IsStaff(ctx, userID)
			if err != nil {
				logger.FromContext(ctx).Errorw("staff check failed", "user_id", userID, "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error.")
				return
			}
			if !isStaff {
				writeError(w, http.StatusForbidden, "You do not have permission to perform this action.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
