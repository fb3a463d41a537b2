package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/middlewares"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
	"github.com/sbilibin2017/gw-recipe-api/internal/services"
	"github.com/sbilibin2017/gw-recipe-api/internal/validators"
)

var validate = validators.New()

const (
	msgInvalidInput   = "Invalid input."
	msgMalformedJSON  = "Malformed JSON request body."
	msgNotFound       = "Not found."
	msgUnauthorized   = "Authentication credentials were not provided."
	msgInternalError  = "Internal server error."
	msgMethodNotAllow = "Method not allowed."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidInput, Fields: fields})
}

// writeServiceError maps a service error onto a status code and JSON body.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		writeFieldErrors(w, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeFieldErrors(w, map[string][]string{"email": {"user with this email already exists."}})
	case errors.Is(err, services.ErrEmailRequired):
		writeFieldErrors(w, map[string][]string{"email": {"This field is required."}})
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Unable to authenticate with provided credentials.")
	default:
		logger.FromContext(ctx).Errorw("internal server error", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// decodeJSON decodes the request body into v, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, msgMalformedJSON)
		return false
	}
	return true
}

// checkValid answers a validator error and reports whether the handler may continue.
func checkValid(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return true
	}
	if fieldErrs := validators.FieldErrors(err); fieldErrs != nil {
		writeFieldErrors(w, fieldErrs)
		return false
	}
	logger.FromContext(r.Context()).Errorw("validation failed", "error", err)
	writeError(w, http.StatusInternalServerError, msgInternalError)
	return false
}

// currentUser returns the authenticated user id, answering 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
	}
	return userID, ok
}

// pathID parses the {id} URL parameter. Anything but a positive integer is
// answered with 404, as no such row can exist.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

// NotFoundHandler answers unknown routes with a JSON 404.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound)
}

// MethodNotAllowedHandler answers known routes called with the wrong method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
}
