package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-recipe-api/internal/middlewares"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
	"github.com/sbilibin2017/gw-recipe-api/internal/services"
)

var testUserID = uuid.MustParse("0b7c1f4e-6a55-4e0a-9d7e-2f7c8a1d2b3c")

// newRequest builds a request authenticated as testUserID. A non-empty id is
// set as the {id} route parameter.
func newRequest(method, target, id string, body any) *http.Request {
	var rdr io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(v)
	default:
		b, _ := json.Marshal(v)
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, rdr)
	ctx := middlewares.WithUserID(req.Context(), testUserID)
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantFields map[string][]string
	}{
		{
			name:       "validation",
			err:        &services.ValidationError{Fields: map[string][]string{"tags": {`Invalid pk "9" - object does not exist.`}}},
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidInput,
			wantFields: map[string][]string{"tags": {`Invalid pk "9" - object does not exist.`}},
		},
		{
			name:       "not found",
			err:        services.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  msgNotFound,
		},
		{
			name:       "duplicate email",
			err:        services.ErrUserAlreadyExists,
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidInput,
			wantFields: map[string][]string{"email": {"user with this email already exists."}},
		},
		{
			name:       "bad credentials",
			err:        services.ErrInvalidCredentials,
			wantStatus: http.StatusBadRequest,
			wantError:  "Unable to authenticate with provided credentials.",
		},
		{
			name:       "unexpected",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantError:  msgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(context.Background(), w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantFields, resp.Fields)
		})
	}
}

func TestPathID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3", ""} {
		t.Run("invalid "+raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, ok := pathID(w, newRequest(http.MethodGet, "/", raw, nil))
			assert.False(t, ok)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}

	w := httptest.NewRecorder()
	id, ok := pathID(w, newRequest(http.MethodGet, "/", "42", nil))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestCurrentUser_Missing(t *testing.T) {
	w := httptest.NewRecorder()
	_, ok := currentUser(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, msgUnauthorized, decodeError(t, w).Error)
}

func TestFallbackHandlers(t *testing.T) {
	w := httptest.NewRecorder()
	NotFoundHandler(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	MethodNotAllowedHandler(w, httptest.NewRequest(http.MethodPost, "/api/user/me", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, msgMethodNotAllow, decodeError(t, w).Error)
}
