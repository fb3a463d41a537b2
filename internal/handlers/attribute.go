package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

//go:generate mockgen -source=attribute.go -destination=mock_attribute.go -package=handlers

// AttributeManager manages the caller's tags or ingredients.
type AttributeManager interface {
	List(ctx context.Context, userID uuid.UUID, filter models.AttributeFilter) ([]models.AttributeDB, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.AttributeDB, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (*models.AttributeDB, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.AttributeDB, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

func toAttributeResponse(a models.AttributeDB) models.AttributeResponse {
	return models.AttributeResponse{ID: a.ID, Name: a.Name}
}

// NewListAttributesHandler returns an HTTP handler listing the caller's tags or ingredients.
// @Summary List tags or ingredients
// @Description Ordered by name descending. assigned_only=1 keeps only rows used by a recipe.
// @Tags recipe
// @Produce json
// @Param assigned_only query int false "Only attributes assigned to a recipe"
// @Success 200 {array} models.AttributeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /recipe/tags [get]
// @Router /recipe/ingredients [get]
// @Security BearerAuth
func NewListAttributesHandler(svc AttributeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var filter models.AttributeFilter
		if raw := r.URL.Query().Get("assigned_only"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeFieldErrors(w, map[string][]string{"assigned_only": {"A valid integer is required."}})
				return
			}
			filter.AssignedOnly = n != 0
		}

		attrs, err := svc.List(r.Context(), userID, filter)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		resp := make([]models.AttributeResponse, 0, len(attrs))
		for _, a := range attrs {
			resp = append(resp, toAttributeResponse(a))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewCreateAttributeHandler returns an HTTP handler creating a tag or ingredient.
// @Summary Create a tag or ingredient
// @Tags recipe
// @Accept json
// @Produce json
// @Param request body models.AttributeRequest true "Attribute"
// @Success 201 {object} models.AttributeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /recipe/tags [post]
// @Router /recipe/ingredients [post]
// @Security BearerAuth
func NewCreateAttributeHandler(svc AttributeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.AttributeRequest
		if !decodeJSON(w, r, &req) || !checkValid(w, r, validate.Struct(req)) {
			return
		}

		attr, err := svc.Create(r.Context(), userID, *req.Name)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAttributeResponse(*attr))
	}
}

// NewUpdateAttributeHandler returns an HTTP handler renaming a tag or ingredient.
// PUT requires a name; PATCH without one leaves the row unchanged.
// @Summary Update a tag or ingredient
// @Tags recipe
// @Accept json
// @Produce json
// @Param id path int true "Attribute id"
// @Param request body models.AttributeRequest true "Attribute"
// @Success 200 {object} models.AttributeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/tags/{id} [put]
// @Router /recipe/tags/{id} [patch]
// @Router /recipe/ingredients/{id} [put]
// @Router /recipe/ingredients/{id} [patch]
// @Security BearerAuth
func NewUpdateAttributeHandler(svc AttributeManager, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.AttributeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		var (
			attr *models.AttributeDB
			err  error
		)
		if partial && req.Name == nil {
			attr, err = svc.Get(r.Context(), userID, id)
		} else {
			if !checkValid(w, r, validate.Struct(req)) {
				return
			}
			attr, err = svc.Update(r.Context(), userID, id, *req.Name)
		}
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAttributeResponse(*attr))
	}
}

// NewDeleteAttributeHandler returns an HTTP handler deleting a tag or ingredient.
// @Summary Delete a tag or ingredient
// @Tags recipe
// @Param id path int true "Attribute id"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/tags/{id} [delete]
// @Router /recipe/ingredients/{id} [delete]
// @Security BearerAuth
func NewDeleteAttributeHandler(svc AttributeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
