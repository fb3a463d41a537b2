package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

//go:generate mockgen -source=recipe.go -destination=mock_recipe.go -package=handlers

// RecipeManager manages the caller's recipes.
type RecipeManager interface {
	List(ctx context.Context, userID uuid.UUID, filter models.RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error)
	Create(ctx context.Context, userID uuid.UUID, in models.RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, in models.RecipeInput, partial bool) (*models.Recipe, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
	UploadImage(ctx context.Context, userID uuid.UUID, id int64, filename string, r io.Reader) (*models.RecipeDB, error)
}

// ImageURLer resolves a stored image path to its public URL.
type ImageURLer interface {
	URL(rel string) string
}

const msgIDList = "Enter a comma-separated list of positive integers."

// parseIDList parses a comma-separated list of positive ids. An empty string
// yields no ids.
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		if id <= 0 {
			return nil, strconv.ErrRange
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func imageURL(urls ImageURLer, rel *string) *string {
	if rel == nil || *rel == "" {
		return nil
	}
	u := urls.URL(*rel)
	return &u
}

func toRecipeResponse(rec models.Recipe, urls ImageURLer) models.RecipeResponse {
	return models.RecipeResponse{
		ID:          rec.ID,
		Title:       rec.Title,
		Tags:        rec.TagIDs(),
		Ingredients: rec.IngredientIDs(),
		TimeMinutes: rec.TimeMinutes,
		Price:       rec.Price.StringFixed(2),
		Link:        rec.Link,
		Image:       imageURL(urls, rec.Image),
	}
}

func toAttributeResponses(attrs []models.AttributeDB) []models.AttributeResponse {
	resp := make([]models.AttributeResponse, 0, len(attrs))
	for _, a := range attrs {
		resp = append(resp, toAttributeResponse(a))
	}
	return resp
}

func toRecipeDetailResponse(rec *models.Recipe, urls ImageURLer) models.RecipeDetailResponse {
	return models.RecipeDetailResponse{
		ID:          rec.ID,
		Title:       rec.Title,
		Tags:        toAttributeResponses(rec.Tags),
		Ingredients: toAttributeResponses(rec.Ingredients),
		TimeMinutes: rec.TimeMinutes,
		Price:       rec.Price.StringFixed(2),
		Link:        rec.Link,
		Image:       imageURL(urls, rec.Image),
	}
}

// NewListRecipesHandler returns an HTTP handler listing the caller's recipes.
// @Summary List recipes
// @Description Newest first. tags and ingredients take comma-separated ids; a recipe matches when it has any of the listed ids of each given list.
// @Tags recipe
// @Produce json
// @Param tags query string false "Comma separated list of tag ids to filter"
// @Param ingredients query string false "Comma separated list of ingredient ids to filter"
// @Success 200 {array} models.RecipeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /recipe/recipes [get]
// @Security BearerAuth
func NewListRecipesHandler(svc RecipeManager, urls ImageURLer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var filter models.RecipeFilter
		fieldErrs := map[string][]string{}
		for _, f := range []struct {
			name string
			dst  *[]int64
		}{
			{models.TagKind.Field, &filter.TagIDs},
			{models.IngredientKind.Field, &filter.IngredientIDs},
		} {
			ids, err := parseIDList(r.URL.Query().Get(f.name))
			if err != nil {
				fieldErrs[f.name] = []string{msgIDList}
				continue
			}
			*f.dst = ids
		}
		if len(fieldErrs) > 0 {
			writeFieldErrors(w, fieldErrs)
			return
		}

		recipes, err := svc.List(r.Context(), userID, filter)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		resp := make([]models.RecipeResponse, 0, len(recipes))
		for _, rec := range recipes {
			resp = append(resp, toRecipeResponse(rec, urls))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetRecipeHandler returns an HTTP handler for a single recipe.
// @Summary Get a recipe
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} models.RecipeDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/recipes/{id} [get]
// @Security BearerAuth
func NewGetRecipeHandler(svc RecipeManager, urls ImageURLer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		rec, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRecipeDetailResponse(rec, urls))
	}
}

// NewCreateRecipeHandler returns an HTTP handler creating a recipe.
// @Summary Create a recipe
// @Tags recipe
// @Accept json
// @Produce json
// @Param request body models.RecipeRequest true "Recipe"
// @Success 201 {object} models.RecipeDetailResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /recipe/recipes [post]
// @Security BearerAuth
func NewCreateRecipeHandler(svc RecipeManager, urls ImageURLer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.RecipeRequest
		if !decodeJSON(w, r, &req) || !checkValid(w, r, validate.Struct(req)) {
			return
		}

		rec, err := svc.Create(r.Context(), userID, req.Input())
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecipeDetailResponse(rec, urls))
	}
}

// NewUpdateRecipeHandler returns an HTTP handler updating a recipe. PUT
// replaces every field, clearing omitted relations; PATCH (partial) changes
// only the supplied fields.
// @Summary Update a recipe
// @Tags recipe
// @Accept json
// @Produce json
// @Param id path int true "Recipe id"
// @Param request body models.RecipeRequest true "Recipe"
// @Success 200 {object} models.RecipeDetailResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/recipes/{id} [put]
// @Router /recipe/recipes/{id} [patch]
// @Security BearerAuth
func NewUpdateRecipeHandler(svc RecipeManager, urls ImageURLer, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.RecipeRequest
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

		rec, err := svc.Update(r.Context(), userID, id, req.Input(), partial)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRecipeDetailResponse(rec, urls))
	}
}

// NewDeleteRecipeHandler returns an HTTP handler deleting a recipe and its image.
// @Summary Delete a recipe
// @Tags recipe
// @Param id path int true "Recipe id"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/recipes/{id} [delete]
// @Security BearerAuth
func NewDeleteRecipeHandler(svc RecipeManager) http.HandlerFunc {
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

// NewUploadImageHandler returns an HTTP handler attaching an image to a recipe.
// maxBytes bounds the request body.
// @Summary Upload a recipe image
// @Tags recipe
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe id"
// @Param image formData file true "Image file"
// @Success 200 {object} models.RecipeImageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/recipes/{id}/upload-image [post]
// @Security BearerAuth
func NewUploadImageHandler(svc RecipeManager, urls ImageURLer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		file, header, err := r.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			msg := "No file was submitted."
			switch {
			case errors.As(err, &tooLarge):
				msg = "The uploaded image is too large."
			case errors.Is(err, http.ErrNotMultipart):
				msg = "The submitted data was not a file. Check the encoding type on the form."
			}
			writeFieldErrors(w, map[string][]string{"image": {msg}})
			return
		}
		defer file.Close()

		row, err := svc.UploadImage(r.Context(), userID, id, header.Filename, file)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}

		resp := models.RecipeImageResponse{ID: row.ID}
		if u := imageURL(urls, row.Image); u != nil {
			resp.Image = *u
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
