package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
	"github.com/sbilibin2017/gw-recipe-api/internal/storage"
)

//go:generate mockgen -source=recipe.go -destination=mock_recipe.go -package=services

// RecipeReader defines read-only operations for recipes.
type RecipeReader interface {
	List(ctx context.Context, userID uuid.UUID, filter models.RecipeFilter) ([]models.RecipeDB, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.RecipeDB, error)
	ListAttributes(ctx context.Context, kind models.AttributeKind, recipeIDs []int64) (map[int64][]models.AttributeDB, error)
}

// RecipeWriter defines write operations for recipes.
type RecipeWriter interface {
	Save(ctx context.Context, recipe *models.RecipeDB) error
	Update(ctx context.Context, recipe *models.RecipeDB) (bool, error)
	SetImage(ctx context.Context, userID uuid.UUID, id int64, image *string) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) (bool, error)
	ReplaceRelations(ctx context.Context, kind models.AttributeKind, recipeID int64, ids []int64) error
}

// ImageStore stores uploaded recipe images.
type ImageStore interface {
	SaveRecipeImage(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, rel string) error
}

// EventPublisher publishes recipe change events.
type EventPublisher interface {
	Publish(ctx context.Context, event models.RecipeEvent) error
}

// RecipeService manages recipes and their relations for their owner.
type RecipeService struct {
	reader      RecipeReader
	writer      RecipeWriter
	tags        AttributeReader
	ingredients AttributeReader
	images      ImageStore
	events      EventPublisher
	afterCommit AfterCommitFunc
}

// AfterCommitFunc runs fn once the transaction carried by ctx has committed.
type AfterCommitFunc func(ctx context.Context, fn func(ctx context.Context))

// RecipeOpt configures a RecipeService.
type RecipeOpt func(*RecipeService)

// WithAfterCommit defers image removal and event publishing until commit.
// By default they run immediately.
func WithAfterCommit(fn AfterCommitFunc) RecipeOpt {
	return func(svc *RecipeService) {
		svc.afterCommit = fn
	}
}

func NewRecipeService(
	reader RecipeReader,
	writer RecipeWriter,
	tags AttributeReader,
	ingredients AttributeReader,
	images ImageStore,
	events EventPublisher,
	opts ...RecipeOpt,
) *RecipeService {
	svc := &RecipeService{
		reader:      reader,
		writer:      writer,
		tags:        tags,
		ingredients: ingredients,
		images:      images,
		events:      events,
		afterCommit: func(ctx context.Context, fn func(ctx context.Context)) { fn(ctx) },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// List returns the user's recipes matching filter with their relations loaded.
func (svc *RecipeService) List(ctx context.Context, userID uuid.UUID, filter models.RecipeFilter) ([]models.Recipe, error) {
	rows, err := svc.reader.List(ctx, userID, filter)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list recipes", "user_id", userID, "error", err)
		return nil, err
	}
	return svc.withRelations(ctx, rows)
}

// Get returns the user's recipe with its relations.
func (svc *RecipeService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error) {
	row, err := svc.reader.GetByID(ctx, userID, id)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get recipe", "user_id", userID, "id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}

	recipes, err := svc.withRelations(ctx, []models.RecipeDB{*row})
	if err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

func (svc *RecipeService) withRelations(ctx context.Context, rows []models.RecipeDB) ([]models.Recipe, error) {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	tags, err := svc.reader.ListAttributes(ctx, models.TagKind, ids)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to load recipe tags", "error", err)
		return nil, err
	}
	ingredients, err := svc.reader.ListAttributes(ctx, models.IngredientKind, ids)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to load recipe ingredients", "error", err)
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(rows))
	for _, r := range rows {
		recipes = append(recipes, models.Recipe{
			RecipeDB:    r,
			Tags:        nonNil(tags[r.ID]),
			Ingredients: nonNil(ingredients[r.ID]),
		})
	}
	return recipes, nil
}

func nonNil(attrs []models.AttributeDB) []models.AttributeDB {
	if attrs == nil {
		return []models.AttributeDB{}
	}
	return attrs
}

// Create stores a new recipe owned by userID together with its relations.
func (svc *RecipeService) Create(ctx context.Context, userID uuid.UUID, in models.RecipeInput) (*models.Recipe, error) {
	if err := svc.validate(ctx, userID, in); err != nil {
		return nil, err
	}

	row := &models.RecipeDB{UserID: userID}
	applyInput(row, in)

	if err := svc.writer.Save(ctx, row); err != nil {
		logger.FromContext(ctx).Errorw("failed to create recipe", "user_id", userID, "error", err)
		return nil, err
	}

	in.TagsSet, in.IngredientsSet = true, true
	if err := svc.replaceRelations(ctx, row.ID, in); err != nil {
		return nil, err
	}

	svc.publish(ctx, row, models.RecipeCreated)
	return svc.Get(ctx, userID, row.ID)
}

// Update changes the user's recipe. With partial unset every writable field
// is replaced, omitted relations and link included; otherwise only the
// fields present in the input change.
func (svc *RecipeService) Update(ctx context.Context, userID uuid.UUID, id int64, in models.RecipeInput, partial bool) (*models.Recipe, error) {
	log := logger.FromContext(ctx)

	row, err := svc.reader.GetByID(ctx, userID, id)
	if err != nil {
		log.Errorw("failed to get recipe", "user_id", userID, "id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}

	if !partial {
		if in.Link == nil {
			empty := ""
			in.Link = &empty
		}
		in.TagsSet, in.IngredientsSet = true, true
	}

	if err := svc.validate(ctx, userID, in); err != nil {
		return nil, err
	}

	applyInput(row, in)

	ok, err := svc.writer.Update(ctx, row)
	if err != nil {
		log.Errorw("failed to update recipe", "user_id", userID, "id", id, "error", err)
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	if err := svc.replaceRelations(ctx, row.ID, in); err != nil {
		return nil, err
	}

	svc.publish(ctx, row, models.RecipeUpdated)
	return svc.Get(ctx, userID, id)
}

// Delete removes the user's recipe and its stored image.
func (svc *RecipeService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	log := logger.FromContext(ctx)

	row, err := svc.reader.GetByID(ctx, userID, id)
	if err != nil {
		log.Errorw("failed to get recipe", "user_id", userID, "id", id, "error", err)
		return err
	}
	if row == nil {
		return ErrNotFound
	}

	ok, err := svc.writer.Delete(ctx, userID, id)
	if err != nil {
		log.Errorw("failed to delete recipe", "user_id", userID, "id", id, "error", err)
		return err
	}
	if !ok {
		return ErrNotFound
	}

	svc.afterCommit(ctx, func(ctx context.Context) {
		svc.removeImage(ctx, row.Image)
	})
	svc.publish(ctx, row, models.RecipeDeleted)
	return nil
}

// UploadImage stores the image for the user's recipe, replacing any previous one.
func (svc *RecipeService) UploadImage(ctx context.Context, userID uuid.UUID, id int64, filename string, r io.Reader) (*models.RecipeDB, error) {
	log := logger.FromContext(ctx)

	row, err := svc.reader.GetByID(ctx, userID, id)
	if err != nil {
		log.Errorw("failed to get recipe", "user_id", userID, "id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}

	rel, err := svc.images.SaveRecipeImage(ctx, filename, r)
	switch {
	case errors.Is(err, storage.ErrInvalidImage):
		verr := &ValidationError{}
		verr.add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		return nil, verr
	case errors.Is(err, storage.ErrImageTooLarge):
		verr := &ValidationError{}
		verr.add("image", "The uploaded image is too large.")
		return nil, verr
	case err != nil:
		log.Errorw("failed to store recipe image", "user_id", userID, "id", id, "error", err)
		return nil, err
	}

	ok, err := svc.writer.SetImage(ctx, userID, id, &rel)
	if err != nil || !ok {
		svc.removeImage(ctx, &rel)
		if err != nil {
			log.Errorw("failed to set recipe image", "user_id", userID, "id", id, "error", err)
			return nil, err
		}
		return nil, ErrNotFound
	}

	if old := row.Image; old != nil && *old != rel {
		svc.afterCommit(ctx, func(ctx context.Context) {
			svc.removeImage(ctx, old)
		})
	}
	row.Image = &rel

	svc.publish(ctx, row, models.RecipeImageUploaded)
	return row, nil
}

// validate checks the price precision and that every referenced tag and
// ingredient exists and belongs to userID.
func (svc *RecipeService) validate(ctx context.Context, userID uuid.UUID, in models.RecipeInput) error {
	verr := &ValidationError{}

	if in.Price != nil && !in.Price.Equal(in.Price.Round(2)) {
		verr.add("price", "Ensure that there are no more than 2 decimal places.")
	}

	for _, rel := range []struct {
		set    bool
		kind   models.AttributeKind
		ids    []int64
		reader AttributeReader
	}{
		{in.TagsSet, models.TagKind, in.TagIDs, svc.tags},
		{in.IngredientsSet, models.IngredientKind, in.IngredientIDs, svc.ingredients},
	} {
		if !rel.set || len(rel.ids) == 0 {
			continue
		}

		found, err := rel.reader.GetByIDs(ctx, userID, rel.ids)
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to resolve "+rel.kind.Field, "user_id", userID, "error", err)
			return err
		}

		owned := make(map[int64]struct{}, len(found))
		for _, a := range found {
			owned[a.ID] = struct{}{}
		}
		for _, id := range rel.ids {
			if _, ok := owned[id]; !ok {
				verr.add(rel.kind.Field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
				break
			}
		}
	}

	if !verr.empty() {
		return verr
	}
	return nil
}

func (svc *RecipeService) replaceRelations(ctx context.Context, recipeID int64, in models.RecipeInput) error {
	if in.TagsSet {
		if err := svc.writer.ReplaceRelations(ctx, models.TagKind, recipeID, uniqueIDs(in.TagIDs)); err != nil {
			logger.FromContext(ctx).Errorw("failed to set recipe tags", "id", recipeID, "error", err)
			return err
		}
	}
	if in.IngredientsSet {
		if err := svc.writer.ReplaceRelations(ctx, models.IngredientKind, recipeID, uniqueIDs(in.IngredientIDs)); err != nil {
			logger.FromContext(ctx).Errorw("failed to set recipe ingredients", "id", recipeID, "error", err)
			return err
		}
	}
	return nil
}

func (svc *RecipeService) removeImage(ctx context.Context, rel *string) {
	if rel == nil || *rel == "" {
		return
	}
	if err := svc.images.Remove(ctx, *rel); err != nil {
		logger.FromContext(ctx).Errorw("failed to remove recipe image", "path", *rel, "error", err)
	}
}

// publish emits a change event after commit. Failures are logged and never
// fail the request.
func (svc *RecipeService) publish(ctx context.Context, row *models.RecipeDB, op string) {
	if svc.events == nil {
		return
	}
	event := models.RecipeEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		RecipeID:  row.ID,
		UserID:    row.UserID.String(),
		Operation: op,
	}
	svc.afterCommit(ctx, func(ctx context.Context) {
		if err := svc.events.Publish(ctx, event); err != nil {
			logger.FromContext(ctx).Errorw("failed to publish recipe event", "event_id", event.EventID, "error", err)
		}
	})
}

func applyInput(row *models.RecipeDB, in models.RecipeInput) {
	if in.Title != nil {
		row.Title = *in.Title
	}
	if in.TimeMinutes != nil {
		row.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		row.Price = *in.Price
	}
	if in.Link != nil {
		row.Link = *in.Link
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
