package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

const recipeColumns = `r.id, r.user_id, r.title, r.time_minutes, r.price, r.link, r.image, r.created_at, r.updated_at`

// RecipeReadRepository handles recipe read operations
type RecipeReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeReadRepository(db *sqlx.DB, txGetter TxGetter) *RecipeReadRepository {
	return &RecipeReadRepository{db: db, txGetter: txGetter}
}

// List returns the user's recipes, newest first. Non-empty filter id lists
// restrict the result to recipes linked to any of the listed tags
// (respectively ingredients); both lists must match when both are given.
func (r *RecipeReadRepository) List(ctx context.Context, userID uuid.UUID, filter models.RecipeFilter) ([]models.RecipeDB, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + recipeColumns + ` FROM recipes r WHERE r.user_id = ?`)
	args := []any{userID}

	for _, f := range []struct {
		kind models.AttributeKind
		ids  []int64
	}{
		{models.TagKind, filter.TagIDs},
		{models.IngredientKind, filter.IngredientIDs},
	} {
		if len(f.ids) == 0 {
			continue
		}
		fmt.Fprintf(&sb, ` AND EXISTS (SELECT 1 FROM %s j WHERE j.recipe_id = r.id AND j.%s IN (?))`,
			f.kind.JoinTable, f.kind.JoinColumn)
		args = append(args, f.ids)
	}
	sb.WriteString(` ORDER BY r.id DESC`)

	query, args, err := sqlx.In(sb.String(), args...)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	recipes := []models.RecipeDB{}
	err = sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &recipes, query, args...)

	logQuery(ctx, query, args, len(recipes), err)

	return recipes, err
}

// GetByID returns the user's recipe with the given id, or nil.
func (r *RecipeReadRepository) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.RecipeDB, error) {
	const query = `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.user_id = $1 AND r.id = $2`

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, userID, id)

	logQuery(ctx, query, []any{userID, id}, recipe.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListAttributes returns the attributes of the given kind linked to each
// recipe, keyed by recipe id and ordered by attribute id.
func (r *RecipeReadRepository) ListAttributes(ctx context.Context, kind models.AttributeKind, recipeIDs []int64) (map[int64][]models.AttributeDB, error) {
	result := make(map[int64][]models.AttributeDB, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT j.recipe_id, a.id, a.user_id, a.name, a.created_at
		FROM %s j
		JOIN %s a ON a.id = j.%s
		WHERE j.recipe_id IN (?)
		ORDER BY a.id`, kind.JoinTable, kind.Table, kind.JoinColumn), recipeIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var rows []struct {
		RecipeID int64 `db:"recipe_id"`
		models.AttributeDB
	}
	err = sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, args...)

	logQuery(ctx, query, args, len(rows), err)

	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], row.AttributeDB)
	}
	return result, nil
}

// RecipeWriteRepository handles recipe write operations
type RecipeWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeWriteRepository(db *sqlx.DB, txGetter TxGetter) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts the recipe and fills in the generated id and timestamps.
func (r *RecipeWriteRepository) Save(ctx context.Context, recipe *models.RecipeDB) error {
	const query = `
		INSERT INTO recipes (user_id, title, time_minutes, price, link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	args := []any{recipe.UserID, recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)

	logQuery(ctx, query, args, recipe.ID, err)

	return err
}

// Update writes the recipe's scalar fields. It reports false when the recipe
// does not belong to recipe.UserID.
func (r *RecipeWriteRepository) Update(ctx context.Context, recipe *models.RecipeDB) (bool, error) {
	const query = `
		UPDATE recipes
		SET title = $3, time_minutes = $4, price = $5, link = $6, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING updated_at
	`
	args := []any{recipe.UserID, recipe.ID, recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link}

	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...).Scan(&recipe.UpdatedAt)

	logQuery(ctx, query, args, recipe.UpdatedAt, err)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// SetImage stores the image path of the user's recipe.
func (r *RecipeWriteRepository) SetImage(ctx context.Context, userID uuid.UUID, id int64, image *string) (bool, error) {
	const query = `UPDATE recipes SET image = $3, updated_at = NOW() WHERE user_id = $1 AND id = $2`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID, id, image)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, query, []any{userID, id, image}, rowsAffected, err)

	return rowsAffected > 0, err
}

// Delete removes the user's recipe and its relations and reports whether it existed.
func (r *RecipeWriteRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	const query = `DELETE FROM recipes WHERE user_id = $1 AND id = $2`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, query, []any{userID, id}, rowsAffected, err)

	return rowsAffected > 0, err
}

// ReplaceRelations makes ids the complete set of attributes of the given kind
// linked to the recipe.
func (r *RecipeWriteRepository) ReplaceRelations(ctx context.Context, kind models.AttributeKind, recipeID int64, ids []int64) error {
	exec := executor(ctx, r.db, r.txGetter)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE recipe_id = $1`, kind.JoinTable)
	res, err := exec.ExecContext(ctx, deleteQuery, recipeID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, deleteQuery, []any{recipeID}, rowsAffected, err)

	if err != nil || len(ids) == 0 {
		return err
	}

	values := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids)*2)
	for _, id := range ids {
		values = append(values, "(?, ?)")
		args = append(args, recipeID, id)
	}
	insertQuery := r.db.Rebind(fmt.Sprintf(
		`INSERT INTO %s (recipe_id, %s) VALUES %s ON CONFLICT DO NOTHING`,
		kind.JoinTable, kind.JoinColumn, strings.Join(values, ", "),
	))

	res, err = exec.ExecContext(ctx, insertQuery, args...)
	rowsAffected = 0
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, insertQuery, args, rowsAffected, err)

	return err
}
