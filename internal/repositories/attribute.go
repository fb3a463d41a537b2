package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

// AttributeReadRepository handles tag or ingredient read operations
type AttributeReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
	kind     models.AttributeKind
}

func NewAttributeReadRepository(db *sqlx.DB, txGetter TxGetter, kind models.AttributeKind) *AttributeReadRepository {
	return &AttributeReadRepository{db: db, txGetter: txGetter, kind: kind}
}

// List returns the user's attributes ordered by name descending. With
// AssignedOnly set, only attributes attached to at least one recipe are
// returned; the EXISTS semi-join keeps each row unique.
func (r *AttributeReadRepository) List(ctx context.Context, userID uuid.UUID, filter models.AttributeFilter) ([]models.AttributeDB, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.name, a.created_at
		FROM %s a
		WHERE a.user_id = $1`, r.kind.Table)
	if filter.AssignedOnly {
		query += fmt.Sprintf(`
		  AND EXISTS (SELECT 1 FROM %s j WHERE j.%s = a.id)`, r.kind.JoinTable, r.kind.JoinColumn)
	}
	query += `
		ORDER BY a.name DESC, a.id DESC`

	attrs := []models.AttributeDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &attrs, query, userID)

	logQuery(ctx, query, []any{userID, filter.AssignedOnly}, len(attrs), err)

	return attrs, err
}

// GetByID returns the user's attribute with the given id, or nil.
func (r *AttributeReadRepository) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.AttributeDB, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM %s
		WHERE user_id = $1 AND id = $2`, r.kind.Table)

	var attr models.AttributeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &attr, query, userID, id)

	logQuery(ctx, query, []any{userID, id}, attr.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attr, nil
}

// GetByIDs returns those of ids that belong to the user, ordered by id.
func (r *AttributeReadRepository) GetByIDs(ctx context.Context, userID uuid.UUID, ids []int64) ([]models.AttributeDB, error) {
	attrs := []models.AttributeDB{}
	if len(ids) == 0 {
		return attrs, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM %s
		WHERE user_id = ? AND id IN (?)
		ORDER BY id`, r.kind.Table), userID, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	err = sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &attrs, query, args...)

	logQuery(ctx, query, args, len(attrs), err)

	return attrs, err
}

// AttributeWriteRepository handles tag or ingredient write operations
type AttributeWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
	kind     models.AttributeKind
}

func NewAttributeWriteRepository(db *sqlx.DB, txGetter TxGetter, kind models.AttributeKind) *AttributeWriteRepository {
	return &AttributeWriteRepository{db: db, txGetter: txGetter, kind: kind}
}

// Save inserts a new attribute owned by userID.
func (r *AttributeWriteRepository) Save(ctx context.Context, userID uuid.UUID, name string) (*models.AttributeDB, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, user_id, name, created_at`, r.kind.Table)

	var attr models.AttributeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &attr, query, userID, name)

	logQuery(ctx, query, []any{userID, name}, attr.ID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &attr, nil
}

// Update renames the user's attribute. It returns nil when no such attribute exists.
func (r *AttributeWriteRepository) Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.AttributeDB, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $3
		WHERE user_id = $1 AND id = $2
		RETURNING id, user_id, name, created_at`, r.kind.Table)

	var attr models.AttributeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &attr, query, userID, id, name)

	logQuery(ctx, query, []any{userID, id, name}, attr.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &attr, nil
}

// Delete removes the user's attribute and reports whether it existed.
func (r *AttributeWriteRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND id = $2`, r.kind.Table)

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, query, []any{userID, id}, rowsAffected, err)

	return rowsAffected > 0, err
}
