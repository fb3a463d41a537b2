package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/models"
)

//go:generate mockgen -source=attribute.go -destination=mock_attribute.go -package=services

// AttributeReader defines read-only operations for tags or ingredients.
type AttributeReader interface {
	List(ctx context.Context, userID uuid.UUID, filter models.AttributeFilter) ([]models.AttributeDB, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.AttributeDB, error)
	GetByIDs(ctx context.Context, userID uuid.UUID, ids []int64) ([]models.AttributeDB, error)
}

// AttributeWriter defines write operations for tags or ingredients.
type AttributeWriter interface {
	Save(ctx context.Context, userID uuid.UUID, name string) (*models.AttributeDB, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.AttributeDB, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) (bool, error)
}

// AttributeService manages one kind of recipe attribute for its owner.
type AttributeService struct {
	kind   models.AttributeKind
	reader AttributeReader
	writer AttributeWriter
}

func NewAttributeService(kind models.AttributeKind, reader AttributeReader, writer AttributeWriter) *AttributeService {
	return &AttributeService{
		kind:   kind,
		reader: reader,
		writer: writer,
	}
}

// Kind returns the attribute kind served.
func (svc *AttributeService) Kind() models.AttributeKind {
	return svc.kind
}

func (svc *AttributeService) List(ctx context.Context, userID uuid.UUID, filter models.AttributeFilter) ([]models.AttributeDB, error) {
	attrs, err := svc.reader.List(ctx, userID, filter)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list "+svc.kind.Field, "user_id", userID, "error", err)
		return nil, err
	}
	return attrs, nil
}

// Get returns the user's attribute with the given id.
func (svc *AttributeService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.AttributeDB, error) {
	attr, err := svc.reader.GetByID(ctx, userID, id)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get "+svc.kind.Name, "user_id", userID, "id", id, "error", err)
		return nil, err
	}
	if attr == nil {
		return nil, ErrNotFound
	}
	return attr, nil
}

func (svc *AttributeService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.AttributeDB, error) {
	attr, err := svc.writer.Save(ctx, userID, name)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to create "+svc.kind.Name, "user_id", userID, "error", err)
		return nil, err
	}
	return attr, nil
}

func (svc *AttributeService) Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.AttributeDB, error) {
	attr, err := svc.writer.Update(ctx, userID, id, name)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to update "+svc.kind.Name, "user_id", userID, "id", id, "error", err)
		return nil, err
	}
	if attr == nil {
		return nil, ErrNotFound
	}
	return attr, nil
}

func (svc *AttributeService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	ok, err := svc.writer.Delete(ctx, userID, id)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to delete "+svc.kind.Name, "user_id", userID, "id", id, "error", err)
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
