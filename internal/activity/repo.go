package activity

import (
	"context"

	"github.com/angelmondragon/assettrack-backend/internal/repo"
	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for audit logs.
type Repository interface {
	Create(ctx context.Context, entry *models.Log) error
	List(ctx context.Context, params pagination.Params) ([]models.Log, int64, error)
	ListByItem(ctx context.Context, itemID string) ([]models.Log, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Log, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a log repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) Create(ctx context.Context, entry *models.Log) error {
	return r.DB(ctx).Create(entry).Error
}

func (r *repositoryImpl) List(ctx context.Context, params pagination.Params) ([]models.Log, int64, error) {
	params = params.Normalize()

	var total int64
	if err := r.DB(ctx).Model(&models.Log{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.Log
	err := r.DB(ctx).
		Order("logged_at DESC, created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *repositoryImpl) ListByItem(ctx context.Context, itemID string) ([]models.Log, error) {
	var logs []models.Log
	err := r.DB(ctx).
		Where("item_id = ?", itemID).
		Order("logged_at DESC, created_at DESC").
		Find(&logs).Error
	return logs, err
}

// FindByID returns nil when no log matches.
func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Log, error) {
	var entry models.Log
	ok, err := r.First(ctx, &entry, "id = ?", id)
	if err != nil || !ok {
		return nil, err
	}
	return &entry, nil
}

func (r *repositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	return r.Base.DeleteAll(ctx, &models.Log{})
}
