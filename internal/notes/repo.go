package notes

import (
	"context"

	"github.com/angelmondragon/assettrack-backend/internal/repo"
	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for item notes.
type Repository interface {
	Create(ctx context.Context, note *models.Note) error
	ListByItem(ctx context.Context, itemID string) ([]models.Note, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) Create(ctx context.Context, note *models.Note) error {
	return r.DB(ctx).Create(note).Error
}

func (r *repositoryImpl) ListByItem(ctx context.Context, itemID string) ([]models.Note, error) {
	var notes []models.Note
	err := r.DB(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	var note models.Note
	ok, err := r.First(ctx, &note, "id = ?", id)
	if err != nil || !ok {
		return nil, err
	}
	return &note, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Note{})
	return res.RowsAffected > 0, res.Error
}

func (r *repositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	return r.Base.DeleteAll(ctx, &models.Note{})
}
