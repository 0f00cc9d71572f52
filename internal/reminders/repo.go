package reminders

import (
	"context"
	"time"

	"github.com/angelmondragon/assettrack-backend/internal/repo"
	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for reminders.
type Repository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error)
	List(ctx context.Context, filter ListFilter) ([]models.Reminder, error)
	ListByItem(ctx context.Context, itemID string) ([]models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	CountDueBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type repositoryImpl struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.DB(ctx).Create(reminder).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error) {
	var reminder models.Reminder
	ok, err := r.First(ctx, &reminder, "id = ?", id)
	if err != nil || !ok {
		return nil, err
	}
	return &reminder, nil
}

func (r *repositoryImpl) List(ctx context.Context, filter ListFilter) ([]models.Reminder, error) {
	query := r.DB(ctx).Model(&models.Reminder{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ItemID != "" {
		query = query.Where("item_id = ?", filter.ItemID)
	}
	if filter.Upcoming {
		query = query.Where("status <> ?", enums.ReminderStatusCompleted)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_date >= ?", *filter.DueAfter)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date <= ?", *filter.DueBefore)
	}

	var reminders []models.Reminder
	err := query.Order("due_date ASC").Find(&reminders).Error
	return reminders, err
}

func (r *repositoryImpl) ListByItem(ctx context.Context, itemID string) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.DB(ctx).
		Where("item_id = ?", itemID).
		Order("due_date ASC").
		Find(&reminders).Error
	return reminders, err
}

// Update writes every column but the key and creation time onto the existing
// row. False means the reminder was deleted in the meantime.
func (r *repositoryImpl) Update(ctx context.Context, reminder *models.Reminder) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", reminder.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(reminder)
	return res.RowsAffected > 0, res.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Reminder{})
	return res.RowsAffected > 0, res.Error
}

func (r *repositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	return r.Base.DeleteAll(ctx, &models.Reminder{})
}

// MarkOverdue flips pending reminders whose due date has passed.
func (r *repositoryImpl) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Reminder{}).
		Where("status = ? AND due_date < ?", enums.ReminderStatusPending, now).
		Updates(map[string]any{"status": enums.ReminderStatusOverdue, "updated_at": now})
	return res.RowsAffected, res.Error
}

func (r *repositoryImpl) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var total int64
	err := r.DB(ctx).
		Model(&models.Reminder{}).
		Where("status <> ? AND due_date < ?", enums.ReminderStatusCompleted, now).
		Count(&total).Error
	return total, err
}

// CountDueBetween counts open reminders due in (from, to].
func (r *repositoryImpl) CountDueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.DB(ctx).
		Model(&models.Reminder{}).
		Where("status <> ? AND due_date > ? AND due_date <= ?", enums.ReminderStatusCompleted, from, to).
		Count(&total).Error
	return total, err
}
