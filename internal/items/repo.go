package items

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/assettrack-backend/internal/repo"
	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for items.
type Repository interface {
	Create(ctx context.Context, item *models.Item) error
	FindByCustomID(ctx context.Context, customID string) (*models.Item, error)
	List(ctx context.Context, filter ListFilter) ([]models.Item, error)
	Update(ctx context.Context, item *models.Item) (bool, error)
	UpdateQRCode(ctx context.Context, customID, qrCode string) error
	Delete(ctx context.Context, customID string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status enums.ItemStatus) (int64, error)
	CountGrouped(ctx context.Context, column string) (map[string]int64, error)
	LastSequenceID(ctx context.Context) (string, error)
}

// Grouping columns accepted by CountGrouped.
const (
	GroupByStatus     = "status"
	GroupByCategory   = "category"
	GroupByDepartment = "department"
)

var groupableColumns = map[string]bool{
	GroupByStatus:     true,
	GroupByCategory:   true,
	GroupByDepartment: true,
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns an item repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.Item) error {
	return r.DB(ctx).Create(item).Error
}

// FindByCustomID returns nil when no item matches.
func (r *repositoryImpl) FindByCustomID(ctx context.Context, customID string) (*models.Item, error) {
	var item models.Item
	ok, err := r.First(ctx, &item, "custom_id = ?", customID)
	if err != nil || !ok {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) List(ctx context.Context, filter ListFilter) ([]models.Item, error) {
	query := r.DB(ctx).Model(&models.Item{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(custom_id) LIKE ?", like, like)
	}

	var items []models.Item
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// Update overwrites the mutable columns of the row matching item.CustomID and
// reports false when that row no longer exists. It never inserts.
func (r *repositoryImpl) Update(ctx context.Context, item *models.Item) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Item{}).
		Where("custom_id = ?", item.CustomID).
		Select("*").
		Omit("id", "custom_id", "qr_code", "created_at").
		Updates(item)
	return res.RowsAffected > 0, res.Error
}

func (r *repositoryImpl) UpdateQRCode(ctx context.Context, customID, qrCode string) error {
	return r.DB(ctx).
		Model(&models.Item{}).
		Where("custom_id = ?", customID).
		Update("qr_code", qrCode).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, customID string) (bool, error) {
	res := r.DB(ctx).Where("custom_id = ?", customID).Delete(&models.Item{})
	return res.RowsAffected > 0, res.Error
}

func (r *repositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB(ctx).Model(&models.Item{}).Count(&total).Error
	return total, err
}

func (r *repositoryImpl) CountByStatus(ctx context.Context, status enums.ItemStatus) (int64, error) {
	var total int64
	err := r.DB(ctx).Model(&models.Item{}).Where("status = ?", status).Count(&total).Error
	return total, err
}

func (r *repositoryImpl) CountGrouped(ctx context.Context, column string) (map[string]int64, error) {
	if !groupableColumns[column] {
		return nil, fmt.Errorf("cannot group items by %q", column)
	}
	var rows []struct {
		Label string
		Total int64
	}
	err := r.DB(ctx).
		Model(&models.Item{}).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Total
	}
	return counts, nil
}

// LastSequenceID returns the highest ORG<n> id, ignoring timestamp ids.
func (r *repositoryImpl) LastSequenceID(ctx context.Context) (string, error) {
	var ids []string
	err := r.DB(ctx).
		Model(&models.Item{}).
		Where("custom_id LIKE ? AND custom_id NOT LIKE ?", idPrefix+"%", idPrefix+"-%").
		Order("LENGTH(custom_id) DESC, custom_id DESC").
		Limit(1).
		Pluck("custom_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}
