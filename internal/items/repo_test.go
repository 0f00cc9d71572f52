package items

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/db"
	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Item{}))
	return conn
}

func seedItem(t *testing.T, repo Repository, customID, title string, status enums.ItemStatus, dept enums.Department) *models.Item {
	t.Helper()
	item := &models.Item{
		CustomID:   customID,
		Title:      title,
		Category:   enums.ItemCategoryHardware,
		Status:     status,
		Department: dept,
	}
	require.NoError(t, repo.Create(context.Background(), item))
	return item
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	price := decimal.RequireFromString("1299.99")
	item := &models.Item{
		CustomID:      "ORG1000",
		Title:         "Laptop",
		Category:      enums.ItemCategoryHardware,
		Status:        enums.ItemStatusAvailable,
		Department:    enums.DepartmentIT,
		PurchasePrice: &price,
	}
	require.NoError(t, repo.Create(ctx, item))
	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.False(t, item.DateAdded.IsZero())

	found, err := repo.FindByCustomID(ctx, "ORG1000")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Laptop", found.Title)
	require.NotNil(t, found.PurchasePrice)
	assert.True(t, price.Equal(*found.PurchasePrice))

	missing, err := repo.FindByCustomID(ctx, "ORG9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryUniqueCustomID(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	seedItem(t, repo, "ORG1000", "Laptop", enums.ItemStatusAvailable, enums.DepartmentIT)

	err := repo.Create(context.Background(), &models.Item{
		CustomID: "ORG1000", Title: "Dup", Category: enums.ItemCategoryHardware,
		Status: enums.ItemStatusAvailable, Department: enums.DepartmentIT,
	})
	assert.True(t, db.IsUniqueViolation(err), "expected unique violation, got %v", err)
}

func TestRepositoryListFiltersAndOrder(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	seedItem(t, repo, "ORG1000", "Laptop", enums.ItemStatusAvailable, enums.DepartmentIT)
	time.Sleep(5 * time.Millisecond)
	seedItem(t, repo, "ORG1001", "Desk Phone", enums.ItemStatusInUse, enums.DepartmentHR)
	time.Sleep(5 * time.Millisecond)
	seedItem(t, repo, "ORG1002", "Laptop Stand", enums.ItemStatusMaintenance, enums.DepartmentIT)

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ORG1002", all[0].CustomID)

	it, err := repo.List(ctx, ListFilter{Department: "IT"})
	require.NoError(t, err)
	assert.Len(t, it, 2)

	search, err := repo.List(ctx, ListFilter{Search: "laptop"})
	require.NoError(t, err)
	assert.Len(t, search, 2)

	byID, err := repo.List(ctx, ListFilter{Search: "org1001"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Desk Phone", byID[0].Title)
}

func TestRepositoryUpdateQRAndDelete(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	item := seedItem(t, repo, "ORG1000", "Laptop", enums.ItemStatusAvailable, enums.DepartmentIT)
	require.NoError(t, repo.UpdateQRCode(ctx, "ORG1000", "data:image/png;base64,AAA"))

	// item still carries the empty code it was seeded with.
	item.Title = "Laptop Pro"
	updated, err := repo.Update(ctx, item)
	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindByCustomID(ctx, "ORG1000")
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", found.Title)
	assert.Equal(t, "data:image/png;base64,AAA", found.QRCode)
	assert.Equal(t, item.ID, found.ID)

	deleted, err := repo.Delete(ctx, "ORG1000")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "ORG1000")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepositoryUpdateNeverReinsertsDeletedItem(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	item := seedItem(t, repo, "ORG1000", "Laptop", enums.ItemStatusAvailable, enums.DepartmentIT)

	deleted, err := repo.Delete(ctx, "ORG1000")
	require.NoError(t, err)
	require.True(t, deleted)

	item.Title = "Laptop Pro"
	updated, err := repo.Update(ctx, item)
	require.NoError(t, err)
	assert.False(t, updated)

	found, err := repo.FindByCustomID(ctx, "ORG1000")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryCounts(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	seedItem(t, repo, "ORG1000", "A", enums.ItemStatusAvailable, enums.DepartmentIT)
	seedItem(t, repo, "ORG1001", "B", enums.ItemStatusMaintenance, enums.DepartmentIT)
	seedItem(t, repo, "ORG1002", "C", enums.ItemStatusMaintenance, enums.DepartmentFinance)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	maintenance, err := repo.CountByStatus(ctx, enums.ItemStatusMaintenance)
	require.NoError(t, err)
	assert.EqualValues(t, 2, maintenance)

	byDept, err := repo.CountGrouped(ctx, GroupByDepartment)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"IT": 2, "Finance": 1}, byDept)

	_, err = repo.CountGrouped(ctx, "title; DROP TABLE items")
	assert.Error(t, err)
}

func TestRepositoryLastSequenceID(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	last, err := repo.LastSequenceID(ctx)
	require.NoError(t, err)
	assert.Empty(t, last)

	seedItem(t, repo, "ORG999", "A", enums.ItemStatusAvailable, enums.DepartmentIT)
	seedItem(t, repo, "ORG1000", "B", enums.ItemStatusAvailable, enums.DepartmentIT)
	seedItem(t, repo, "ORG-LOYW3V28-AB12", "C", enums.ItemStatusAvailable, enums.DepartmentIT)

	last, err = repo.LastSequenceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORG1000", last)
}
