package reminders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Reminder{}))
	return NewRepository(conn)
}

func seedReminder(t *testing.T, repo Repository, title string, due time.Time, status enums.ReminderStatus, itemID *string) *models.Reminder {
	t.Helper()
	reminder := &models.Reminder{Title: title, DueDate: due, Status: status, ItemID: itemID}
	require.NoError(t, repo.Create(context.Background(), reminder))
	return reminder
}

func TestRepositoryMarkOverdue(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	late := seedReminder(t, repo, "late", now.Add(-time.Hour), enums.ReminderStatusPending, nil)
	seedReminder(t, repo, "future", now.Add(time.Hour), enums.ReminderStatusPending, nil)
	seedReminder(t, repo, "done", now.Add(-time.Hour), enums.ReminderStatusCompleted, nil)

	flipped, err := repo.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, flipped)

	found, err := repo.FindByID(ctx, late.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, enums.ReminderStatusOverdue, found.Status)

	overdue, err := repo.CountOverdue(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, overdue)

	flipped, err = repo.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, flipped)
}

func TestRepositoryListFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	item := "ORG1000"

	seedReminder(t, repo, "third", now.Add(72*time.Hour), enums.ReminderStatusPending, nil)
	seedReminder(t, repo, "first", now.Add(time.Hour), enums.ReminderStatusPending, &item)
	seedReminder(t, repo, "later", now.Add(30*24*time.Hour), enums.ReminderStatusPending, nil)
	seedReminder(t, repo, "closed", now.Add(2*time.Hour), enums.ReminderStatusCompleted, &item)

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "first", all[0].Title)
	assert.Equal(t, "later", all[3].Title)

	until := now.Add(7 * 24 * time.Hour)
	upcoming, err := repo.List(ctx, ListFilter{Upcoming: true, DueAfter: &now, DueBefore: &until})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "first", upcoming[0].Title)
	assert.Equal(t, "third", upcoming[1].Title)

	byItem, err := repo.ListByItem(ctx, item)
	require.NoError(t, err)
	assert.Len(t, byItem, 2)

	completed, err := repo.List(ctx, ListFilter{Status: enums.ReminderStatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "closed", completed[0].Title)

	endOfMonth := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	thisMonth, err := repo.CountDueBetween(ctx, now, endOfMonth)
	require.NoError(t, err)
	assert.EqualValues(t, 2, thisMonth)
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	reminder := seedReminder(t, repo, "check", time.Now().Add(time.Hour), enums.ReminderStatusPending, nil)
	assert.Equal(t, enums.ReminderPriorityMedium, reminder.Priority)

	reminder.Priority = enums.ReminderPriorityHigh
	updated, err := repo.Update(ctx, reminder)
	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReminderPriorityHigh, found.Priority)

	deleted, err := repo.Delete(ctx, reminder.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	updated, err = repo.Update(ctx, reminder)
	require.NoError(t, err)
	assert.False(t, updated, "update must not recreate a deleted reminder")
	missing, err := repo.FindByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	purged, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged)
}
