package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type fakeRepository struct {
	createFn      func(ctx context.Context, reminder *models.Reminder) error
	findFn        func(ctx context.Context, id uuid.UUID) (*models.Reminder, error)
	listFn        func(ctx context.Context, filter ListFilter) ([]models.Reminder, error)
	updateFn      func(ctx context.Context, reminder *models.Reminder) (bool, error)
	deleteFn      func(ctx context.Context, id uuid.UUID) (bool, error)
	markOverdueFn func(ctx context.Context, now time.Time) (int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	if f.createFn != nil {
		return f.createFn(ctx, reminder)
	}
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter) ([]models.Reminder, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeRepository) ListByItem(context.Context, string) ([]models.Reminder, error) {
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, reminder *models.Reminder) (bool, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, reminder)
	}
	return true, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return true, nil
}

func (f *fakeRepository) DeleteAll(context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	if f.markOverdueFn != nil {
		return f.markOverdueFn(ctx, now)
	}
	return 0, nil
}

func (f *fakeRepository) CountOverdue(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeRepository) CountDueBetween(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}

type fakeItems map[string]*models.Item

func (f fakeItems) FindByCustomID(_ context.Context, customID string) (*models.Item, error) {
	return f[customID], nil
}

type fakeAudit struct {
	created []*models.Reminder
	updated [][2]models.Reminder
	deleted []*models.Reminder
}

func (f *fakeAudit) ReminderCreated(_ context.Context, reminder *models.Reminder, _ string) {
	f.created = append(f.created, reminder)
}

func (f *fakeAudit) ReminderUpdated(_ context.Context, before, after *models.Reminder, _ string) {
	f.updated = append(f.updated, [2]models.Reminder{*before, *after})
}

func (f *fakeAudit) ReminderDeleted(_ context.Context, reminder *models.Reminder, _ string) {
	f.deleted = append(f.deleted, reminder)
}

type flipCounter struct{ total int64 }

func (f *flipCounter) AddOverdueFlipped(n int64) { f.total += n }

func newServiceWithRepo(t *testing.T, repo Repository, audit *fakeAudit, validate bool) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:          repo,
		Items:         fakeItems{"ORG1000": {CustomID: "ORG1000", Title: "Laptop"}},
		Audit:         audit,
		ValidateItems: validate,
		Now:           func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func strPtr(value string) *string { return &value }

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{Audit: &fakeAudit{}})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))

	_, err = NewService(ServiceParams{Repo: &fakeRepository{}, Audit: &fakeAudit{}, ValidateItems: true})
	require.Error(t, err)
}

func TestCreateRequiresTitleAndDueDate(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{}, &fakeAudit{}, true)

	_, err := svc.Create(context.Background(), CreateReminderRequest{Title: "Renew"}, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.Create(context.Background(), CreateReminderRequest{DueDate: "2024-06-01"}, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.Create(context.Background(), CreateReminderRequest{Title: "Renew", DueDate: "soon"}, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestCreateLinksItemAndAudits(t *testing.T) {
	var stored *models.Reminder
	repo := &fakeRepository{createFn: func(_ context.Context, reminder *models.Reminder) error {
		stored = reminder
		return nil
	}}
	audit := &fakeAudit{}
	svc := newServiceWithRepo(t, repo, audit, true)

	reminder, err := svc.Create(context.Background(), CreateReminderRequest{
		Title:    "Warranty renewal",
		DueDate:  "2024-06-01",
		Priority: "High",
		ItemID:   strPtr("ORG1000"),
	}, "alice")
	require.NoError(t, err)
	require.Same(t, stored, reminder)
	assert.Equal(t, "Laptop", reminder.ItemName)
	assert.Equal(t, enums.ReminderPriorityHigh, reminder.Priority)
	assert.Equal(t, enums.ReminderStatusPending, reminder.Status)
	assert.Equal(t, "alice", reminder.User)
	require.Len(t, audit.created, 1)
}

func TestCreateUnknownItem(t *testing.T) {
	req := CreateReminderRequest{Title: "Check", DueDate: "2024-06-01", ItemID: strPtr("ORG9999")}

	strict := newServiceWithRepo(t, &fakeRepository{}, &fakeAudit{}, true)
	_, err := strict.Create(context.Background(), req, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	lenient := newServiceWithRepo(t, &fakeRepository{}, &fakeAudit{}, false)
	reminder, err := lenient.Create(context.Background(), req, "")
	require.NoError(t, err)
	require.NotNil(t, reminder.ItemID)
	assert.Equal(t, "ORG9999", *reminder.ItemID)
	assert.Empty(t, reminder.ItemName)
}

func TestCreatePastDueIsOverdue(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{}, &fakeAudit{}, true)

	reminder, err := svc.Create(context.Background(), CreateReminderRequest{Title: "Late", DueDate: "2024-05-01"}, "")
	require.NoError(t, err)
	assert.Equal(t, enums.ReminderStatusOverdue, reminder.Status)
}

func TestListSweepsAndProjects(t *testing.T) {
	var sweptAt time.Time
	var seen ListFilter
	repo := &fakeRepository{
		markOverdueFn: func(_ context.Context, now time.Time) (int64, error) {
			sweptAt = now
			return 2, nil
		},
		listFn: func(_ context.Context, filter ListFilter) ([]models.Reminder, error) {
			seen = filter
			return []models.Reminder{
				{Title: "late", Status: enums.ReminderStatusPending, DueDate: fixedNow.Add(-time.Hour)},
				{Title: "done", Status: enums.ReminderStatusCompleted, DueDate: fixedNow.Add(-time.Hour)},
			}, nil
		},
	}
	counter := &flipCounter{}
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Audit:   &fakeAudit{},
		Metrics: counter,
		Now:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), ListFilter{Upcoming: true})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, sweptAt)
	assert.EqualValues(t, 2, counter.total)
	require.NotNil(t, seen.DueAfter)
	require.NotNil(t, seen.DueBefore)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), *seen.DueBefore)
	require.Len(t, list, 2)
	assert.Equal(t, enums.ReminderStatusOverdue, list[0].Status)
	assert.Equal(t, enums.ReminderStatusCompleted, list[1].Status)
}

func TestUpdatePartialFields(t *testing.T) {
	existing := &models.Reminder{
		ID:       uuid.New(),
		Title:    "Old",
		DueDate:  fixedNow.Add(-time.Hour),
		Priority: enums.ReminderPriorityLow,
		Status:   enums.ReminderStatusOverdue,
	}
	repo := &fakeRepository{findFn: func(_ context.Context, id uuid.UUID) (*models.Reminder, error) {
		copied := *existing
		return &copied, nil
	}}
	audit := &fakeAudit{}
	svc := newServiceWithRepo(t, repo, audit, true)

	updated, err := svc.Update(context.Background(), existing.ID.String(), UpdateReminderRequest{
		Title:   strPtr("New"),
		DueDate: strPtr("2024-06-01"),
	}, "bob")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, enums.ReminderPriorityLow, updated.Priority)
	assert.Equal(t, enums.ReminderStatusPending, updated.Status)
	require.Len(t, audit.updated, 1)
	assert.Equal(t, "Old", audit.updated[0][0].Title)

	_, err = svc.Update(context.Background(), existing.ID.String(), UpdateReminderRequest{Priority: strPtr("Urgent")}, "bob")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestCompleteSetsStatus(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepository{findFn: func(context.Context, uuid.UUID) (*models.Reminder, error) {
		return &models.Reminder{ID: id, Title: "Check", DueDate: fixedNow.Add(-time.Hour), Status: enums.ReminderStatusOverdue}, nil
	}}
	audit := &fakeAudit{}
	svc := newServiceWithRepo(t, repo, audit, true)

	reminder, err := svc.Complete(context.Background(), id.String(), "bob")
	require.NoError(t, err)
	assert.Equal(t, enums.ReminderStatusCompleted, reminder.Status)
	require.Len(t, audit.updated, 1)
	assert.Equal(t, enums.ReminderStatusOverdue, audit.updated[0][0].Status)
}

func TestCompleteOfDeletedReminderIsNotFound(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepository{
		findFn: func(context.Context, uuid.UUID) (*models.Reminder, error) {
			return &models.Reminder{ID: id, Title: "Check", DueDate: fixedNow.Add(time.Hour), Status: enums.ReminderStatusPending}, nil
		},
		updateFn: func(context.Context, *models.Reminder) (bool, error) { return false, nil },
	}
	audit := &fakeAudit{}
	svc := newServiceWithRepo(t, repo, audit, true)

	_, err := svc.Complete(context.Background(), id.String(), "bob")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.Empty(t, audit.updated)
}

func TestGetAndDeleteMissing(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{}, &fakeAudit{}, true)

	_, err := svc.Get(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))

	err = svc.Delete(context.Background(), "bogus", "bob")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestDeleteAudits(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepository{findFn: func(context.Context, uuid.UUID) (*models.Reminder, error) {
		return &models.Reminder{ID: id, Title: "Check", DueDate: fixedNow}, nil
	}}
	audit := &fakeAudit{}
	svc := newServiceWithRepo(t, repo, audit, true)

	require.NoError(t, svc.Delete(context.Background(), id.String(), "bob"))
	require.Len(t, audit.deleted, 1)
}

func TestSweepWrapsErrors(t *testing.T) {
	repo := &fakeRepository{markOverdueFn: func(context.Context, time.Time) (int64, error) {
		return 0, errors.New("db down")
	}}
	svc := newServiceWithRepo(t, repo, &fakeAudit{}, true)

	_, err := svc.Sweep(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal))
}
