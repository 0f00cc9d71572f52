package reminders

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"github.com/google/uuid"
)

const (
	// NotFoundMessage is the public message for a missing reminder.
	NotFoundMessage     = "Reminder not found"
	itemNotFoundMessage = "Item not found"

	defaultUpcomingWindow = 7 * 24 * time.Hour
)

// Service defines reminder operations.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Reminder, error)
	ListByItem(ctx context.Context, itemID string) ([]models.Reminder, error)
	Get(ctx context.Context, id string) (*models.Reminder, error)
	Create(ctx context.Context, req CreateReminderRequest, actor string) (*models.Reminder, error)
	Update(ctx context.Context, id string, req UpdateReminderRequest, actor string) (*models.Reminder, error)
	Complete(ctx context.Context, id string, actor string) (*models.Reminder, error)
	Delete(ctx context.Context, id string, actor string) error
	Purge(ctx context.Context) (int64, error)
	Sweep(ctx context.Context) (int64, error)
}

type itemFinder interface {
	FindByCustomID(ctx context.Context, customID string) (*models.Item, error)
}

type auditRecorder interface {
	ReminderCreated(ctx context.Context, reminder *models.Reminder, actor string)
	ReminderUpdated(ctx context.Context, before, after *models.Reminder, actor string)
	ReminderDeleted(ctx context.Context, reminder *models.Reminder, actor string)
}

type overdueRecorder interface {
	AddOverdueFlipped(n int64)
}

// ServiceParams wires the reminder service collaborators.
type ServiceParams struct {
	Repo    Repository
	Items   itemFinder
	Audit   auditRecorder
	Metrics overdueRecorder
	Logger  *logger.Logger

	// ValidateItems rejects reminders that reference an unknown item.
	ValidateItems  bool
	UpcomingWindow time.Duration
	Now            func() time.Time
}

type service struct {
	repo           Repository
	items          itemFinder
	audit          auditRecorder
	metrics        overdueRecorder
	logg           *logger.Logger
	validateItems  bool
	upcomingWindow time.Duration
	now            func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reminder repository required")
	}
	if params.Audit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit recorder required")
	}
	if params.ValidateItems && params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "item lookup required")
	}
	window := params.UpcomingWindow
	if window <= 0 {
		window = defaultUpcomingWindow
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:           params.Repo,
		items:          params.Items,
		audit:          params.Audit,
		metrics:        params.Metrics,
		logg:           params.Logger,
		validateItems:  params.ValidateItems,
		upcomingWindow: window,
		now:            now,
	}, nil
}

// Sweep persists Overdue on pending reminders that are past due.
func (s *service) Sweep(ctx context.Context) (int64, error) {
	flipped, err := s.repo.MarkOverdue(ctx, s.now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error updating overdue reminders")
	}
	if flipped > 0 && s.metrics != nil {
		s.metrics.AddOverdueFlipped(flipped)
	}
	return flipped, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Reminder, error) {
	if _, err := s.Sweep(ctx); err != nil && s.logg != nil {
		s.logg.Error(ctx, "reminders.sweep_failed", err)
	}

	now := s.now().UTC()
	filter.DueAfter, filter.DueBefore = nil, nil
	if filter.Upcoming {
		until := now.Add(s.upcomingWindow)
		filter.DueAfter, filter.DueBefore = &now, &until
	}
	reminders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching reminders")
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return project(reminders, now), nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]models.Reminder, error) {
	reminders, err := s.repo.ListByItem(ctx, strings.TrimSpace(itemID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching reminders")
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return project(reminders, s.now().UTC()), nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Reminder, error) {
	reminder, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	reminder.Status = ProjectStatus(reminder, s.now().UTC())
	return reminder, nil
}

func (s *service) Create(ctx context.Context, req CreateReminderRequest, actor string) (*models.Reminder, error) {
	title := strings.TrimSpace(req.Title)
	rawDue := strings.TrimSpace(req.DueDate)
	if title == "" || rawDue == "" {
		details := map[string]string{}
		if title == "" {
			details["title"] = "is required"
		}
		if rawDue == "" {
			details["dueDate"] = "is required"
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, MissingFieldsMessage).WithDetails(details)
	}

	due, err := parseDueDate(rawDue)
	if err != nil {
		return nil, err
	}
	reminder := &models.Reminder{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     due,
		Priority:    enums.ReminderPriorityMedium,
		User:        actor,
	}
	if reminder.User == "" {
		reminder.User = strings.TrimSpace(req.User)
	}
	if strings.TrimSpace(req.Priority) != "" {
		if reminder.Priority, err = parsePriority(req.Priority); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(req.Status) != "" {
		if reminder.Status, err = parseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	if req.ItemID != nil {
		if itemID := strings.TrimSpace(*req.ItemID); itemID != "" {
			reminder.ItemID = &itemID
			if err := s.linkItem(ctx, reminder); err != nil {
				return nil, err
			}
		}
	}

	reminder.Status = ProjectStatus(reminder, s.now().UTC())
	if err := s.repo.Create(ctx, reminder); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error creating reminder")
	}

	s.audit.ReminderCreated(ctx, reminder, reminder.User)
	return reminder, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateReminderRequest, actor string) (*models.Reminder, error) {
	reminder, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *reminder

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Title cannot be empty").
				WithDetails(map[string]string{"title": "is required"})
		}
		reminder.Title = title
	}
	if req.Description != nil {
		reminder.Description = strings.TrimSpace(*req.Description)
	}
	if req.DueDate != nil {
		if reminder.DueDate, err = parseDueDate(*req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if reminder.Priority, err = parsePriority(*req.Priority); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if reminder.Status, err = parseStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	if actor == "" {
		actor = strings.TrimSpace(req.User)
	}
	return s.save(ctx, &before, reminder, actor)
}

func (s *service) Complete(ctx context.Context, id string, actor string) (*models.Reminder, error) {
	reminder, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *reminder
	reminder.Status = enums.ReminderStatusCompleted
	return s.save(ctx, &before, reminder, actor)
}

func (s *service) Delete(ctx context.Context, id string, actor string) error {
	reminder, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, reminder.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error deleting reminder")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
	}
	s.audit.ReminderDeleted(ctx, reminder, actor)
	return nil
}

func (s *service) Purge(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error deleting reminders")
	}
	return deleted, nil
}

func (s *service) save(ctx context.Context, before, after *models.Reminder, actor string) (*models.Reminder, error) {
	now := s.now().UTC()
	before.Status = ProjectStatus(before, now)
	after.Status = ProjectStatus(after, now)
	found, err := s.repo.Update(ctx, after)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error updating reminder")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
	}
	s.audit.ReminderUpdated(ctx, before, after, actor)
	return after, nil
}

func (s *service) linkItem(ctx context.Context, reminder *models.Reminder) error {
	if s.items == nil {
		return nil
	}
	item, err := s.items.FindByCustomID(ctx, *reminder.ItemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching item")
	}
	if item == nil {
		if s.validateItems {
			return pkgerrors.New(pkgerrors.CodeNotFound, itemNotFoundMessage)
		}
		return nil
	}
	reminder.ItemName = item.Title
	return nil
}

func (s *service) find(ctx context.Context, id string) (*models.Reminder, error) {
	reminderID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
	}
	reminder, err := s.repo.FindByID(ctx, reminderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching reminder")
	}
	if reminder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
	}
	return reminder, nil
}
