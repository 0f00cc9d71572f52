package stats

import (
	"context"
	"time"

	"github.com/angelmondragon/assettrack-backend/internal/items"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
)

// Dashboard is the GET /stats/dashboard payload.
type Dashboard struct {
	Reminders ReminderStats `json:"reminders"`
	Items     ItemStats     `json:"items"`
}

type ReminderStats struct {
	Overdue   int64 `json:"overdue"`
	ThisMonth int64 `json:"thisMonth"`
}

type ItemStats struct {
	Total        int64            `json:"total"`
	Maintenance  int64            `json:"maintenance"`
	ByStatus     map[string]int64 `json:"byStatus"`
	ByCategory   map[string]int64 `json:"byCategory"`
	ByDepartment map[string]int64 `json:"byDepartment"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type itemCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status enums.ItemStatus) (int64, error)
	CountGrouped(ctx context.Context, column string) (map[string]int64, error)
}

type reminderCounter interface {
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	CountDueBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

type service struct {
	items     itemCounter
	reminders reminderCounter
	sweeper   sweeper
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(items itemCounter, reminders reminderCounter, sweeper sweeper, logg *logger.Logger) (Service, error) {
	if items == nil || reminders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stats repositories required")
	}
	return &service{items: items, reminders: reminders, sweeper: sweeper, logg: logg, now: time.Now}, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	if s.sweeper != nil {
		if _, err := s.sweeper.Sweep(ctx); err != nil && s.logg != nil {
			s.logg.Error(ctx, "stats.sweep_failed", err)
		}
	}

	now := s.now().UTC()
	var (
		out Dashboard
		err error
	)
	if out.Reminders.Overdue, err = s.reminders.CountOverdue(ctx, now); err != nil {
		return nil, wrap(err)
	}
	if out.Reminders.ThisMonth, err = s.reminders.CountDueBetween(ctx, now, endOfMonth(now)); err != nil {
		return nil, wrap(err)
	}
	if out.Items.Total, err = s.items.Count(ctx); err != nil {
		return nil, wrap(err)
	}
	if out.Items.Maintenance, err = s.items.CountByStatus(ctx, enums.ItemStatusMaintenance); err != nil {
		return nil, wrap(err)
	}
	if out.Items.ByStatus, err = s.items.CountGrouped(ctx, items.GroupByStatus); err != nil {
		return nil, wrap(err)
	}
	if out.Items.ByCategory, err = s.items.CountGrouped(ctx, items.GroupByCategory); err != nil {
		return nil, wrap(err)
	}
	if out.Items.ByDepartment, err = s.items.CountGrouped(ctx, items.GroupByDepartment); err != nil {
		return nil, wrap(err)
	}
	return &out, nil
}

// endOfMonth is the last instant of now's month.
func endOfMonth(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func wrap(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error fetching dashboard stats")
}
