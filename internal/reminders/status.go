package reminders

import (
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
)

// ProjectStatus derives the status a reminder should carry at now. Completed
// is terminal; anything else is Overdue once its due date has passed.
func ProjectStatus(r *models.Reminder, now time.Time) enums.ReminderStatus {
	if r.Status == enums.ReminderStatusCompleted {
		return enums.ReminderStatusCompleted
	}
	if r.DueDate.Before(now) {
		return enums.ReminderStatusOverdue
	}
	return enums.ReminderStatusPending
}

func project(list []models.Reminder, now time.Time) []models.Reminder {
	for i := range list {
		list[i].Status = ProjectStatus(&list[i], now)
	}
	return list
}
