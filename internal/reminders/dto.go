package reminders

import (
	"strings"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/types"
)

// MissingFieldsMessage is returned when title or dueDate is absent.
const MissingFieldsMessage = "Title and due date are required"

// CreateReminderRequest is the POST /reminders body.
type CreateReminderRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	ItemID      *string `json:"itemId"`
	User        string  `json:"user"`
}

// UpdateReminderRequest is a partial update; nil fields are left alone.
type UpdateReminderRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	User        string  `json:"user"`
}

// ListFilter narrows GET /reminders.
type ListFilter struct {
	Status   enums.ReminderStatus
	Priority enums.ReminderPriority
	ItemID   string
	Upcoming bool
	// Set by the service from Upcoming.
	DueAfter  *time.Time
	DueBefore *time.Time
}

// ParseListFilter validates raw query values.
func ParseListFilter(status, priority, itemID string, upcoming bool) (ListFilter, error) {
	filter := ListFilter{ItemID: strings.TrimSpace(itemID), Upcoming: upcoming}
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := enums.ParseReminderStatus(status)
		if err != nil {
			return ListFilter{}, invalidField("status", err)
		}
		filter.Status = parsed
	}
	if priority = strings.TrimSpace(priority); priority != "" {
		parsed, err := enums.ParseReminderPriority(priority)
		if err != nil {
			return ListFilter{}, invalidField("priority", err)
		}
		filter.Priority = parsed
	}
	return filter, nil
}

func parseDueDate(raw string) (time.Time, error) {
	due, err := types.ParseDate(raw)
	if err != nil {
		return time.Time{}, invalidField("dueDate", err)
	}
	return due, nil
}

func parsePriority(raw string) (enums.ReminderPriority, error) {
	priority, err := enums.ParseReminderPriority(strings.TrimSpace(raw))
	if err != nil {
		return "", invalidField("priority", err)
	}
	return priority, nil
}

func parseStatus(raw string) (enums.ReminderStatus, error) {
	status, err := enums.ParseReminderStatus(strings.TrimSpace(raw))
	if err != nil {
		return "", invalidField("status", err)
	}
	return status, nil
}

func invalidField(field string, err error) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "Invalid "+field).
		WithDetails(map[string]string{field: err.Error()})
}
