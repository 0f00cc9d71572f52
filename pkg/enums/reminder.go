package enums

import "fmt"

// ReminderPriority orders reminders for attention.
type ReminderPriority string

const (
	ReminderPriorityLow    ReminderPriority = "Low"
	ReminderPriorityMedium ReminderPriority = "Medium"
	ReminderPriorityHigh   ReminderPriority = "High"
)

var validReminderPriorities = []ReminderPriority{
	ReminderPriorityLow,
	ReminderPriorityMedium,
	ReminderPriorityHigh,
}

func (p ReminderPriority) IsValid() bool {
	for _, candidate := range validReminderPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

func ParseReminderPriority(value string) (ReminderPriority, error) {
	for _, candidate := range validReminderPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reminder priority %q", value)
}

// ReminderStatus is persisted but Overdue is derived from the due date.
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "Pending"
	ReminderStatusCompleted ReminderStatus = "Completed"
	ReminderStatusOverdue   ReminderStatus = "Overdue"
)

var validReminderStatuses = []ReminderStatus{
	ReminderStatusPending,
	ReminderStatusCompleted,
	ReminderStatusOverdue,
}

func (s ReminderStatus) IsValid() bool {
	for _, candidate := range validReminderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseReminderStatus(value string) (ReminderStatus, error) {
	for _, candidate := range validReminderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reminder status %q", value)
}
