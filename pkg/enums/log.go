package enums

import "fmt"

// LogType names the collection an audit entry describes.
type LogType string

const (
	LogTypeItem     LogType = "item"
	LogTypeNote     LogType = "note"
	LogTypeReminder LogType = "reminder"
)

var validLogTypes = []LogType{LogTypeItem, LogTypeNote, LogTypeReminder}

func (t LogType) IsValid() bool {
	for _, candidate := range validLogTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// RequiresItem reports whether entries of this type must reference an item.
func (t LogType) RequiresItem() bool {
	return t == LogTypeItem || t == LogTypeNote
}

// LogAction is the mutation an audit entry records.
type LogAction string

const (
	LogActionCreate LogAction = "create"
	LogActionUpdate LogAction = "update"
	LogActionDelete LogAction = "delete"
)

var validLogActions = []LogAction{LogActionCreate, LogActionUpdate, LogActionDelete}

func (a LogAction) IsValid() bool {
	for _, candidate := range validLogActions {
		if candidate == a {
			return true
		}
	}
	return false
}

func ParseLogAction(value string) (LogAction, error) {
	for _, candidate := range validLogActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid log action %q", value)
}
