package activity

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	"github.com/angelmondragon/assettrack-backend/pkg/logger"
	"gorm.io/datatypes"
)

var errMissingItem = errors.New("item and note logs require an item id")

type failureRecorder interface {
	IncAuditFailure(logType, action string)
}

// Writer records audit entries for mutations. Its methods never fail: a
// rejected or failed write is logged and counted, and the mutation that
// triggered it stands.
type Writer struct {
	repo    Repository
	logg    *logger.Logger
	metrics failureRecorder
}

func NewWriter(repo Repository, logg *logger.Logger, metrics failureRecorder) *Writer {
	return &Writer{repo: repo, logg: logg, metrics: metrics}
}

func (w *Writer) ItemCreated(ctx context.Context, item *models.Item, actor string) {
	actor = actorOrDefault(actor)
	w.write(ctx, &models.Log{
		LogType:  enums.LogTypeItem,
		ItemID:   item.CustomID,
		ItemName: item.Title,
		Action:   enums.LogActionCreate,
		User:     actor,
		Details:  fmt.Sprintf("User %s created item %s (%s)", actor, item.Title, item.CustomID),
	})
}

func (w *Writer) ItemUpdated(ctx context.Context, before, after *models.Item, actor string) {
	actor = actorOrDefault(actor)
	changes := ItemChanges(before, after)
	w.write(ctx, &models.Log{
		LogType:  enums.LogTypeItem,
		ItemID:   after.CustomID,
		ItemName: after.Title,
		Action:   enums.LogActionUpdate,
		User:     actor,
		Details: fmt.Sprintf("User %s updated item %s (%s): %s",
			actor, after.Title, after.CustomID, DescribeItemChanges(changes)),
		Changes: changes.JSONMap(),
	})
}

func (w *Writer) ItemDeleted(ctx context.Context, item *models.Item, actor string) {
	actor = actorOrDefault(actor)
	w.write(ctx, &models.Log{
		LogType:  enums.LogTypeItem,
		ItemID:   item.CustomID,
		ItemName: item.Title,
		Action:   enums.LogActionDelete,
		User:     actor,
		Details:  fmt.Sprintf("User %s deleted item %s (%s)", actor, item.Title, item.CustomID),
	})
}

func (w *Writer) NoteAdded(ctx context.Context, item *models.Item, note *models.Note, actor string) {
	actor = actorOrDefault(actor)
	w.write(ctx, &models.Log{
		LogType:  enums.LogTypeNote,
		ItemID:   item.CustomID,
		ItemName: item.Title,
		Action:   enums.LogActionUpdate,
		User:     actor,
		Details:  fmt.Sprintf("User %s added a note to item %s (%s): %q", actor, item.Title, item.CustomID, note.Content),
		Changes:  datatypes.JSONMap{"note": map[string]any{"added": note.Content}},
	})
}

func (w *Writer) NoteRemoved(ctx context.Context, item *models.Item, note *models.Note, actor string) {
	actor = actorOrDefault(actor)
	w.write(ctx, &models.Log{
		LogType:  enums.LogTypeNote,
		ItemID:   item.CustomID,
		ItemName: item.Title,
		Action:   enums.LogActionUpdate,
		User:     actor,
		Details:  fmt.Sprintf("User %s deleted a note from item %s (%s)", actor, item.Title, item.CustomID),
		Changes:  datatypes.JSONMap{"note": map[string]any{"removed": note.Content}},
	})
}

func (w *Writer) ReminderCreated(ctx context.Context, reminder *models.Reminder, actor string) {
	actor = actorOrDefault(actor)
	entry := reminderEntry(reminder, enums.LogActionCreate, actor, "added")
	entry.Changes = datatypes.JSONMap{"reminder": map[string]any{"added": reminderLabel(reminder)}}
	w.write(ctx, entry)
}

func (w *Writer) ReminderUpdated(ctx context.Context, before, after *models.Reminder, actor string) {
	actor = actorOrDefault(actor)
	entry := reminderEntry(after, enums.LogActionUpdate, actor, "updated")
	entry.Changes = ReminderChanges(before, after).JSONMap()
	w.write(ctx, entry)
}

func (w *Writer) ReminderDeleted(ctx context.Context, reminder *models.Reminder, actor string) {
	actor = actorOrDefault(actor)
	entry := reminderEntry(reminder, enums.LogActionDelete, actor, "deleted")
	entry.Changes = datatypes.JSONMap{"reminder": map[string]any{"removed": reminderLabel(reminder)}}
	w.write(ctx, entry)
}

func reminderEntry(reminder *models.Reminder, action enums.LogAction, actor, verb string) *models.Log {
	details := fmt.Sprintf("%s %s reminder %q", actor, verb, reminder.Title)
	entry := &models.Log{
		LogType: enums.LogTypeReminder,
		Action:  action,
		User:    actor,
	}
	if reminder.ItemID != nil && *reminder.ItemID != "" {
		details += fmt.Sprintf(" for item %s (%s)", reminder.ItemName, *reminder.ItemID)
		entry.ItemID = *reminder.ItemID
		entry.ItemName = reminder.ItemName
	}
	entry.Details = details
	return entry
}

func reminderLabel(reminder *models.Reminder) string {
	return fmt.Sprintf("%s - Due: %s", reminder.Title, formatDate(reminder.DueDate))
}

func (w *Writer) write(ctx context.Context, entry *models.Log) {
	if w == nil || w.repo == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	err := validateEntry(entry)
	if err == nil {
		err = w.repo.Create(ctx, entry)
	}
	if err == nil {
		return
	}

	if w.metrics != nil {
		w.metrics.IncAuditFailure(string(entry.LogType), string(entry.Action))
	}
	if w.logg != nil {
		ctx = w.logg.WithFields(ctx, map[string]any{
			"log_type": entry.LogType,
			"action":   entry.Action,
			"item_id":  entry.ItemID,
		})
		w.logg.Error(ctx, "activity.write_failed", err)
	}
}

func validateEntry(entry *models.Log) error {
	if !entry.LogType.IsValid() {
		return fmt.Errorf("invalid log type %q", entry.LogType)
	}
	if !entry.Action.IsValid() {
		return fmt.Errorf("invalid log action %q", entry.Action)
	}
	if entry.LogType.RequiresItem() && entry.ItemID == "" {
		return errMissingItem
	}
	if entry.Details == "" {
		return errors.New("log details are required")
	}
	return nil
}

func actorOrDefault(actor string) string {
	if actor == "" {
		return models.DefaultActor
	}
	return actor
}
