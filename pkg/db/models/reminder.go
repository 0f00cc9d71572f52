package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/assettrack-backend/pkg/enums"
)

// Reminder is a dated follow-up, optionally tied to an item.
type Reminder struct {
	ID               uuid.UUID              `gorm:"type:uuid;primaryKey" json:"_id"`
	Title            string                 `gorm:"type:text;not null" json:"title"`
	Description      string                 `gorm:"type:text;not null;default:''" json:"description"`
	ItemID           *string                `gorm:"column:item_id;type:varchar(64);index" json:"itemId"`
	ItemName         string                 `gorm:"type:text;not null;default:''" json:"itemName"`
	DueDate          time.Time              `gorm:"not null;index" json:"dueDate"`
	Priority         enums.ReminderPriority `gorm:"type:varchar(16);not null;default:'Medium'" json:"priority"`
	Status           enums.ReminderStatus   `gorm:"type:varchar(16);not null;default:'Pending';index" json:"status"`
	User             string                 `gorm:"column:user_name;type:text;not null;default:'DemoAdmin'" json:"user"`
	NotificationSent bool                   `gorm:"not null;default:false" json:"notificationSent"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

func (r *Reminder) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Priority == "" {
		r.Priority = enums.ReminderPriorityMedium
	}
	if r.Status == "" {
		r.Status = enums.ReminderStatusPending
	}
	if r.User == "" {
		r.User = DefaultActor
	}
	return nil
}
