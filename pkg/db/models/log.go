package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/angelmondragon/assettrack-backend/pkg/enums"
)

// NotApplicable fills item names on entries that outlive or predate an item.
const NotApplicable = "N/A"

// Log is an immutable audit entry describing one mutation.
type Log struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"_id"`
	LogType   enums.LogType     `gorm:"column:log_type;type:varchar(16);not null;default:'item'" json:"logType"`
	ItemID    string            `gorm:"column:item_id;type:varchar(64);not null;default:'';index" json:"itemId"`
	ItemName  string            `gorm:"type:text;not null;default:'N/A'" json:"itemName"`
	Action    enums.LogAction   `gorm:"type:varchar(16);not null" json:"action"`
	User      string            `gorm:"column:user_name;type:text;not null;default:'DemoAdmin'" json:"user"`
	Details   string            `gorm:"type:text;not null" json:"details"`
	Changes   datatypes.JSONMap `json:"changes"`
	Timestamp time.Time         `gorm:"column:logged_at;not null;index" json:"timestamp"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (l *Log) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	if l.ItemName == "" {
		l.ItemName = NotApplicable
	}
	if l.User == "" {
		l.User = DefaultActor
	}
	if l.Changes == nil {
		l.Changes = datatypes.JSONMap{}
	}
	return nil
}
