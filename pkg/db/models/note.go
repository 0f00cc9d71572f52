package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteMaxLength bounds note content after trimming.
const NoteMaxLength = 100

type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	ItemID    string    `gorm:"column:item_id;type:varchar(64);not null;index" json:"itemId"`
	Content   string    `gorm:"type:varchar(100);not null" json:"content"`
	User      string    `gorm:"column:user_name;type:text;not null;default:'DemoAdmin'" json:"user"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Note) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.User == "" {
		n.User = DefaultActor
	}
	return nil
}
