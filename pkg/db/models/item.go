package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/assettrack-backend/pkg/enums"
)

// DefaultActor is recorded when a request does not identify its user.
const DefaultActor = "DemoAdmin"

// Item is a tracked asset. CustomID is the public identifier; ID is internal.
type Item struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"_id"`
	CustomID      string             `gorm:"column:custom_id;type:varchar(64);not null;uniqueIndex" json:"customId"`
	Title         string             `gorm:"type:text;not null" json:"title"`
	Category      enums.ItemCategory `gorm:"type:varchar(32);not null;index" json:"category"`
	Status        enums.ItemStatus   `gorm:"type:varchar(32);not null;index" json:"status"`
	Department    enums.Department   `gorm:"type:varchar(32);not null;index" json:"department"`
	Description   *string            `gorm:"type:text" json:"description,omitempty"`
	Location      *string            `gorm:"type:text" json:"location,omitempty"`
	PurchaseDate  *time.Time         `json:"purchaseDate,omitempty"`
	PurchasePrice *decimal.Decimal   `gorm:"type:numeric(12,2)" json:"purchasePrice,omitempty"`
	Manufacturer  *string            `gorm:"type:text" json:"manufacturer,omitempty"`
	Model         *string            `gorm:"type:text" json:"model,omitempty"`
	SerialNumber  *string            `gorm:"type:text" json:"serialNumber,omitempty"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	ItemUser      *string            `gorm:"type:text" json:"itemUser,omitempty"`
	DateAdded     time.Time          `gorm:"not null" json:"dateAdded"`
	QRCode        string             `gorm:"column:qr_code;type:text;not null;default:''" json:"qrCode"`
	CreatedAt     time.Time          `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func (i *Item) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.DateAdded.IsZero() {
		i.DateAdded = time.Now().UTC()
	}
	return nil
}
