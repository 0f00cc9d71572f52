package items

import (
	"strings"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/angelmondragon/assettrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
	"github.com/angelmondragon/assettrack-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// MissingFieldsMessage is returned when a mandatory item field is absent.
const MissingFieldsMessage = "All fields are required"

// ItemRequest is the create/update body. Unknown fields such as customId or
// qrCode are ignored so clients can send back what they read.
type ItemRequest struct {
	Title         string                `json:"title" validate:"required"`
	Category      string                `json:"category" validate:"required"`
	Status        string                `json:"status" validate:"required"`
	Department    string                `json:"department" validate:"required"`
	Description   *string               `json:"description"`
	Location      *string               `json:"location"`
	PurchaseDate  *string               `json:"purchaseDate"`
	PurchasePrice types.OptionalDecimal `json:"purchasePrice"`
	Manufacturer  *string               `json:"manufacturer"`
	Model         *string               `json:"model"`
	SerialNumber  *string               `json:"serialNumber"`
	Notes         *string               `json:"notes"`
	ItemUser      *string               `json:"itemUser"`
	DateAdded     *string               `json:"dateAdded"`
	User          string                `json:"user"`
}

// Fields is a validated ItemRequest.
type Fields struct {
	Title         string
	Category      enums.ItemCategory
	Status        enums.ItemStatus
	Department    enums.Department
	Description   *string
	Location      *string
	PurchaseDate  *time.Time
	PurchasePrice *decimal.Decimal
	Manufacturer  *string
	Model         *string
	SerialNumber  *string
	Notes         *string
	ItemUser      *string
	DateAdded     *time.Time
}

// Fields trims and validates the request.
func (r ItemRequest) Fields() (Fields, error) {
	f := Fields{Title: strings.TrimSpace(r.Title)}
	missing := map[string]string{}
	for name, value := range map[string]string{
		"title":      f.Title,
		"category":   r.Category,
		"status":     r.Status,
		"department": r.Department,
	} {
		if strings.TrimSpace(value) == "" {
			missing[name] = "is required"
		}
	}
	if len(missing) > 0 {
		return Fields{}, pkgerrors.New(pkgerrors.CodeValidation, MissingFieldsMessage).WithDetails(missing)
	}

	var err error
	if f.Category, err = enums.ParseItemCategory(strings.TrimSpace(r.Category)); err != nil {
		return Fields{}, invalidField("category", err)
	}
	if f.Status, err = enums.ParseItemStatus(strings.TrimSpace(r.Status)); err != nil {
		return Fields{}, invalidField("status", err)
	}
	if f.Department, err = enums.ParseDepartment(strings.TrimSpace(r.Department)); err != nil {
		return Fields{}, invalidField("department", err)
	}
	if f.PurchaseDate, err = types.ParseOptionalDate(r.PurchaseDate); err != nil {
		return Fields{}, invalidField("purchaseDate", err)
	}
	if f.DateAdded, err = types.ParseOptionalDate(r.DateAdded); err != nil {
		return Fields{}, invalidField("dateAdded", err)
	}
	if p := r.PurchasePrice.Value; p != nil && p.IsNegative() {
		return Fields{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid purchasePrice").
			WithDetails(map[string]string{"purchasePrice": "must not be negative"})
	}

	f.PurchasePrice = r.PurchasePrice.Value
	f.Description = trimmed(r.Description)
	f.Location = trimmed(r.Location)
	f.Manufacturer = trimmed(r.Manufacturer)
	f.Model = trimmed(r.Model)
	f.SerialNumber = trimmed(r.SerialNumber)
	f.Notes = trimmed(r.Notes)
	f.ItemUser = trimmed(r.ItemUser)
	return f, nil
}

// apply overwrites every mutable field. DateAdded only moves when supplied.
func (f Fields) apply(item *models.Item) {
	item.Title = f.Title
	item.Category = f.Category
	item.Status = f.Status
	item.Department = f.Department
	item.Description = f.Description
	item.Location = f.Location
	item.PurchaseDate = f.PurchaseDate
	item.PurchasePrice = f.PurchasePrice
	item.Manufacturer = f.Manufacturer
	item.Model = f.Model
	item.SerialNumber = f.SerialNumber
	item.Notes = f.Notes
	item.ItemUser = f.ItemUser
	if f.DateAdded != nil {
		item.DateAdded = *f.DateAdded
	}
}

// ListFilter narrows GET /items. Empty fields are ignored.
type ListFilter struct {
	Category   string
	Status     string
	Department string
	Search     string
}

// RequestMeta carries who is acting and where edit links should point.
type RequestMeta struct {
	Actor   string
	BaseURL string
}

// QRCodeResult is the response of the on-demand QR endpoint.
type QRCodeResult struct {
	CustomID string `json:"customId"`
	QRCode   string `json:"qrCode"`
	URL      string `json:"url"`
}

func invalidField(field string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid "+field).
		WithDetails(map[string]string{field: err.Error()})
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	if t == "" {
		return nil
	}
	return &t
}
