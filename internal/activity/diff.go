package activity

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/assettrack-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	notSet     = "Not set"
	dateLayout = "2006-01-02"
)

// Change is the before and after rendering of one field.
type Change struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Changes maps field names to their change, in recording order.
type Changes struct {
	fields []string
	byName map[string]Change
}

func (c *Changes) add(field, from, to string) {
	if from == to {
		return
	}
	if c.byName == nil {
		c.byName = map[string]Change{}
	}
	c.fields = append(c.fields, field)
	c.byName[field] = Change{From: from, To: to}
}

func (c Changes) Len() int {
	return len(c.fields)
}

func (c Changes) Get(field string) (Change, bool) {
	change, ok := c.byName[field]
	return change, ok
}

// JSONMap renders the changes for the log's JSON column.
func (c Changes) JSONMap() datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for _, field := range c.fields {
		change := c.byName[field]
		out[field] = map[string]any{"from": change.From, "to": change.To}
	}
	return out
}

var primaryItemFields = map[string]bool{
	"title":      true,
	"category":   true,
	"status":     true,
	"department": true,
}

// ItemChanges diffs two versions of an item. Missing primary values render
// as N/A and missing secondary values as "Not set".
func ItemChanges(before, after *models.Item) Changes {
	var c Changes
	c.add("title", orNA(before.Title), orNA(after.Title))
	c.add("category", orNA(string(before.Category)), orNA(string(after.Category)))
	c.add("status", orNA(string(before.Status)), orNA(string(after.Status)))
	c.add("department", orNA(string(before.Department)), orNA(string(after.Department)))

	c.add("description", optional(before.Description), optional(after.Description))
	c.add("location", optional(before.Location), optional(after.Location))
	c.add("purchaseDate", optionalDate(before.PurchaseDate), optionalDate(after.PurchaseDate))
	c.add("purchasePrice", optionalPrice(before.PurchasePrice), optionalPrice(after.PurchasePrice))
	c.add("manufacturer", optional(before.Manufacturer), optional(after.Manufacturer))
	c.add("model", optional(before.Model), optional(after.Model))
	c.add("serialNumber", optional(before.SerialNumber), optional(after.SerialNumber))
	c.add("notes", optional(before.Notes), optional(after.Notes))
	c.add("itemUser", optional(before.ItemUser), optional(after.ItemUser))
	return c
}

// DescribeItemChanges summarises the primary changes and counts the rest.
func DescribeItemChanges(c Changes) string {
	var primary []string
	others := 0
	for _, field := range c.fields {
		if !primaryItemFields[field] {
			others++
			continue
		}
		change := c.byName[field]
		primary = append(primary, fmt.Sprintf("%s changed from %q to %q", field, change.From, change.To))
	}

	summary := strings.Join(primary, ", ")
	if others > 0 {
		rest := fmt.Sprintf("%d other %s", others, plural(others, "field", "fields"))
		if summary == "" {
			return rest
		}
		return summary + " and " + rest
	}
	if summary == "" {
		return "Minor updates"
	}
	return summary
}

// ReminderChanges diffs the editable reminder fields; due dates compare by day.
func ReminderChanges(before, after *models.Reminder) Changes {
	var c Changes
	c.add("title", before.Title, after.Title)
	c.add("description", before.Description, after.Description)
	if !before.DueDate.Equal(after.DueDate) {
		c.fields = append(c.fields, "dueDate")
		if c.byName == nil {
			c.byName = map[string]Change{}
		}
		c.byName["dueDate"] = Change{From: formatDate(before.DueDate), To: formatDate(after.DueDate)}
	}
	c.add("priority", string(before.Priority), string(after.Priority))
	c.add("status", string(before.Status), string(after.Status))
	return c
}

func orNA(value string) string {
	if value == "" {
		return models.NotApplicable
	}
	return value
}

func optional(value *string) string {
	if value == nil || *value == "" {
		return notSet
	}
	return *value
}

func optionalDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return notSet
	}
	return formatDate(*value)
}

func optionalPrice(value *decimal.Decimal) string {
	if value == nil {
		return notSet
	}
	return value.String()
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
