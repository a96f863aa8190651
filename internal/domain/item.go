package domain

import "time"

// Priority levels for an item. Lower value sorts first.
const (
	PriorityHigh   = 1
	PriorityNormal = 2
	PriorityLow    = 3
)

// Field limits enforced by the validation schema.
const (
	MaxNameLen     = 80
	MaxUnitLen     = 20
	MaxCategoryLen = 30
	MaxNoteLen     = 200
	MinQuantity    = 1
	MaxQuantity    = 999
)

// Item is a single shopping-list entry. Optional text fields are nil when
// absent and serialize as JSON null, never as an empty string.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Unit      *string   `json:"unit"`
	Category  *string   `json:"category"`
	Priority  int       `json:"priority"`
	Bought    bool      `json:"bought"`
	Note      *string   `json:"note"`
	UpdatedAt time.Time `json:"updatedAt"`
}
