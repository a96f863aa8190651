// Package schema validates and normalizes raw item payloads. Outcomes are
// data: a parse either yields a typed payload or a list of field issues,
// never a Go error, so callers can branch without control-flow exceptions.
//
// Every field goes through the same pipeline: type coercion (numeric strings
// to integers, "true"/1 to booleans), trimming for text, bound and length
// checks, then empty-string-to-nil normalization for optional text.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/danupratama/shopping-note/internal/domain"
)

// Issue is a single field-level validation problem.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// CreateItem is a fully validated and normalized creation payload.
// Defaults are already applied: quantity 1, priority normal, bought false.
type CreateItem struct {
	Name     string
	Quantity int
	Unit     *string
	Category *string
	Priority int
	Bought   bool
	Note     *string
}

// TextPatch carries an optional nullable text field of a partial payload.
// Set reports whether the field appeared at all; Value is nil when the
// client sent null or a blank string, both of which clear the stored value.
type TextPatch struct {
	Set   bool
	Value *string
}

// UpdateItem is a validated partial payload. A nil pointer or unset
// TextPatch means the field was omitted and must be left untouched.
type UpdateItem struct {
	Name     *string
	Quantity *int
	Unit     TextPatch
	Category TextPatch
	Priority *int
	Bought   *bool
	Note     TextPatch
}

// Empty reports whether the payload carries no recognized fields.
func (u *UpdateItem) Empty() bool {
	return u.Name == nil && u.Quantity == nil && !u.Unit.Set &&
		!u.Category.Set && u.Priority == nil && u.Bought == nil && !u.Note.Set
}

// ParseCreate validates a creation payload. On success the returned issues
// slice is nil; on failure the payload is nil and no defaults are applied.
func ParseCreate(raw map[string]any) (*CreateItem, []Issue) {
	var issues []Issue

	name := parseName(raw, &issues)
	if name == nil && len(issues) == 0 {
		issues = append(issues, Issue{Path: "name", Message: "is required"})
	}

	quantity := parseIntField(raw, "quantity", domain.MinQuantity, domain.MaxQuantity, &issues)
	unit := parseTextField(raw, "unit", domain.MaxUnitLen, &issues)
	category := parseTextField(raw, "category", domain.MaxCategoryLen, &issues)
	priority := parseIntField(raw, "priority", domain.PriorityHigh, domain.PriorityLow, &issues)
	bought := parseBoolField(raw, "bought", &issues)
	note := parseTextField(raw, "note", domain.MaxNoteLen, &issues)

	if len(issues) > 0 {
		return nil, issues
	}

	out := &CreateItem{
		Name:     *name,
		Quantity: 1,
		Priority: domain.PriorityNormal,
		Unit:     unit.Value,
		Category: category.Value,
		Note:     note.Value,
	}
	if quantity != nil {
		out.Quantity = *quantity
	}
	if priority != nil {
		out.Priority = *priority
	}
	if bought != nil {
		out.Bought = *bought
	}
	return out, nil
}

// ParseUpdate validates a partial payload. Fields absent from raw stay unset
// in the result; fields that are present are held to the same rules as in
// ParseCreate, including the non-empty rule for name.
func ParseUpdate(raw map[string]any) (*UpdateItem, []Issue) {
	var issues []Issue

	out := &UpdateItem{
		Name:     parseName(raw, &issues),
		Quantity: parseIntField(raw, "quantity", domain.MinQuantity, domain.MaxQuantity, &issues),
		Unit:     parseTextField(raw, "unit", domain.MaxUnitLen, &issues),
		Category: parseTextField(raw, "category", domain.MaxCategoryLen, &issues),
		Priority: parseIntField(raw, "priority", domain.PriorityHigh, domain.PriorityLow, &issues),
		Bought:   parseBoolField(raw, "bought", &issues),
		Note:     parseTextField(raw, "note", domain.MaxNoteLen, &issues),
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func parseName(raw map[string]any, issues *[]Issue) *string {
	v, ok := raw["name"]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		*issues = append(*issues, Issue{Path: "name", Message: "must be a string"})
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*issues = append(*issues, Issue{Path: "name", Message: "must not be empty"})
		return nil
	}
	if utf8.RuneCountInString(s) > domain.MaxNameLen {
		*issues = append(*issues, Issue{Path: "name", Message: fmt.Sprintf("must be at most %d characters", domain.MaxNameLen)})
		return nil
	}
	return &s
}

// parseTextField handles the optional nullable text fields (unit, category,
// note). A blank or null value normalizes to Set with a nil Value.
func parseTextField(raw map[string]any, key string, maxLen int, issues *[]Issue) TextPatch {
	v, ok := raw[key]
	if !ok {
		return TextPatch{}
	}
	if v == nil {
		return TextPatch{Set: true}
	}
	s, ok := v.(string)
	if !ok {
		*issues = append(*issues, Issue{Path: key, Message: "must be a string"})
		return TextPatch{}
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxLen {
		*issues = append(*issues, Issue{Path: key, Message: fmt.Sprintf("must be at most %d characters", maxLen)})
		return TextPatch{}
	}
	if s == "" {
		return TextPatch{Set: true}
	}
	return TextPatch{Set: true, Value: &s}
}

func parseIntField(raw map[string]any, key string, min, max int, issues *[]Issue) *int {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	n, ok := coerceInt(v)
	if !ok {
		*issues = append(*issues, Issue{Path: key, Message: "must be an integer"})
		return nil
	}
	if n < min || n > max {
		*issues = append(*issues, Issue{Path: key, Message: fmt.Sprintf("must be between %d and %d", min, max)})
		return nil
	}
	return &n
}

func parseBoolField(raw map[string]any, key string, issues *[]Issue) *bool {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	b, ok := coerceBool(v)
	if !ok {
		*issues = append(*issues, Issue{Path: key, Message: "must be a boolean"})
		return nil
	}
	return &b
}

// coerceInt accepts JSON numbers with no fractional part and numeric strings.
func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// coerceBool accepts booleans, 0/1 numbers, and strings strconv.ParseBool
// understands ("true", "1", "F", ...).
func coerceBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case float64:
		switch b {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed, true
		}
	}
	return false, false
}
