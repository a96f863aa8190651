package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreateDefaults(t *testing.T) {
	item, issues := ParseCreate(map[string]any{"name": "Beras"})
	require.Nil(t, issues)

	assert.Equal(t, "Beras", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 2, item.Priority)
	assert.False(t, item.Bought)
	assert.Nil(t, item.Unit)
	assert.Nil(t, item.Category)
	assert.Nil(t, item.Note)
}

func TestParseCreateFullPayload(t *testing.T) {
	item, issues := ParseCreate(map[string]any{
		"name":     "Beras",
		"quantity": float64(5),
		"unit":     "kg",
		"category": "Sembako",
		"priority": float64(1),
		"note":     "Cari yang pulen",
	})
	require.Nil(t, issues)

	assert.Equal(t, 5, item.Quantity)
	require.NotNil(t, item.Unit)
	assert.Equal(t, "kg", *item.Unit)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Sembako", *item.Category)
	assert.Equal(t, 1, item.Priority)
	require.NotNil(t, item.Note)
	assert.Equal(t, "Cari yang pulen", *item.Note)
}

func TestParseCreateCoercion(t *testing.T) {
	item, issues := ParseCreate(map[string]any{
		"name":     "Telur",
		"quantity": "3",
		"priority": "1",
		"bought":   "true",
	})
	require.Nil(t, issues)

	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 1, item.Priority)
	assert.True(t, item.Bought)
}

func TestParseCreateTrimsName(t *testing.T) {
	item, issues := ParseCreate(map[string]any{"name": "  Susu UHT  "})
	require.Nil(t, issues)
	assert.Equal(t, "Susu UHT", item.Name)
}

func TestParseCreateOptionalTextNormalization(t *testing.T) {
	// Empty, whitespace-only, and null inputs all normalize to nil.
	for _, v := range []any{"", "   ", nil} {
		item, issues := ParseCreate(map[string]any{"name": "Sabun", "unit": v, "note": v})
		require.Nil(t, issues)
		assert.Nil(t, item.Unit)
		assert.Nil(t, item.Note)
	}
}

func TestParseCreateMissingName(t *testing.T) {
	_, issues := ParseCreate(map[string]any{"quantity": float64(2)})
	require.Len(t, issues, 1)
	assert.Equal(t, "name", issues[0].Path)
}

func TestParseCreateBlankName(t *testing.T) {
	_, issues := ParseCreate(map[string]any{"name": "   "})
	require.Len(t, issues, 1)
	assert.Equal(t, "name", issues[0].Path)
}

func TestParseCreateCollectsAllIssues(t *testing.T) {
	_, issues := ParseCreate(map[string]any{
		"name":     strings.Repeat("a", 81),
		"quantity": float64(0),
		"priority": float64(4),
		"bought":   "maybe",
	})
	require.Len(t, issues, 4)

	paths := make([]string, len(issues))
	for i, issue := range issues {
		paths[i] = issue.Path
	}
	assert.ElementsMatch(t, []string{"name", "quantity", "priority", "bought"}, paths)
}

func TestParseCreateQuantityBounds(t *testing.T) {
	_, issues := ParseCreate(map[string]any{"name": "Gula", "quantity": float64(1000)})
	require.Len(t, issues, 1)
	assert.Equal(t, "quantity", issues[0].Path)

	item, issues := ParseCreate(map[string]any{"name": "Gula", "quantity": float64(999)})
	require.Nil(t, issues)
	assert.Equal(t, 999, item.Quantity)
}

func TestParseCreateFractionalQuantity(t *testing.T) {
	_, issues := ParseCreate(map[string]any{"name": "Gula", "quantity": 2.5})
	require.Len(t, issues, 1)
	assert.Equal(t, "quantity", issues[0].Path)
}

func TestParseCreateTextTooLong(t *testing.T) {
	_, issues := ParseCreate(map[string]any{
		"name": "Kopi",
		"unit": strings.Repeat("x", 21),
		"note": strings.Repeat("x", 201),
	})
	require.Len(t, issues, 2)
}

func TestParseUpdateEmptyPayload(t *testing.T) {
	patch, issues := ParseUpdate(map[string]any{})
	require.Nil(t, issues)
	assert.True(t, patch.Empty())
}

func TestParseUpdatePartialFields(t *testing.T) {
	patch, issues := ParseUpdate(map[string]any{"quantity": float64(3)})
	require.Nil(t, issues)

	require.NotNil(t, patch.Quantity)
	assert.Equal(t, 3, *patch.Quantity)
	assert.Nil(t, patch.Name)
	assert.False(t, patch.Unit.Set)
	assert.Nil(t, patch.Priority)
	assert.Nil(t, patch.Bought)
}

func TestParseUpdateExplicitNullClearsField(t *testing.T) {
	patch, issues := ParseUpdate(map[string]any{"note": nil})
	require.Nil(t, issues)

	assert.True(t, patch.Note.Set)
	assert.Nil(t, patch.Note.Value)
}

func TestParseUpdateNameStillRequiredNonEmpty(t *testing.T) {
	_, issues := ParseUpdate(map[string]any{"name": ""})
	require.Len(t, issues, 1)
	assert.Equal(t, "name", issues[0].Path)
}

func TestParseUpdateRejectsNullName(t *testing.T) {
	_, issues := ParseUpdate(map[string]any{"name": nil})
	require.Len(t, issues, 1)
	assert.Equal(t, "name", issues[0].Path)
}
