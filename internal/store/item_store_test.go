package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danupratama/shopping-note/internal/db"
	"github.com/danupratama/shopping-note/internal/schema"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }
func boolptr(b bool) *bool    { return &b }

func TestItemStoreCreate(t *testing.T) {
	items := NewItemStore(openTestDB(t))
	ctx := context.Background()

	item, err := items.Create(ctx, &schema.CreateItem{
		Name:     "Beras",
		Quantity: 5,
		Unit:     strptr("kg"),
		Category: strptr("Sembako"),
		Priority: 1,
		Note:     strptr("Cari yang pulen"),
	})
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "Beras", item.Name)
	assert.Equal(t, 5, item.Quantity)
	require.NotNil(t, item.Unit)
	assert.Equal(t, "kg", *item.Unit)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Sembako", *item.Category)
	assert.Equal(t, 1, item.Priority)
	assert.False(t, item.Bought)
	require.NotNil(t, item.Note)
	assert.Equal(t, "Cari yang pulen", *item.Note)
	assert.False(t, item.UpdatedAt.IsZero())
}

func TestItemStoreCreateAbsentOptionalsAreNull(t *testing.T) {
	d := openTestDB(t)
	items := NewItemStore(d)
	ctx := context.Background()

	item, err := items.Create(ctx, &schema.CreateItem{Name: "Garam", Quantity: 1, Priority: 2})
	require.NoError(t, err)

	assert.Nil(t, item.Unit)
	assert.Nil(t, item.Category)
	assert.Nil(t, item.Note)

	// Stored as NULL, not as empty strings.
	var nulls int
	err = d.QueryRow(`SELECT COUNT(*) FROM items WHERE id = ? AND unit IS NULL AND category IS NULL AND note IS NULL`, item.ID).Scan(&nulls)
	require.NoError(t, err)
	assert.Equal(t, 1, nulls)
}

func TestItemStoreListEmpty(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	list, err := items.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestItemStoreListOrdering(t *testing.T) {
	items := NewItemStore(openTestDB(t))
	ctx := context.Background()

	// Inserted oldest first: high priority unbought, normal priority
	// unbought (newer), bought. Expected display order is unbought by
	// priority, bought last.
	first, err := items.Create(ctx, &schema.CreateItem{Name: "high", Quantity: 1, Priority: 1})
	require.NoError(t, err)
	second, err := items.Create(ctx, &schema.CreateItem{Name: "normal", Quantity: 1, Priority: 2})
	require.NoError(t, err)
	third, err := items.Create(ctx, &schema.CreateItem{Name: "done", Quantity: 1, Priority: 1, Bought: true})
	require.NoError(t, err)

	list, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, third.ID, list[2].ID)
}

func TestItemStoreListRecentlyUpdatedFirst(t *testing.T) {
	items := NewItemStore(openTestDB(t))
	ctx := context.Background()

	older, err := items.Create(ctx, &schema.CreateItem{Name: "older", Quantity: 1, Priority: 2})
	require.NoError(t, err)
	newer, err := items.Create(ctx, &schema.CreateItem{Name: "newer", Quantity: 1, Priority: 2})
	require.NoError(t, err)

	list, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	// Touching the older item moves it back to the front of its bucket.
	_, err = items.Update(ctx, older.ID, &schema.UpdateItem{Quantity: intptr(2)})
	require.NoError(t, err)

	list, err = items.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, older.ID, list[0].ID)
}

func TestItemStoreGetByIDNotFound(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	_, err := items.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemStorePartialUpdate(t *testing.T) {
	items := NewItemStore(openTestDB(t))
	ctx := context.Background()

	created, err := items.Create(ctx, &schema.CreateItem{Name: "Telur", Quantity: 1, Priority: 2})
	require.NoError(t, err)

	updated, err := items.Update(ctx, created.ID, &schema.UpdateItem{Quantity: intptr(3)})
	require.NoError(t, err)

	assert.Equal(t, "Telur", updated.Name)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, 2, updated.Priority)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestItemStoreUpdateExplicitNullClearsField(t *testing.T) {
	items := NewItemStore(openTestDB(t))
	ctx := context.Background()

	created, err := items.Create(ctx, &schema.CreateItem{
		Name: "Kopi", Quantity: 1, Priority: 2, Note: strptr("200g"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Note)

	updated, err := items.Update(ctx, created.ID, &schema.UpdateItem{Note: schema.TextPatch{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, updated.Note)
}

func TestItemStoreUpdateAllFields(t *testing.T) {
	items := NewItemStore(openTestDB(t))
	ctx := context.Background()

	created, err := items.Create(ctx, &schema.CreateItem{Name: "Mie", Quantity: 1, Priority: 3})
	require.NoError(t, err)

	updated, err := items.Update(ctx, created.ID, &schema.UpdateItem{
		Name:     strptr("Mie instan"),
		Quantity: intptr(10),
		Unit:     schema.TextPatch{Set: true, Value: strptr("pcs")},
		Category: schema.TextPatch{Set: true, Value: strptr("Sembako")},
		Priority: intptr(1),
		Bought:   boolptr(true),
		Note:     schema.TextPatch{Set: true, Value: strptr("yang goreng")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Mie instan", updated.Name)
	assert.Equal(t, 10, updated.Quantity)
	require.NotNil(t, updated.Unit)
	assert.Equal(t, "pcs", *updated.Unit)
	assert.Equal(t, 1, updated.Priority)
	assert.True(t, updated.Bought)
}

func TestItemStoreUpdateNotFound(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	_, err := items.Update(context.Background(), 9999, &schema.UpdateItem{Quantity: intptr(2)})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemStoreToggleSelfInverse(t *testing.T) {
	items := NewItemStore(openTestDB(t))
	ctx := context.Background()

	created, err := items.Create(ctx, &schema.CreateItem{Name: "Sabun", Quantity: 1, Priority: 2})
	require.NoError(t, err)
	require.False(t, created.Bought)

	once, err := items.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, once.Bought)
	assert.False(t, once.UpdatedAt.Before(created.UpdatedAt))

	twice, err := items.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, twice.Bought)
	assert.False(t, twice.UpdatedAt.Before(once.UpdatedAt))
}

func TestItemStoreToggleNotFound(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	_, err := items.Toggle(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemStoreDelete(t *testing.T) {
	items := NewItemStore(openTestDB(t))
	ctx := context.Background()

	created, err := items.Create(ctx, &schema.CreateItem{Name: "Gula", Quantity: 1, Priority: 2})
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, created.ID))

	_, err = items.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	// Deleting again is not idempotent: the row is gone.
	err = items.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
