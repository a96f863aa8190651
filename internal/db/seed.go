package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Seed inserts a small starter shopping list. It is a no-op when the items
// table already has data, so repeated startups never duplicate rows.
func Seed(ctx context.Context, database *sql.DB) error {
	var count int
	if err := database.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		return nil
	}

	rows := []struct {
		name     string
		quantity int
		unit     string
		category string
		priority int
		note     sql.NullString
	}{
		{"Beras", 5, "kg", "Sembako", 1, sql.NullString{String: "Cari yang pulen", Valid: true}},
		{"Telur", 1, "kg", "Sembako", 2, sql.NullString{}},
		{"Susu UHT", 2, "pcs", "Minuman", 2, sql.NullString{}},
		{"Sabun", 1, "pcs", "Kebersihan", 3, sql.NullString{}},
	}

	now := time.Now().UTC()
	for _, r := range rows {
		_, err := database.ExecContext(ctx, `
			INSERT INTO items (name, quantity, unit, category, priority, bought, note, updated_at)
			VALUES (?, ?, ?, ?, ?, 0, ?, ?)
		`, r.name, r.quantity, r.unit, r.category, r.priority, r.note, now)
		if err != nil {
			return fmt.Errorf("failed to seed item %q: %w", r.name, err)
		}
	}

	return nil
}
