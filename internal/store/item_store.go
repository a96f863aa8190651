package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danupratama/shopping-note/internal/domain"
	"github.com/danupratama/shopping-note/internal/schema"
)

// ErrItemNotFound is returned when an id has no matching row. Callers map it
// to a 404; it is distinct from validation failures and storage errors.
var ErrItemNotFound = errors.New("item not found")

const itemColumns = "id, name, quantity, unit, category, priority, bought, note, updated_at"

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

// List returns every item ordered for display: unbought before bought, then
// priority ascending (high first), then most recently updated first.
func (s *ItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items
		ORDER BY bought ASC, priority ASC, updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	items := []*domain.Item{}
	for rows.Next() {
		item := &domain.Item{}
		if err := scanItem(rows, item); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

func (s *ItemStore) Create(ctx context.Context, payload *schema.CreateItem) (*domain.Item, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO items (name, quantity, unit, category, priority, bought, note, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, payload.Name, payload.Quantity, payload.Unit, payload.Category,
		payload.Priority, payload.Bought, payload.Note, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	item := &domain.Item{}
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	if err := scanItem(row, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// Update overwrites only the fields present in the patch and bumps
// updated_at. Fields the patch does not carry keep their stored values.
func (s *ItemStore) Update(ctx context.Context, id int64, patch *schema.UpdateItem) (*domain.Item, error) {
	sets := []string{}
	args := []any{}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *patch.Quantity)
	}
	if patch.Unit.Set {
		sets = append(sets, "unit = ?")
		args = append(args, patch.Unit.Value)
	}
	if patch.Category.Set {
		sets = append(sets, "category = ?")
		args = append(args, patch.Category.Value)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.Bought != nil {
		sets = append(sets, "bought = ?")
		args = append(args, *patch.Bought)
	}
	if patch.Note.Set {
		sets = append(sets, "note = ?")
		args = append(args, patch.Note.Value)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		"UPDATE items SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return s.GetByID(ctx, id)
}

// Toggle reads the current bought value and writes the inverse. The read and
// the write are two separate statements: concurrent toggles on the same id
// are last-write-wins, with no version check.
func (s *ItemStore) Toggle(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE items SET bought = ?, updated_at = ? WHERE id = ?
	`, !item.Bought, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Deleted between the read and the write.
		return nil, ErrItemNotFound
	}

	return s.GetByID(ctx, id)
}

func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, item *domain.Item) error {
	return row.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit,
		&item.Category, &item.Priority, &item.Bought, &item.Note, &item.UpdatedAt)
}
