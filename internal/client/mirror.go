package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/danupratama/shopping-note/internal/domain"
)

// Mirror maintains a local copy of the server's item collection. Mutations
// follow the optimistic protocol: Toggle and Delete apply locally before the
// network call resolves and restore the pre-operation snapshot verbatim when
// the call fails, so a failed mutation never leaves phantom state behind.
//
// Filters are purely local; changing them never touches the server.
type Mirror struct {
	client *Client
	notify func(msg string)

	mu    sync.Mutex
	items []domain.Item

	query      string
	category   string
	showBought bool
}

// NewMirror wraps c. notify receives one message per settled mutation
// (success or failure) and may be nil.
func NewMirror(c *Client, notify func(msg string)) *Mirror {
	return &Mirror{client: c, notify: notify, showBought: true}
}

// Load replaces the mirror wholesale with the server's collection. On
// failure the previous mirror is left untouched.
func (m *Mirror) Load(ctx context.Context) error {
	items, err := m.client.List(ctx)
	if err != nil {
		m.notifyMsg(errMessage(err, "could not load items"))
		return err
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return nil
}

// Create sends the payload and, on success, prepends the server's copy so
// the newest-created item appears first locally.
func (m *Mirror) Create(ctx context.Context, req ItemRequest) (*domain.Item, error) {
	item, err := m.client.Create(ctx, req)
	if err != nil {
		m.notifyMsg(errMessage(err, "could not add item"))
		return nil, err
	}

	m.mu.Lock()
	m.items = append([]domain.Item{*item}, m.items...)
	m.mu.Unlock()

	m.notifyMsg(fmt.Sprintf("added %q", item.Name))
	return item, nil
}

// Update sends a partial payload and replaces the matching local item with
// the server's copy. The mirror is untouched on failure.
func (m *Mirror) Update(ctx context.Context, id int64, req ItemRequest) (*domain.Item, error) {
	item, err := m.client.Update(ctx, id, req)
	if err != nil {
		m.notifyMsg(errMessage(err, "could not update item"))
		return nil, err
	}

	m.mu.Lock()
	m.replaceLocked(*item)
	m.mu.Unlock()

	m.notifyMsg(fmt.Sprintf("updated %q", item.Name))
	return item, nil
}

// Toggle flips bought locally before the network call resolves. On success
// the local item is replaced with the authoritative server copy; on failure
// the pre-toggle snapshot is restored.
func (m *Mirror) Toggle(ctx context.Context, id int64) error {
	m.mu.Lock()
	before := m.snapshotLocked()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Bought = !m.items[i].Bought
			break
		}
	}
	m.mu.Unlock()

	item, err := m.client.Toggle(ctx, id)
	if err != nil {
		m.mu.Lock()
		m.items = before
		m.mu.Unlock()
		m.notifyMsg(errMessage(err, "could not toggle item"))
		return err
	}

	m.mu.Lock()
	m.replaceLocked(*item)
	m.mu.Unlock()
	return nil
}

// Delete removes the item locally before the network call resolves and
// restores the full pre-delete snapshot on any non-success outcome.
func (m *Mirror) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	before := m.snapshotLocked()
	kept := m.items[:0:0]
	for _, item := range m.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.items = kept
	m.mu.Unlock()

	if err := m.client.Delete(ctx, id); err != nil {
		m.mu.Lock()
		m.items = before
		m.mu.Unlock()
		m.notifyMsg(errMessage(err, "could not delete item"))
		return err
	}

	m.notifyMsg("item deleted")
	return nil
}

// Items returns a copy of the current mirror.
func (m *Mirror) Items() []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// SetQuery sets the free-text filter, matched case-insensitively against
// name, category, and note.
func (m *Mirror) SetQuery(q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = strings.TrimSpace(q)
}

// SetCategory sets the category equality filter. Empty means all categories.
func (m *Mirror) SetCategory(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.category = category
}

// SetShowBought controls whether bought items appear in the visible view.
func (m *Mirror) SetShowBought(show bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showBought = show
}

// Visible recomputes the filtered view from the mirror.
func (m *Mirror) Visible() []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	query := strings.ToLower(m.query)
	out := []domain.Item{}
	for _, item := range m.items {
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		if m.category != "" && deref(item.Category) != m.category {
			continue
		}
		if !m.showBought && item.Bought {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories returns the distinct categories present in the mirror, sorted.
func (m *Mirror) Categories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]bool{}
	var out []string
	for _, item := range m.items {
		if c := deref(item.Category); c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

func matchesQuery(item domain.Item, query string) bool {
	return strings.Contains(strings.ToLower(item.Name), query) ||
		strings.Contains(strings.ToLower(deref(item.Category)), query) ||
		strings.Contains(strings.ToLower(deref(item.Note)), query)
}

func (m *Mirror) snapshotLocked() []domain.Item {
	return append([]domain.Item(nil), m.items...)
}

func (m *Mirror) replaceLocked(item domain.Item) {
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = item
			return
		}
	}
}

func (m *Mirror) notifyMsg(msg string) {
	if m.notify != nil {
		m.notify(msg)
	}
}

// errMessage prefers the server-provided message over the generic fallback.
func errMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
