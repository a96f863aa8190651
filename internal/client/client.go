// Package client talks to the shopping-note REST API and keeps a local
// mirror of the item collection consistent with the server under optimistic
// updates (see Mirror).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danupratama/shopping-note/internal/domain"
	"github.com/danupratama/shopping-note/internal/schema"
)

// APIError is a non-success response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Issues     []schema.Issue
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// ItemRequest is a create or update payload. Nil fields are omitted from the
// JSON body, so the server leaves them untouched on partial updates.
type ItemRequest struct {
	Name     *string `json:"name,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	Category *string `json:"category,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Bought   *bool   `json:"bought,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// Client is a thin JSON client for the item API.
type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 10 * time.Second})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *Client) List(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &items, http.StatusOK); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Create(ctx context.Context, req ItemRequest) (*domain.Item, error) {
	item := &domain.Item{}
	if err := c.do(ctx, http.MethodPost, "/api/items", req, item, http.StatusCreated); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) Update(ctx context.Context, id int64, req ItemRequest) (*domain.Item, error) {
	item := &domain.Item{}
	path := fmt.Sprintf("/api/items/%d", id)
	if err := c.do(ctx, http.MethodPut, path, req, item, http.StatusOK); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) Toggle(ctx context.Context, id int64) (*domain.Item, error) {
	item := &domain.Item{}
	path := fmt.Sprintf("/api/items/%d/toggle", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, item, http.StatusOK); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/items/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, http.StatusOK)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string         `json:"message"`
			Issues  []schema.Issue `json:"issues"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			apiErr.Message = errBody.Message
			apiErr.Issues = errBody.Issues
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
