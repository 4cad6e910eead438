// Package client is a Go client for the todo HTTP API.
//
// Each method is a single request mapped 1:1 to a route. Failures carry the
// HTTP status in an *APIError; nothing is retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds each request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// Todo is a todo record as returned by the server.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"isCompleted"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueAt       *time.Time `json:"dueAt"`
}

// CreateRequest is the body of a create call. A zero Priority lets the
// server apply its default.
type CreateRequest struct {
	Title    string     `json:"title"`
	Priority int        `json:"priority,omitempty"`
	DueAt    *time.Time `json:"dueAt,omitempty"`
}

// UpdateRequest is the body of an update call. All fields are replaced.
type UpdateRequest struct {
	Title       string `json:"title"`
	Priority    int    `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
}

// ActivityEntry is one entry of the server's activity log.
type ActivityEntry struct {
	TodoID    string    `json:"todoId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError is returned for any non-success HTTP status.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("todo api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("todo api: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one todo API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the server at baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListAll returns every todo, most recently created first.
func (c *Client) ListAll(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, http.StatusOK, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// Get returns a single todo.
func (c *Client) Get(ctx context.Context, id string) (*Todo, error) {
	var t Todo
	if err := c.do(ctx, http.MethodGet, todoPath(id), nil, http.StatusOK, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create adds a todo and returns the stored record.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Todo, error) {
	var t Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos", req, http.StatusCreated, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces the title, priority and completion flag of a todo.
func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (*Todo, error) {
	var t Todo
	if err := c.do(ctx, http.MethodPatch, todoPath(id), req, http.StatusOK, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Toggle flips the completion flag of a todo.
func (c *Client) Toggle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, todoPath(id)+"/toggle", nil, http.StatusNoContent, nil)
}

// Remove deletes a todo.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, http.StatusNoContent, nil)
}

// Activity returns up to limit recent activity entries, newest first.
// A limit of zero returns everything the server keeps.
func (c *Client) Activity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	path := "/api/activity"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var entries []ActivityEntry
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []ActivityEntry{}
	}
	return entries, nil
}

func todoPath(id string) string {
	return "/api/todos/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
		apiErr.Errors = body.Errors
	}
	return apiErr
}
