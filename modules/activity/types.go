package activity

import (
	"context"
	"time"
)

// Entry records one change to a todo, as observed on the event bus.
type Entry struct {
	TodoID    string    `json:"todoId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry types.
const (
	TypeCreated = "todo_created"
	TypeUpdated = "todo_updated"
	TypeToggled = "todo_toggled"
	TypeDeleted = "todo_deleted"
)

// ListActivityRequest is the request for listing recent activity.
type ListActivityRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListActivityResponse is the response for listing recent activity.
type ListActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// ActivityPort defines the interface other modules use to read the activity log.
type ActivityPort interface {
	ListActivity(ctx context.Context, limit int) ([]Entry, error)
}
