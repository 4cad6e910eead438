package api

import (
	"time"

	domain "github.com/eric-akh/jl-todo-app/domain/todo"
	"github.com/eric-akh/jl-todo-app/modules/activity"
)

// CreateTodoRequest is the HTTP request for creating a todo.
// Priority is a pointer so an absent field can default to Medium.
type CreateTodoRequest struct {
	Title    string     `json:"title"`
	Priority *int       `json:"priority"`
	DueAt    *time.Time `json:"dueAt"`
}

// UpdateTodoRequest is the HTTP request for replacing a todo's mutable fields.
type UpdateTodoRequest struct {
	Title       string `json:"title"`
	Priority    *int   `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
}

// TodoResponse is the HTTP response for a single todo.
type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"isCompleted"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueAt       *time.Time `json:"dueAt"`
}

// ActivityResponse is the HTTP response for one activity entry.
type ActivityResponse struct {
	TodoID    string    `json:"todoId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func toTodoResponse(t *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		IsCompleted: t.IsCompleted,
		Priority:    int(t.Priority),
		CreatedAt:   t.CreatedAt,
		DueAt:       t.DueAt,
	}
}

func toActivityResponse(e activity.Entry) ActivityResponse {
	return ActivityResponse{
		TodoID:    e.TodoID,
		Type:      e.Type,
		Message:   e.Message,
		Timestamp: e.Timestamp,
	}
}
