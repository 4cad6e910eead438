package todo

import (
	"context"
	"time"

	domain "github.com/eric-akh/jl-todo-app/domain/todo"
)

// ListTodosRequest is the request for listing todos.
type ListTodosRequest struct{}

// ListTodosResponse is the response for listing todos.
type ListTodosResponse struct {
	Todos []domain.Todo `json:"todos"`
	Total int           `json:"total"`
}

// GetTodoRequest is the request for getting a todo.
type GetTodoRequest struct {
	TodoID string `json:"todo_id"`
}

// GetTodoResponse is the response for getting a todo.
type GetTodoResponse struct {
	Todo  *domain.Todo `json:"todo,omitempty"`
	Found bool         `json:"found"`
}

// CreateTodoRequest is the request for creating a todo.
type CreateTodoRequest struct {
	Title    string          `json:"title"`
	Priority domain.Priority `json:"priority"`
	DueAt    *time.Time      `json:"due_at,omitempty"`
}

// CreateTodoResponse carries either the created todo or the validation failures.
type CreateTodoResponse struct {
	Todo   *domain.Todo        `json:"todo,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// UpdateTodoRequest is the request for replacing a todo's fields.
type UpdateTodoRequest struct {
	TodoID      string          `json:"todo_id"`
	Title       string          `json:"title"`
	Priority    domain.Priority `json:"priority"`
	IsCompleted bool            `json:"is_completed"`
}

// UpdateTodoResponse carries the updated todo, the validation failures, or Found=false.
type UpdateTodoResponse struct {
	Todo   *domain.Todo        `json:"todo,omitempty"`
	Found  bool                `json:"found"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// ToggleTodoRequest is the request for toggling a todo.
type ToggleTodoRequest struct {
	TodoID string `json:"todo_id"`
}

// ToggleTodoResponse is the response for toggling a todo.
type ToggleTodoResponse struct {
	Found       bool `json:"found"`
	IsCompleted bool `json:"is_completed"`
}

// DeleteTodoRequest is the request for deleting a todo.
type DeleteTodoRequest struct {
	TodoID string `json:"todo_id"`
}

// DeleteTodoResponse is the response for deleting a todo.
type DeleteTodoResponse struct {
	Deleted bool `json:"deleted"`
}

// TodoPort defines the interface for todo operations (hexagonal port).
// Absence is reported through the bool results; validation failures are
// returned as *domain.ValidationError.
type TodoPort interface {
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	GetTodo(ctx context.Context, todoID string) (*domain.Todo, bool, error)
	CreateTodo(ctx context.Context, req *CreateTodoRequest) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, req *UpdateTodoRequest) (*domain.Todo, bool, error)
	ToggleTodo(ctx context.Context, todoID string) (bool, error)
	DeleteTodo(ctx context.Context, todoID string) (bool, error)
}
