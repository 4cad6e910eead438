package todo

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/eric-akh/jl-todo-app/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// todoAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TodoPort interface.
type todoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new adapter for todo services.
// container is the ServiceContainer from the todo module received via SetDependencyServiceContainer.
func NewTodoAdapter(container mono.ServiceContainer) TodoPort {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &todoAdapter{container: container}
}

// ListTodos lists all todos via the list-todos service.
func (a *todoAdapter) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	var resp ListTodosResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-todos",
		json.Marshal,
		json.Unmarshal,
		&ListTodosRequest{},
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-todos service call failed: %w", err)
	}
	if resp.Todos == nil {
		resp.Todos = []domain.Todo{}
	}
	return resp.Todos, nil
}

// GetTodo retrieves a todo by ID via the get-todo service.
func (a *todoAdapter) GetTodo(ctx context.Context, todoID string) (*domain.Todo, bool, error) {
	var resp GetTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-todo",
		json.Marshal,
		json.Unmarshal,
		&GetTodoRequest{TodoID: todoID},
		&resp,
	); err != nil {
		return nil, false, fmt.Errorf("get-todo service call failed: %w", err)
	}
	if !resp.Found || resp.Todo == nil {
		return nil, false, nil
	}
	return resp.Todo, true, nil
}

// CreateTodo creates a todo via the create-todo service.
func (a *todoAdapter) CreateTodo(ctx context.Context, req *CreateTodoRequest) (*domain.Todo, error) {
	var resp CreateTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-todo",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-todo service call failed: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, &domain.ValidationError{Fields: resp.Errors}
	}
	if resp.Todo == nil {
		return nil, fmt.Errorf("create-todo returned no todo")
	}
	return resp.Todo, nil
}

// UpdateTodo replaces a todo's fields via the update-todo service.
func (a *todoAdapter) UpdateTodo(ctx context.Context, req *UpdateTodoRequest) (*domain.Todo, bool, error) {
	var resp UpdateTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update-todo",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, false, fmt.Errorf("update-todo service call failed: %w", err)
	}
	if !resp.Found {
		return nil, false, nil
	}
	if len(resp.Errors) > 0 {
		return nil, true, &domain.ValidationError{Fields: resp.Errors}
	}
	if resp.Todo == nil {
		return nil, true, fmt.Errorf("update-todo returned no todo")
	}
	return resp.Todo, true, nil
}

// ToggleTodo flips a todo's completion flag via the toggle-todo service.
func (a *todoAdapter) ToggleTodo(ctx context.Context, todoID string) (bool, error) {
	var resp ToggleTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"toggle-todo",
		json.Marshal,
		json.Unmarshal,
		&ToggleTodoRequest{TodoID: todoID},
		&resp,
	); err != nil {
		return false, fmt.Errorf("toggle-todo service call failed: %w", err)
	}
	return resp.Found, nil
}

// DeleteTodo deletes a todo via the delete-todo service.
func (a *todoAdapter) DeleteTodo(ctx context.Context, todoID string) (bool, error) {
	var resp DeleteTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-todo",
		json.Marshal,
		json.Unmarshal,
		&DeleteTodoRequest{TodoID: todoID},
		&resp,
	); err != nil {
		return false, fmt.Errorf("delete-todo service call failed: %w", err)
	}
	return resp.Deleted, nil
}
