package todo

import (
	"context"

	domain "github.com/eric-akh/jl-todo-app/domain/todo"
)

// localAdapter implements TodoPort directly on a Store, without the service
// container or event publication.
type localAdapter struct {
	store *Store
}

// NewLocalAdapter returns a TodoPort that calls store in-process.
func NewLocalAdapter(store *Store) TodoPort {
	if store == nil {
		panic("local todo adapter requires non-nil Store")
	}
	return &localAdapter{store: store}
}

func (a *localAdapter) ListTodos(_ context.Context) ([]domain.Todo, error) {
	return a.store.List(), nil
}

func (a *localAdapter) GetTodo(_ context.Context, todoID string) (*domain.Todo, bool, error) {
	t, found := a.store.Get(todoID)
	if !found {
		return nil, false, nil
	}
	return &t, true, nil
}

func (a *localAdapter) CreateTodo(_ context.Context, req *CreateTodoRequest) (*domain.Todo, error) {
	t, err := a.store.Add(req.Title, req.Priority, req.DueAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *localAdapter) UpdateTodo(_ context.Context, req *UpdateTodoRequest) (*domain.Todo, bool, error) {
	t, found, err := a.store.Update(req.TodoID, req.Title, req.Priority, req.IsCompleted)
	if !found || err != nil {
		return nil, found, err
	}
	return &t, true, nil
}

func (a *localAdapter) ToggleTodo(_ context.Context, todoID string) (bool, error) {
	_, found := a.store.Toggle(todoID)
	return found, nil
}

func (a *localAdapter) DeleteTodo(_ context.Context, todoID string) (bool, error) {
	return a.store.Delete(todoID), nil
}
