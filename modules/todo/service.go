package todo

import (
	"context"
	"errors"
	"time"

	domain "github.com/eric-akh/jl-todo-app/domain/todo"
	"github.com/eric-akh/jl-todo-app/events"
	"github.com/go-monolith/mono"
)

// listTodos handles the list-todos service request.
func (m *TodoModule) listTodos(_ context.Context, _ ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	todos := m.store.List()
	return ListTodosResponse{
		Todos: todos,
		Total: len(todos),
	}, nil
}

// getTodo handles the get-todo service request.
func (m *TodoModule) getTodo(_ context.Context, req GetTodoRequest, _ *mono.Msg) (GetTodoResponse, error) {
	t, found := m.store.Get(req.TodoID)
	if !found {
		return GetTodoResponse{Found: false}, nil
	}
	return GetTodoResponse{Todo: &t, Found: true}, nil
}

// createTodo handles the create-todo service request.
func (m *TodoModule) createTodo(_ context.Context, req CreateTodoRequest, _ *mono.Msg) (CreateTodoResponse, error) {
	created, err := m.store.Add(req.Title, req.Priority, req.DueAt)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return CreateTodoResponse{Errors: verr.Fields}, nil
		}
		return CreateTodoResponse{}, err
	}

	m.logger.Info("Todo created", "id", created.ID, "priority", int(created.Priority))

	if m.eventBus != nil {
		event := events.TodoCreatedEvent{
			TodoID:    created.ID,
			Title:     created.Title,
			Priority:  int(created.Priority),
			DueAt:     created.DueAt,
			CreatedAt: created.CreatedAt,
		}
		if err := events.TodoCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation
			m.logger.Warn("Failed to publish TodoCreated event", "id", created.ID, "error", err)
		}
	}

	return CreateTodoResponse{Todo: &created}, nil
}

// updateTodo handles the update-todo service request.
func (m *TodoModule) updateTodo(_ context.Context, req UpdateTodoRequest, _ *mono.Msg) (UpdateTodoResponse, error) {
	updated, found, err := m.store.Update(req.TodoID, req.Title, req.Priority, req.IsCompleted)
	if !found {
		return UpdateTodoResponse{Found: false}, nil
	}
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return UpdateTodoResponse{Found: true, Errors: verr.Fields}, nil
		}
		return UpdateTodoResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TodoUpdatedEvent{
			TodoID:      updated.ID,
			Title:       updated.Title,
			Priority:    int(updated.Priority),
			IsCompleted: updated.IsCompleted,
			UpdatedAt:   time.Now().UTC(),
		}
		if err := events.TodoUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TodoUpdated event", "id", updated.ID, "error", err)
		}
	}

	return UpdateTodoResponse{Todo: &updated, Found: true}, nil
}

// toggleTodo handles the toggle-todo service request.
func (m *TodoModule) toggleTodo(_ context.Context, req ToggleTodoRequest, _ *mono.Msg) (ToggleTodoResponse, error) {
	toggled, found := m.store.Toggle(req.TodoID)
	if !found {
		return ToggleTodoResponse{Found: false}, nil
	}

	if m.eventBus != nil {
		event := events.TodoToggledEvent{
			TodoID:      toggled.ID,
			IsCompleted: toggled.IsCompleted,
			ToggledAt:   time.Now().UTC(),
		}
		if err := events.TodoToggledV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TodoToggled event", "id", toggled.ID, "error", err)
		}
	}

	return ToggleTodoResponse{Found: true, IsCompleted: toggled.IsCompleted}, nil
}

// deleteTodo handles the delete-todo service request.
func (m *TodoModule) deleteTodo(_ context.Context, req DeleteTodoRequest, _ *mono.Msg) (DeleteTodoResponse, error) {
	existing, found := m.store.Get(req.TodoID)
	if !found {
		return DeleteTodoResponse{Deleted: false}, nil
	}
	if !m.store.Delete(req.TodoID) {
		// Removed concurrently between Get and Delete.
		return DeleteTodoResponse{Deleted: false}, nil
	}

	m.logger.Info("Todo deleted", "id", req.TodoID)

	if m.eventBus != nil {
		event := events.TodoDeletedEvent{
			TodoID:    req.TodoID,
			Title:     existing.Title,
			DeletedAt: time.Now().UTC(),
		}
		if err := events.TodoDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TodoDeleted event", "id", req.TodoID, "error", err)
		}
	}

	return DeleteTodoResponse{Deleted: true}, nil
}
