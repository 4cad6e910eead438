package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eric-akh/jl-todo-app/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// TodoModule provides todo management services (core domain).
type TodoModule struct {
	store    *Store
	eventBus mono.EventBus
	logger   types.Logger
}

var _ mono.Module = (*TodoModule)(nil)
var _ mono.ServiceProviderModule = (*TodoModule)(nil)
var _ mono.EventEmitterModule = (*TodoModule)(nil)
var _ mono.HealthCheckableModule = (*TodoModule)(nil)

// NewModule creates a new TodoModule that owns the given store.
func NewModule(store *Store, logger types.Logger) *TodoModule {
	if store == nil {
		store = NewStore()
	}
	return &TodoModule{
		store:  store,
		logger: logger,
	}
}

func (m *TodoModule) Name() string {
	return "todo"
}

func (m *TodoModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TodoModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TodoCreatedV1.ToBase(),
		events.TodoUpdatedV1.ToBase(),
		events.TodoToggledV1.ToBase(),
		events.TodoDeletedV1.ToBase(),
	}
}

func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-todos", json.Unmarshal, json.Marshal, m.listTodos,
	); err != nil {
		return fmt.Errorf("failed to register list-todos service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-todo", json.Unmarshal, json.Marshal, m.getTodo,
	); err != nil {
		return fmt.Errorf("failed to register get-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create-todo", json.Unmarshal, json.Marshal, m.createTodo,
	); err != nil {
		return fmt.Errorf("failed to register create-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-todo", json.Unmarshal, json.Marshal, m.updateTodo,
	); err != nil {
		return fmt.Errorf("failed to register update-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "toggle-todo", json.Unmarshal, json.Marshal, m.toggleTodo,
	); err != nil {
		return fmt.Errorf("failed to register toggle-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-todo", json.Unmarshal, json.Marshal, m.deleteTodo,
	); err != nil {
		return fmt.Errorf("failed to register delete-todo service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", "list-todos, get-todo, create-todo, update-todo, toggle-todo, delete-todo")
	return nil
}

func (m *TodoModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		m.logger.Warn("eventBus not set, events will not be published")
	}
	m.logger.Info("Todo module started")
	return nil
}

func (m *TodoModule) Stop(_ context.Context) error {
	m.logger.Info("Todo module stopped", "todos", m.store.Count())
	return nil
}

// Health reports the module as healthy; the store has no failure modes.
func (m *TodoModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"todos": m.store.Count(),
		},
	}
}
