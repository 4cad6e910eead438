package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/eric-akh/jl-todo-app/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 100

// ActivityModule keeps a bounded log of todo changes.
// It subscribes to domain events using the EventConsumerModule interface.
type ActivityModule struct {
	entries []Entry // oldest first
	limit   int
	mu      sync.RWMutex
	now     func() time.Time
	logger  types.Logger
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)

// NewModule creates an ActivityModule that retains at most limit entries.
func NewModule(limit int, logger types.Logger) *ActivityModule {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &ActivityModule{
		entries: make([]Entry, 0, limit),
		limit:   limit,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoCreatedV1, m.handleTodoCreated, m); err != nil {
		return fmt.Errorf("failed to register TodoCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoUpdatedV1, m.handleTodoUpdated, m); err != nil {
		return fmt.Errorf("failed to register TodoUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoToggledV1, m.handleTodoToggled, m); err != nil {
		return fmt.Errorf("failed to register TodoToggled consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoDeletedV1, m.handleTodoDeleted, m); err != nil {
		return fmt.Errorf("failed to register TodoDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "TodoCreated, TodoUpdated, TodoToggled, TodoDeleted")
	return nil
}

func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-activity", json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register list-activity service: %w", err)
	}
	return nil
}

func (m *ActivityModule) handleTodoCreated(_ context.Context, event events.TodoCreatedEvent, _ *mono.Msg) error {
	m.record(event.TodoID, TypeCreated, fmt.Sprintf("Todo '%s' created", event.Title))
	return nil
}

func (m *ActivityModule) handleTodoUpdated(_ context.Context, event events.TodoUpdatedEvent, _ *mono.Msg) error {
	m.record(event.TodoID, TypeUpdated, fmt.Sprintf("Todo '%s' updated", event.Title))
	return nil
}

func (m *ActivityModule) handleTodoToggled(_ context.Context, event events.TodoToggledEvent, _ *mono.Msg) error {
	state := "reopened"
	if event.IsCompleted {
		state = "completed"
	}
	m.record(event.TodoID, TypeToggled, fmt.Sprintf("Todo %s %s", event.TodoID, state))
	return nil
}

func (m *ActivityModule) handleTodoDeleted(_ context.Context, event events.TodoDeletedEvent, _ *mono.Msg) error {
	m.record(event.TodoID, TypeDeleted, fmt.Sprintf("Todo '%s' deleted", event.Title))
	return nil
}

// listActivity handles the list-activity service request.
func (m *ActivityModule) listActivity(_ context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	entries := m.Recent(req.Limit)
	return ListActivityResponse{Entries: entries, Total: len(entries)}, nil
}

func (m *ActivityModule) record(todoID, entryType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == m.limit {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:len(m.entries)-1]
	}
	m.entries = append(m.entries, Entry{
		TodoID:    todoID,
		Type:      entryType,
		Message:   message,
		Timestamp: m.now(),
	})
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (m *ActivityModule) Recent(limit int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]Entry, 0, n)
	for i := len(m.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, m.entries[i])
	}
	return result
}

func (m *ActivityModule) Start(_ context.Context) error {
	m.logger.Info("Activity module started - listening for todo events", "limit", m.limit)
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped")
	return nil
}
