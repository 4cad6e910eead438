package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/eric-akh/jl-todo-app/events"
	"github.com/go-monolith/mono/pkg/types"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

func TestNewModule_DefaultLimit(t *testing.T) {
	m := NewModule(0, &mockLogger{})
	if m.limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", m.limit, DefaultLimit)
	}
	if m.Name() != "activity" {
		t.Errorf("Name() = %q, want 'activity'", m.Name())
	}
}

func TestModule_RecordsEventsNewestFirst(t *testing.T) {
	m := NewModule(10, &mockLogger{})
	ctx := context.Background()

	if err := m.handleTodoCreated(ctx, events.TodoCreatedEvent{TodoID: "a", Title: "Buy milk"}, nil); err != nil {
		t.Fatalf("handleTodoCreated() error = %v", err)
	}
	if err := m.handleTodoToggled(ctx, events.TodoToggledEvent{TodoID: "a", IsCompleted: true}, nil); err != nil {
		t.Fatalf("handleTodoToggled() error = %v", err)
	}
	if err := m.handleTodoUpdated(ctx, events.TodoUpdatedEvent{TodoID: "a", Title: "Buy oat milk"}, nil); err != nil {
		t.Fatalf("handleTodoUpdated() error = %v", err)
	}
	if err := m.handleTodoDeleted(ctx, events.TodoDeletedEvent{TodoID: "a", Title: "Buy oat milk"}, nil); err != nil {
		t.Fatalf("handleTodoDeleted() error = %v", err)
	}

	entries := m.Recent(0)
	wantTypes := []string{TypeDeleted, TypeUpdated, TypeToggled, TypeCreated}
	if len(entries) != len(wantTypes) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantTypes))
	}
	for i, want := range wantTypes {
		if entries[i].Type != want {
			t.Errorf("entries[%d].Type = %q, want %q", i, entries[i].Type, want)
		}
		if entries[i].TodoID != "a" {
			t.Errorf("entries[%d].TodoID = %q, want 'a'", i, entries[i].TodoID)
		}
	}
	if entries[2].Message != "Todo a completed" {
		t.Errorf("toggle message = %q", entries[2].Message)
	}
}

func TestModule_EvictsOldestBeyondLimit(t *testing.T) {
	m := NewModule(3, &mockLogger{})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for i := 0; i < 5; i++ {
		_ = m.handleTodoCreated(context.Background(), events.TodoCreatedEvent{TodoID: fmt.Sprintf("t%d", i)}, nil)
	}

	entries := m.Recent(0)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, want := range []string{"t4", "t3", "t2"} {
		if entries[i].TodoID != want {
			t.Errorf("entries[%d].TodoID = %q, want %q", i, entries[i].TodoID, want)
		}
	}

	limited := m.Recent(2)
	if len(limited) != 2 || limited[0].TodoID != "t4" {
		t.Errorf("Recent(2) = %+v", limited)
	}
}

func TestModule_listActivity(t *testing.T) {
	m := NewModule(5, &mockLogger{})
	_ = m.handleTodoCreated(context.Background(), events.TodoCreatedEvent{TodoID: "x", Title: "x"}, nil)

	resp, err := m.listActivity(context.Background(), ListActivityRequest{Limit: 10}, nil)
	if err != nil {
		t.Fatalf("listActivity() error = %v", err)
	}
	if resp.Total != 1 || len(resp.Entries) != 1 {
		t.Errorf("listActivity() = %+v, want one entry", resp)
	}
}
