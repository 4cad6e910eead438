package todo

import (
	"context"
	"testing"
	"time"

	domain "github.com/eric-akh/jl-todo-app/domain/todo"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func newTestModule(t *testing.T) *TodoModule {
	t.Helper()
	m := NewModule(NewStore(), &mockLogger{})
	require.NoError(t, m.Start(context.Background()))
	return m
}

func TestModule_Name(t *testing.T) {
	m := NewModule(nil, &mockLogger{})
	assert.Equal(t, "todo", m.Name())
	assert.NotNil(t, m.store, "nil store is replaced with an empty one")
	assert.Len(t, m.EmitEvents(), 4)
}

func TestModule_createTodo(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()
	due := time.Now().Add(24 * time.Hour).UTC()

	tests := []struct {
		name       string
		req        CreateTodoRequest
		wantErrors []string
	}{
		{
			name: "valid with due date",
			req:  CreateTodoRequest{Title: "Buy milk", Priority: domain.PriorityMedium, DueAt: &due},
		},
		{
			name: "valid without due date",
			req:  CreateTodoRequest{Title: "Walk dog", Priority: domain.PriorityLow},
		},
		{
			name:       "empty title",
			req:        CreateTodoRequest{Title: "", Priority: domain.PriorityMedium},
			wantErrors: []string{domain.FieldTitle},
		},
		{
			name:       "bad priority",
			req:        CreateTodoRequest{Title: "x", Priority: 4},
			wantErrors: []string{domain.FieldPriority},
		},
		{
			name:       "both invalid",
			req:        CreateTodoRequest{Title: " ", Priority: 0},
			wantErrors: []string{domain.FieldTitle, domain.FieldPriority},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := m.createTodo(ctx, tt.req, nil)
			require.NoError(t, err, "validation failures are returned in the response, not as errors")

			if len(tt.wantErrors) > 0 {
				assert.Nil(t, resp.Todo)
				for _, field := range tt.wantErrors {
					assert.Contains(t, resp.Errors, field)
				}
				return
			}

			require.NotNil(t, resp.Todo)
			assert.Empty(t, resp.Errors)
			assert.Equal(t, tt.req.Title, resp.Todo.Title)
			assert.Equal(t, tt.req.Priority, resp.Todo.Priority)
			assert.False(t, resp.Todo.IsCompleted)
		})
	}
}

func TestModule_listAndGet(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	empty, err := m.listTodos(ctx, ListTodosRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)

	created, err := m.createTodo(ctx, CreateTodoRequest{Title: "one", Priority: domain.PriorityHigh}, nil)
	require.NoError(t, err)

	list, err := m.listTodos(ctx, ListTodosRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Todos, 1)
	assert.Equal(t, created.Todo.ID, list.Todos[0].ID)

	got, err := m.getTodo(ctx, GetTodoRequest{TodoID: created.Todo.ID}, nil)
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.Equal(t, "one", got.Todo.Title)

	missing, err := m.getTodo(ctx, GetTodoRequest{TodoID: "missing"}, nil)
	require.NoError(t, err)
	assert.False(t, missing.Found)
	assert.Nil(t, missing.Todo)
}

func TestModule_updateTodo(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTodo(ctx, CreateTodoRequest{Title: "draft", Priority: domain.PriorityLow}, nil)
	require.NoError(t, err)
	id := created.Todo.ID

	missing, err := m.updateTodo(ctx, UpdateTodoRequest{TodoID: "missing", Title: "x", Priority: domain.PriorityLow}, nil)
	require.NoError(t, err)
	assert.False(t, missing.Found)

	invalid, err := m.updateTodo(ctx, UpdateTodoRequest{TodoID: id, Title: "", Priority: domain.PriorityLow}, nil)
	require.NoError(t, err)
	assert.True(t, invalid.Found)
	assert.Contains(t, invalid.Errors, domain.FieldTitle)

	ok, err := m.updateTodo(ctx, UpdateTodoRequest{TodoID: id, Title: "final", Priority: domain.PriorityHigh, IsCompleted: true}, nil)
	require.NoError(t, err)
	assert.True(t, ok.Found)
	require.NotNil(t, ok.Todo)
	assert.Equal(t, "final", ok.Todo.Title)
	assert.True(t, ok.Todo.IsCompleted)
	assert.True(t, created.Todo.CreatedAt.Equal(ok.Todo.CreatedAt))
}

func TestModule_toggleAndDelete(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTodo(ctx, CreateTodoRequest{Title: "chore", Priority: domain.PriorityMedium}, nil)
	require.NoError(t, err)
	id := created.Todo.ID

	toggled, err := m.toggleTodo(ctx, ToggleTodoRequest{TodoID: id}, nil)
	require.NoError(t, err)
	assert.True(t, toggled.Found)
	assert.True(t, toggled.IsCompleted)

	unknown, err := m.toggleTodo(ctx, ToggleTodoRequest{TodoID: "missing"}, nil)
	require.NoError(t, err)
	assert.False(t, unknown.Found)

	deleted, err := m.deleteTodo(ctx, DeleteTodoRequest{TodoID: id}, nil)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)

	again, err := m.deleteTodo(ctx, DeleteTodoRequest{TodoID: id}, nil)
	require.NoError(t, err)
	assert.False(t, again.Deleted)

	health := m.Health(ctx)
	assert.True(t, health.Healthy)
	assert.Equal(t, 0, health.Details["todos"])
}
