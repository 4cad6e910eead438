package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TodoCreatedEvent is emitted when a new todo is created.
type TodoCreatedEvent struct {
	TodoID    string     `json:"todo_id"`
	Title     string     `json:"title"`
	Priority  int        `json:"priority"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TodoCreatedV1 is the typed event definition for todo creation.
// Subject: events.todo.v1.todo-created
var TodoCreatedV1 = helper.EventDefinition[TodoCreatedEvent](
	"todo", "TodoCreated", "v1",
)

// TodoUpdatedEvent is emitted when a todo's fields are replaced.
type TodoUpdatedEvent struct {
	TodoID      string    `json:"todo_id"`
	Title       string    `json:"title"`
	Priority    int       `json:"priority"`
	IsCompleted bool      `json:"is_completed"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoUpdatedV1 is the typed event definition for todo updates.
// Subject: events.todo.v1.todo-updated
var TodoUpdatedV1 = helper.EventDefinition[TodoUpdatedEvent](
	"todo", "TodoUpdated", "v1",
)

// TodoToggledEvent is emitted when a todo's completion flag flips.
type TodoToggledEvent struct {
	TodoID      string    `json:"todo_id"`
	IsCompleted bool      `json:"is_completed"`
	ToggledAt   time.Time `json:"toggled_at"`
}

// TodoToggledV1 is the typed event definition for completion toggles.
// Subject: events.todo.v1.todo-toggled
var TodoToggledV1 = helper.EventDefinition[TodoToggledEvent](
	"todo", "TodoToggled", "v1",
)

// TodoDeletedEvent is emitted when a todo is deleted.
type TodoDeletedEvent struct {
	TodoID    string    `json:"todo_id"`
	Title     string    `json:"title"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TodoDeletedV1 is the typed event definition for todo deletion.
// Subject: events.todo.v1.todo-deleted
var TodoDeletedV1 = helper.EventDefinition[TodoDeletedEvent](
	"todo", "TodoDeleted", "v1",
)
