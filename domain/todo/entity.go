// Package todo provides the domain types for todo items.
package todo

import "time"

// Priority ranks a todo item. Only the three defined values are valid.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// DefaultPriority is used when a request omits the priority.
const DefaultPriority = PriorityMedium

// IsValid returns true if the priority is one of the defined values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String returns the display label of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Todo is the core domain entity representing a todo item.
// ID and CreatedAt are assigned once at creation and never change.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"isCompleted"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueAt       *time.Time `json:"dueAt"`
}
