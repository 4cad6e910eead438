package todo

import (
	"sort"
	"sync"
	"time"

	domain "github.com/eric-akh/jl-todo-app/domain/todo"
	"github.com/google/uuid"
)

// Store provides in-memory todo storage.
// Every mutation holds the write lock for its whole read-validate-write step,
// and readers only ever receive copies.
type Store struct {
	todos map[string]*entry
	seq   uint64
	mu    sync.RWMutex

	now   func() time.Time
	newID func() string
}

// entry keeps the insertion sequence next to the record so equal timestamps
// still list newest first.
type entry struct {
	todo domain.Todo
	seq  uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides the id generator.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		s.newID = newID
	}
}

// NewStore creates a new empty todo store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		todos: make(map[string]*entry),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all todos ordered by CreatedAt, most recent first.
func (s *Store) List() []domain.Todo {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.todos))
	for _, e := range s.todos {
		entries = append(entries, e)
	}
	result := make([]domain.Todo, len(entries))
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.todo.CreatedAt.Equal(b.todo.CreatedAt) {
			return a.todo.CreatedAt.After(b.todo.CreatedAt)
		}
		return a.seq > b.seq
	})
	for i, e := range entries {
		result[i] = copyTodo(e.todo)
	}
	s.mu.RUnlock()

	return result
}

// Get returns a copy of the todo with the given id.
func (s *Store) Get(id string) (domain.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, found := s.todos[id]
	if !found {
		return domain.Todo{}, false
	}
	return copyTodo(e.todo), true
}

// Add validates the input and stores a new todo.
// The error is a *domain.ValidationError when the title or priority is invalid.
func (s *Store) Add(title string, priority domain.Priority, dueAt *time.Time) (domain.Todo, error) {
	title, err := domain.ValidateFields(title, priority)
	if err != nil {
		return domain.Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for {
		if _, exists := s.todos[id]; !exists {
			break
		}
		id = s.newID()
	}

	s.seq++
	e := &entry{
		todo: domain.Todo{
			ID:          id,
			Title:       title,
			IsCompleted: false,
			Priority:    priority,
			CreatedAt:   s.now(),
			DueAt:       copyTime(dueAt),
		},
		seq: s.seq,
	}
	s.todos[id] = e

	return copyTodo(e.todo), nil
}

// Update replaces the title, priority and completion flag of an existing todo.
// found is false when no todo has the id; in that case nothing is validated or changed.
// ID, CreatedAt and DueAt are left untouched.
func (s *Store) Update(id, title string, priority domain.Priority, isCompleted bool) (domain.Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.todos[id]
	if !found {
		return domain.Todo{}, false, nil
	}

	title, err := domain.ValidateFields(title, priority)
	if err != nil {
		return domain.Todo{}, true, err
	}

	e.todo.Title = title
	e.todo.Priority = priority
	e.todo.IsCompleted = isCompleted

	return copyTodo(e.todo), true, nil
}

// Toggle flips the completion flag of a todo and returns the new state.
func (s *Store) Toggle(id string) (domain.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.todos[id]
	if !found {
		return domain.Todo{}, false
	}

	e.todo.IsCompleted = !e.todo.IsCompleted
	return copyTodo(e.todo), true
}

// Delete removes a todo. It returns false if the id was not present.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.todos[id]; !found {
		return false
	}
	delete(s.todos, id)
	return true
}

// Count returns the number of stored todos.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.todos)
}

func copyTodo(t domain.Todo) domain.Todo {
	t.DueAt = copyTime(t.DueAt)
	return t
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
