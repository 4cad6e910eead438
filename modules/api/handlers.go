package api

import (
	"errors"
	"fmt"

	domain "github.com/eric-akh/jl-todo-app/domain/todo"
	"github.com/eric-akh/jl-todo-app/modules/todo"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	api := app.Group("/api")

	todos := api.Group("/todos")
	todos.Get("/", m.listTodos)
	todos.Post("/", m.createTodo)
	todos.Get("/:id", m.getTodo)
	todos.Patch("/:id", m.updateTodo)
	todos.Patch("/:id/toggle", m.toggleTodo)
	todos.Delete("/:id", m.deleteTodo)

	api.Get("/activity", m.listActivity)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	items, err := m.todoPort.ListTodos(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status: "unhealthy",
			Details: map[string]any{
				"module": "api",
				"error":  err.Error(),
			},
		})
	}
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"todos":  len(items),
		},
	})
}

// listTodos handles GET /api/todos.
func (m *APIModule) listTodos(c *fiber.Ctx) error {
	items, err := m.todoPort.ListTodos(c.UserContext())
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}

	resp := make([]TodoResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toTodoResponse(&items[i]))
	}
	return c.JSON(resp)
}

// getTodo handles GET /api/todos/:id.
func (m *APIModule) getTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return notFound(c)
	}

	item, found, err := m.todoPort.GetTodo(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("get todo: %w", err)
	}
	if !found {
		return notFound(c)
	}
	return c.JSON(toTodoResponse(item))
}

// createTodo handles POST /api/todos.
func (m *APIModule) createTodo(c *fiber.Ctx) error {
	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	priority := domain.DefaultPriority
	if req.Priority != nil {
		priority = domain.Priority(*req.Priority)
	}

	verr := checkShape(req.Title, priority)
	if m.opts.RequireDueAt && req.DueAt == nil {
		verr.Add(domain.FieldDueAt, domain.MsgDueAtRequired)
	}
	if verr.HasErrors() {
		return validationFailed(c, verr)
	}

	item, err := m.todoPort.CreateTodo(c.UserContext(), &todo.CreateTodoRequest{
		Title:    req.Title,
		Priority: priority,
		DueAt:    req.DueAt,
	})
	if err != nil {
		if errors.As(err, &verr) {
			return validationFailed(c, verr)
		}
		return fmt.Errorf("create todo: %w", err)
	}

	c.Location("/api/todos/" + item.ID)
	return c.Status(fiber.StatusCreated).JSON(toTodoResponse(item))
}

// updateTodo handles PATCH /api/todos/:id.
func (m *APIModule) updateTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return notFound(c)
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	priority := domain.DefaultPriority
	if req.Priority != nil {
		priority = domain.Priority(*req.Priority)
	}

	if verr := checkShape(req.Title, priority); verr.HasErrors() {
		return validationFailed(c, verr)
	}

	item, found, err := m.todoPort.UpdateTodo(c.UserContext(), &todo.UpdateTodoRequest{
		TodoID:      id,
		Title:       req.Title,
		Priority:    priority,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return validationFailed(c, verr)
		}
		return fmt.Errorf("update todo: %w", err)
	}
	if !found {
		return notFound(c)
	}

	return c.JSON(toTodoResponse(item))
}

// toggleTodo handles PATCH /api/todos/:id/toggle.
func (m *APIModule) toggleTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return notFound(c)
	}

	found, err := m.todoPort.ToggleTodo(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}
	if !found {
		return notFound(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// deleteTodo handles DELETE /api/todos/:id.
func (m *APIModule) deleteTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return notFound(c)
	}

	deleted, err := m.todoPort.DeleteTodo(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if !deleted {
		return notFound(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// listActivity handles GET /api/activity.
func (m *APIModule) listActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "limit must not be negative",
		})
	}

	entries, err := m.activityPort.ListActivity(c.UserContext(), limit)
	if err != nil {
		return fmt.Errorf("list activity: %w", err)
	}

	resp := make([]ActivityResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toActivityResponse(e))
	}
	return c.JSON(resp)
}

// todoID returns the canonical form of the :id parameter.
// Anything that is not a UUID cannot name a todo.
func todoID(c *fiber.Ctx) (string, bool) {
	parsed, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// checkShape validates the request fields before the todo module is called.
func checkShape(title string, priority domain.Priority) *domain.ValidationError {
	verr := domain.NewValidationError()
	if _, msg := domain.NormalizeTitle(title); msg != "" {
		verr.Add(domain.FieldTitle, msg)
	}
	if !priority.IsValid() {
		verr.Add(domain.FieldPriority, domain.MsgPriority)
	}
	return verr
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: fmt.Sprintf("Todo item with id '%s' was not found.", c.Params("id")),
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
	})
}

func validationFailed(c *fiber.Ctx, verr *domain.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "validation_error",
		Message: verr.Error(),
		Errors:  verr.Fields,
	})
}
