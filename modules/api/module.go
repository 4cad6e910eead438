package api

import (
	"context"
	"fmt"
	"time"

	"github.com/eric-akh/jl-todo-app/modules/activity"
	"github.com/eric-akh/jl-todo-app/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Options configures the HTTP endpoint layer.
type Options struct {
	Addr string
	// CORSAllowedOrigins is passed to the cors middleware; "*" allows any origin.
	CORSAllowedOrigins string
	// RequireDueAt rejects creates without a dueAt.
	RequireDueAt bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// DisableAccessLog drops the request logger middleware.
	DisableAccessLog bool
}

// APIModule is the driving adapter that exposes REST endpoints.
// It calls into the todo and activity modules via their port interfaces.
type APIModule struct {
	app          *fiber.App
	opts         Options
	todoPort     todo.TodoPort
	activityPort activity.ActivityPort
	logger       types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(opts Options, moduleLogger types.Logger) *APIModule {
	if opts.Addr == "" {
		opts.Addr = ":3000"
	}
	if opts.CORSAllowedOrigins == "" {
		opts.CORSAllowedOrigins = "*"
	}
	return &APIModule{
		opts:   opts,
		logger: moduleLogger,
	}
}

// NewApp builds the Fiber application without registering it with mono or
// starting a listener. The ports are used as given.
func NewApp(todoPort todo.TodoPort, activityPort activity.ActivityPort, opts Options, moduleLogger types.Logger) *fiber.App {
	m := NewModule(opts, moduleLogger)
	m.todoPort = todoPort
	m.activityPort = activityPort
	return m.newApp()
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"todo", "activity"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "todo":
		m.todoPort = todo.NewTodoAdapter(container)
	case "activity":
		m.activityPort = activity.NewActivityAdapter(container)
	}
}

func (m *APIModule) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Todo API",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
		ReadTimeout:           m.opts.ReadTimeout,
		WriteTimeout:          m.opts.WriteTimeout,
	})

	app.Use(recover.New())
	if !m.opts.DisableAccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: m.opts.CORSAllowedOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "*",
	}))

	m.setupRoutes(app)
	return app
}

// Start initializes the Fiber HTTP server.
// Returns an error if required dependencies are not set.
func (m *APIModule) Start(_ context.Context) error {
	if m.todoPort == nil {
		return fmt.Errorf("todoPort dependency not set")
	}
	if m.activityPort == nil {
		return fmt.Errorf("activityPort dependency not set")
	}

	m.app = m.newApp()

	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.opts.Addr); err != nil {
			errCh <- err
		}
	}()

	// Catch immediate startup errors such as the port being in use.
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.opts.Addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.opts.Addr,
		},
	}
}

// errorHandler turns unhandled errors into a JSON server fault.
func (m *APIModule) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		m.logger.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
	}

	kind := "server_error"
	switch code {
	case fiber.StatusNotFound:
		kind = "not_found"
	case fiber.StatusMethodNotAllowed:
		kind = "method_not_allowed"
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   kind,
		Message: message,
	})
}
