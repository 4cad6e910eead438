package main

import (
	"context"
	"log"
	"os"

	"github.com/eric-akh/jl-todo-app/internal/config"
	"github.com/eric-akh/jl-todo-app/modules/activity"
	"github.com/eric-akh/jl-todo-app/modules/api"
	"github.com/eric-akh/jl-todo-app/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Todo API ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := mono.WithLogLevel(mono.LogLevelInfo)
	if cfg.App.LogLevel == "error" {
		logLevel = mono.WithLogLevel(mono.LogLevelError)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.App.ShutdownTimeout.Duration),
		logLevel,
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	activityModule := activity.NewModule(cfg.Activity.Limit, logger.WithModule("activity"))
	todoModule := todo.NewModule(todo.NewStore(), logger.WithModule("todo"))
	apiModule := api.NewModule(api.Options{
		Addr:               cfg.Addr(),
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		RequireDueAt:       cfg.Todo.RequireDueAt,
		ReadTimeout:        cfg.HTTP.ReadTimeout.Duration,
		WriteTimeout:       cfg.HTTP.WriteTimeout.Duration,
	}, logger.WithModule("api"))

	// Independent modules first, then modules with dependencies.
	if err := app.Register(activityModule); err != nil {
		log.Fatalf("Failed to register activity module: %v", err)
	}
	if err := app.Register(todoModule); err != nil {
		log.Fatalf("Failed to register todo module: %v", err)
	}
	if err := app.Register(apiModule); err != nil {
		log.Fatalf("Failed to register api module: %v", err)
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.App.ShutdownTimeout.Duration,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	dueAt := "optional"
	if cfg.Todo.RequireDueAt {
		dueAt = "required"
	}

	log.Println("")
	log.Printf("Listening on %s (dueAt %s, CORS origins %q)", cfg.Addr(), dueAt, cfg.HTTP.CORSAllowedOrigins)
	log.Println("")
	log.Println("REST API Endpoints:")
	log.Println("  GET    /api/todos             - List todos, newest first")
	log.Println("  GET    /api/todos/:id         - Get a todo")
	log.Println("  POST   /api/todos             - Create a todo")
	log.Println("  PATCH  /api/todos/:id         - Update title, priority, completion")
	log.Println("  PATCH  /api/todos/:id/toggle  - Toggle completion")
	log.Println("  DELETE /api/todos/:id         - Delete a todo")
	log.Println("  GET    /api/activity          - Recent changes")
	log.Println("  GET    /health                - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
