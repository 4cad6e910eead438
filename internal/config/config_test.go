package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eric-akh/jl-todo-app/internal/config"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo-api.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFile_NotFound(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"), env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr() != ":3000" {
		t.Errorf("expected default addr :3000, got %q", cfg.Addr())
	}
	if cfg.HTTP.CORSAllowedOrigins != "*" {
		t.Errorf("expected permissive CORS by default, got %q", cfg.HTTP.CORSAllowedOrigins)
	}
	if cfg.Todo.RequireDueAt {
		t.Error("expected dueAt to be optional by default")
	}
	if cfg.Activity.Limit != 100 {
		t.Errorf("expected activity limit 100, got %d", cfg.Activity.Limit)
	}
	if cfg.App.ShutdownTimeout.Duration != 30*time.Second {
		t.Errorf("expected 30s shutdown timeout, got %s", cfg.App.ShutdownTimeout)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.App.LogLevel)
	}
}

func TestLoadFile_Full(t *testing.T) {
	path := writeConfig(t, `
[http]
host = "127.0.0.1"
port = 8080
cors-allowed-origins = "http://localhost:4200"
read-timeout = "5s"
write-timeout = "15s"

[todo]
require-due-at = true

[activity]
limit = 25

[app]
shutdown-timeout = "1m"
log-level = "error"
`)

	cfg, err := config.LoadFile(path, env(nil))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
	if cfg.HTTP.CORSAllowedOrigins != "http://localhost:4200" {
		t.Errorf("unexpected origins %q", cfg.HTTP.CORSAllowedOrigins)
	}
	if cfg.HTTP.ReadTimeout.Duration != 5*time.Second || cfg.HTTP.WriteTimeout.Duration != 15*time.Second {
		t.Errorf("unexpected timeouts %s/%s", cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	}
	if !cfg.Todo.RequireDueAt {
		t.Error("expected require-due-at to be set")
	}
	if cfg.Activity.Limit != 25 {
		t.Errorf("expected activity limit 25, got %d", cfg.Activity.Limit)
	}
	if cfg.App.ShutdownTimeout.Duration != time.Minute {
		t.Errorf("expected 1m shutdown timeout, got %s", cfg.App.ShutdownTimeout)
	}
	if cfg.App.LogLevel != "error" {
		t.Errorf("expected error log level, got %q", cfg.App.LogLevel)
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[http]
port = 9000
`)

	cfg, err := config.LoadFile(path, env(nil))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.HTTP.Port)
	}
	if cfg.Activity.Limit != 100 {
		t.Errorf("expected default activity limit, got %d", cfg.Activity.Limit)
	}
	if cfg.HTTP.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("expected default read timeout, got %s", cfg.HTTP.ReadTimeout)
	}
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[http]
port = 8080

[todo]
require-due-at = false
`)

	cfg, err := config.LoadFile(path, env(map[string]string{
		"HOST":                 "0.0.0.0",
		"PORT":                 "5000",
		"CORS_ALLOWED_ORIGINS": "https://todo.example.com",
		"TODO_REQUIRE_DUE_AT":  "true",
		"ACTIVITY_LIMIT":       "10",
		"SHUTDOWN_TIMEOUT":     "5s",
		"LOG_LEVEL":            "ERROR",
	}))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:5000" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
	if cfg.HTTP.CORSAllowedOrigins != "https://todo.example.com" {
		t.Errorf("unexpected origins %q", cfg.HTTP.CORSAllowedOrigins)
	}
	if !cfg.Todo.RequireDueAt {
		t.Error("expected env to enable require-due-at")
	}
	if cfg.Activity.Limit != 10 {
		t.Errorf("expected activity limit 10, got %d", cfg.Activity.Limit)
	}
	if cfg.App.ShutdownTimeout.Duration != 5*time.Second {
		t.Errorf("expected 5s shutdown timeout, got %s", cfg.App.ShutdownTimeout)
	}
	if cfg.App.LogLevel != "error" {
		t.Errorf("expected log level to be lowercased, got %q", cfg.App.LogLevel)
	}
}

func TestLoadFile_EmptyEnvIgnored(t *testing.T) {
	cfg, err := config.LoadFile("", env(map[string]string{"PORT": "  "}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("expected default port, got %d", cfg.HTTP.Port)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantKey string
	}{
		{name: "port not a number", env: map[string]string{"PORT": "abc"}, wantKey: "PORT"},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, wantKey: "http.port"},
		{name: "bad bool", env: map[string]string{"TODO_REQUIRE_DUE_AT": "maybe"}, wantKey: "TODO_REQUIRE_DUE_AT"},
		{name: "bad activity limit", env: map[string]string{"ACTIVITY_LIMIT": "0"}, wantKey: "activity.limit"},
		{name: "bad shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}, wantKey: "SHUTDOWN_TIMEOUT"},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}, wantKey: "app.log-level"},
		{name: "bad duration in file", file: "[http]\nread-timeout = \"fast\"\n", wantKey: "parse config file"},
		{name: "unknown key in file", file: "[http]\nprot = 8080\n", wantKey: "http.prot"},
		{name: "malformed file", file: "[http\n", wantKey: "parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := config.LoadFile(path, env(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("expected error to mention %q, got %v", tt.wantKey, err)
			}
		})
	}
}

func TestLoad_UsesTodoConfigEnv(t *testing.T) {
	path := writeConfig(t, "[activity]\nlimit = 7\n")
	t.Setenv("TODO_CONFIG", path)
	for _, key := range []string{"HOST", "PORT", "CORS_ALLOWED_ORIGINS", "TODO_REQUIRE_DUE_AT", "ACTIVITY_LIMIT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Activity.Limit != 7 {
		t.Errorf("expected activity limit from TODO_CONFIG file, got %d", cfg.Activity.Limit)
	}
}
