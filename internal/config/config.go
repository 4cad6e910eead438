// Package config loads the todo-api configuration from an optional TOML file
// and environment variable overrides.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the config file looked up when TODO_CONFIG is unset.
const DefaultPath = "todo-api.toml"

// Config holds all runtime settings.
type Config struct {
	HTTP     HTTP     `toml:"http"`
	Todo     Todo     `toml:"todo"`
	Activity Activity `toml:"activity"`
	App      App      `toml:"app"`
}

// HTTP contains listener and CORS settings.
type HTTP struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// CORSAllowedOrigins is a comma separated list, "*" allows any origin.
	CORSAllowedOrigins string   `toml:"cors-allowed-origins"`
	ReadTimeout        Duration `toml:"read-timeout"`
	WriteTimeout       Duration `toml:"write-timeout"`
}

// Todo contains domain settings.
type Todo struct {
	// RequireDueAt makes dueAt mandatory on create.
	RequireDueAt bool `toml:"require-due-at"`
}

// Activity contains activity log settings.
type Activity struct {
	Limit int `toml:"limit"`
}

// App contains process-level settings.
type App struct {
	ShutdownTimeout Duration `toml:"shutdown-timeout"`
	// LogLevel is "info" or "error".
	LogLevel string `toml:"log-level"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTP{
			Host:               "",
			Port:               3000,
			CORSAllowedOrigins: "*",
			ReadTimeout:        Duration{10 * time.Second},
			WriteTimeout:       Duration{10 * time.Second},
		},
		Activity: Activity{Limit: 100},
		App: App{
			ShutdownTimeout: Duration{30 * time.Second},
			LogLevel:        "info",
		},
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTP.Host, strconv.Itoa(c.HTTP.Port))
}

// Load builds the configuration: defaults, then the TOML file named by
// TODO_CONFIG (or DefaultPath), then environment overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	path := os.Getenv("TODO_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path, os.LookupEnv)
}

// LoadFile is Load with an explicit file path and environment lookup.
func LoadFile(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		default:
			meta, err := toml.Decode(string(data), cfg)
			if err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
			}
		}
	}

	if err := applyEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		v, ok := lookupEnv(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("HOST"); ok {
		cfg.HTTP.Host = v
	}
	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.HTTP.Port = port
	}
	if v, ok := get("CORS_ALLOWED_ORIGINS"); ok {
		cfg.HTTP.CORSAllowedOrigins = v
	}
	if v, ok := get("TODO_REQUIRE_DUE_AT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TODO_REQUIRE_DUE_AT %q: %w", v, err)
		}
		cfg.Todo.RequireDueAt = b
	}
	if v, ok := get("ACTIVITY_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ACTIVITY_LIMIT %q: %w", v, err)
		}
		cfg.Activity.Limit = n
	}
	if v, ok := get("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		cfg.App.ShutdownTimeout = Duration{d}
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.App.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http.port %d: must be between 1 and 65535", c.HTTP.Port)
	}
	if strings.TrimSpace(c.HTTP.CORSAllowedOrigins) == "" {
		return fmt.Errorf("invalid http.cors-allowed-origins: must not be empty")
	}
	if c.Activity.Limit < 1 {
		return fmt.Errorf("invalid activity.limit %d: must be positive", c.Activity.Limit)
	}
	if c.App.ShutdownTimeout.Duration <= 0 {
		return fmt.Errorf("invalid app.shutdown-timeout %s: must be positive", c.App.ShutdownTimeout)
	}
	switch c.App.LogLevel {
	case "info", "error":
	default:
		return fmt.Errorf("invalid app.log-level %q: must be info or error", c.App.LogLevel)
	}
	return nil
}
