// Package config loads service configuration from config.toml, an optional
// environment-specific overlay, and PROMPTREFINE_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/promptrefine/promptrefine/pkg/database"
	"github.com/promptrefine/promptrefine/pkg/logging"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvName            = "PROMPTREFINE_ENV"
	EnvShutdownTimeout = "PROMPTREFINE_SHUTDOWN_TIMEOUT"
	EnvVersion         = "PROMPTREFINE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PROMPTREFINE_DB_HOST",
	Port:            "PROMPTREFINE_DB_PORT",
	Name:            "PROMPTREFINE_DB_NAME",
	User:            "PROMPTREFINE_DB_USER",
	Password:        "PROMPTREFINE_DB_PASSWORD",
	SSLMode:         "PROMPTREFINE_DB_SSL_MODE",
	MaxOpenConns:    "PROMPTREFINE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PROMPTREFINE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PROMPTREFINE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PROMPTREFINE_DB_CONN_TIMEOUT",
}

var loggingEnv = &logging.Env{
	Level: "PROMPTREFINE_LOG_LEVEL",
}

// Config is the root configuration for the PromptRefine service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	API             APIConfig       `toml:"api"`
	Auth            AuthConfig      `toml:"auth"`
	OpenAI          OpenAIConfig    `toml:"openai"`
	Logging         logging.Config  `toml:"logging"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PROMPTREFINE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvName); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
	c.OpenAI.Merge(&overlay.OpenAI)
	c.Logging.Merge(&overlay.Logging)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Auth.Finalize(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.OpenAI.Finalize(); err != nil {
		return fmt.Errorf("openai: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvName); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
