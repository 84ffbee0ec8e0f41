package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/promptrefine/promptrefine/pkg/middleware"
)

const (
	EnvAPIBasePath = "PROMPTREFINE_API_BASE_PATH"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTREFINE_CORS_ENABLED",
	Origins:          "PROMPTREFINE_CORS_ORIGINS",
	AllowedMethods:   "PROMPTREFINE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTREFINE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTREFINE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTREFINE_CORS_MAX_AGE",
}

// APIConfig holds API routing and CORS settings.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %s", c.BasePath)
	}
	return nil
}
