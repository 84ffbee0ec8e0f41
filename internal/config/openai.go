package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvOpenAIAPIKey         = "PROMPTREFINE_OPENAI_API_KEY"
	EnvOpenAIBaseURL        = "PROMPTREFINE_OPENAI_BASE_URL"
	EnvOpenAIRequestTimeout = "PROMPTREFINE_OPENAI_REQUEST_TIMEOUT"
)

// OpenAIConfig holds the upstream completions API settings. BaseURL is
// optional and only set when targeting a compatible proxy or test server.
type OpenAIConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	RequestTimeout string `toml:"request_timeout"`
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *OpenAIConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OpenAIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *OpenAIConfig) Merge(overlay *OpenAIConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
}

func (c *OpenAIConfig) loadDefaults() {
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
}

func (c *OpenAIConfig) loadEnv() {
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvOpenAIBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvOpenAIRequestTimeout); v != "" {
		c.RequestTimeout = v
	}
}

func (c *OpenAIConfig) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (%s)", EnvOpenAIAPIKey)
	}
	if d, err := time.ParseDuration(c.RequestTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid request_timeout: %s", c.RequestTimeout)
	}
	return nil
}
