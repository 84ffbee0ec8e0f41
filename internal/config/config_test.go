package config_test

import (
	"strings"
	"testing"

	"github.com/promptrefine/promptrefine/internal/config"
)

func TestAuthConfigFinalize(t *testing.T) {
	valid := func() config.AuthConfig {
		return config.AuthConfig{
			AdminEmail:    "admin@example.com",
			AdminPassword: "hunter2hunter2",
			Secret:        strings.Repeat("s", 32),
		}
	}

	t.Run("defaults", func(t *testing.T) {
		cfg := valid()
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if cfg.SessionTTL != "24h" {
			t.Errorf("SessionTTL = %q, want 24h", cfg.SessionTTL)
		}
		if cfg.CookieName != "promptrefine_session" {
			t.Errorf("CookieName = %q, want promptrefine_session", cfg.CookieName)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv(config.EnvAuthAdminEmail, "ops@example.com")
		t.Setenv(config.EnvAuthSessionTTL, "30m")

		cfg := valid()
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if cfg.AdminEmail != "ops@example.com" {
			t.Errorf("AdminEmail = %q, want ops@example.com", cfg.AdminEmail)
		}
		if cfg.SessionTTL != "30m" {
			t.Errorf("SessionTTL = %q, want 30m", cfg.SessionTTL)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*config.AuthConfig)
		}{
			{"missing email", func(c *config.AuthConfig) { c.AdminEmail = "" }},
			{"missing password", func(c *config.AuthConfig) { c.AdminPassword = "" }},
			{"short secret", func(c *config.AuthConfig) { c.Secret = "short" }},
			{"bad ttl", func(c *config.AuthConfig) { c.SessionTTL = "soon" }},
			{"negative ttl", func(c *config.AuthConfig) { c.SessionTTL = "-1h" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := valid()
				tt.mutate(&cfg)
				if err := cfg.Finalize(); err == nil {
					t.Error("Finalize() = nil, want error")
				}
			})
		}
	})
}

func TestOpenAIConfigFinalize(t *testing.T) {
	t.Run("defaults and env key", func(t *testing.T) {
		t.Setenv(config.EnvOpenAIAPIKey, "sk-test")

		cfg := config.OpenAIConfig{}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if cfg.APIKey != "sk-test" {
			t.Errorf("APIKey = %q, want sk-test", cfg.APIKey)
		}
		if cfg.RequestTimeout != "30s" {
			t.Errorf("RequestTimeout = %q, want 30s", cfg.RequestTimeout)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		t.Setenv(config.EnvOpenAIAPIKey, "")

		cfg := config.OpenAIConfig{}
		if err := cfg.Finalize(); err == nil {
			t.Error("Finalize() = nil, want error for missing api key")
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		cfg := config.OpenAIConfig{APIKey: "sk-test", RequestTimeout: "fast"}
		if err := cfg.Finalize(); err == nil {
			t.Error("Finalize() = nil, want error for invalid timeout")
		}
	})
}

func TestAPIConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := config.APIConfig{}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if cfg.BasePath != "/api" {
			t.Errorf("BasePath = %q, want /api", cfg.BasePath)
		}
	})

	t.Run("rejects relative base path", func(t *testing.T) {
		cfg := config.APIConfig{BasePath: "api"}
		if err := cfg.Finalize(); err == nil {
			t.Error("Finalize() = nil, want error")
		}
	})
}

func TestServerConfigDefaults(t *testing.T) {
	cfg := config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Addr())
	}
}
