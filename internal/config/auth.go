package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvAuthAdminEmail    = "PROMPTREFINE_AUTH_ADMIN_EMAIL"
	EnvAuthAdminPassword = "PROMPTREFINE_AUTH_ADMIN_PASSWORD"
	EnvAuthSecret        = "PROMPTREFINE_AUTH_SECRET"
	EnvAuthSessionTTL    = "PROMPTREFINE_AUTH_SESSION_TTL"
	EnvAuthCookieName    = "PROMPTREFINE_AUTH_COOKIE_NAME"
	EnvAuthCookieSecure  = "PROMPTREFINE_AUTH_COOKIE_SECURE"
)

const minSecretLength = 32

// AuthConfig holds the single-user credentials and session token settings.
// AdminPassword and Secret have no defaults and are expected to come from
// the environment in any real deployment.
type AuthConfig struct {
	AdminEmail    string `toml:"admin_email"`
	AdminPassword string `toml:"admin_password"`
	Secret        string `toml:"secret"`
	SessionTTL    string `toml:"session_ttl"`
	CookieName    string `toml:"cookie_name"`
	CookieSecure  bool   `toml:"cookie_secure"`
}

// SessionTTLDuration returns SessionTTL as a time.Duration.
func (c *AuthConfig) SessionTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.AdminEmail != "" {
		c.AdminEmail = overlay.AdminEmail
	}
	if overlay.AdminPassword != "" {
		c.AdminPassword = overlay.AdminPassword
	}
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.SessionTTL != "" {
		c.SessionTTL = overlay.SessionTTL
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.CookieSecure {
		c.CookieSecure = true
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.SessionTTL == "" {
		c.SessionTTL = "24h"
	}
	if c.CookieName == "" {
		c.CookieName = "promptrefine_session"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthAdminEmail); v != "" {
		c.AdminEmail = v
	}
	if v := os.Getenv(EnvAuthAdminPassword); v != "" {
		c.AdminPassword = v
	}
	if v := os.Getenv(EnvAuthSecret); v != "" {
		c.Secret = v
	}
	if v := os.Getenv(EnvAuthSessionTTL); v != "" {
		c.SessionTTL = v
	}
	if v := os.Getenv(EnvAuthCookieName); v != "" {
		c.CookieName = v
	}
	if v := os.Getenv(EnvAuthCookieSecure); v != "" {
		c.CookieSecure = v == "true" || v == "1"
	}
}

func (c *AuthConfig) validate() error {
	if c.AdminEmail == "" {
		return fmt.Errorf("admin_email is required (%s)", EnvAuthAdminEmail)
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("admin_password is required (%s)", EnvAuthAdminPassword)
	}
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("secret must be at least %d characters (%s)", minSecretLength, EnvAuthSecret)
	}
	if d, err := time.ParseDuration(c.SessionTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid session_ttl: %s", c.SessionTTL)
	}
	return nil
}
