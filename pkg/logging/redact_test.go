package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/promptrefine/promptrefine/pkg/logging"
)

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"Password", true},
		{"pass", true},
		{"admin_password", true},
		{"secret", true},
		{"client_secret", true},
		{"token", true},
		{"apiKey", true},
		{"api_key", true},
		{"api-key", true},
		{"authorization", true},
		{"cookie", true},
		{"session_id", true},
		{"credentials", true},
		{"title", false},
		{"model", false},
		{"prompt_id", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := logging.IsSensitiveKey(tt.key); got != tt.want {
				t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestRedactValueDeepTraversal(t *testing.T) {
	input := map[string]any{
		"title": "hello",
		"auth": map[string]any{
			"password": "hunter2",
			"nested": map[string]any{
				"api_key": "sk-12345",
				"model":   "gpt-4o",
			},
		},
		"items": []any{
			map[string]any{"token": "abc", "name": "x"},
		},
	}

	got, ok := logging.RedactValue(input).(map[string]any)
	if !ok {
		t.Fatal("RedactValue did not return a map")
	}

	if got["title"] != "hello" {
		t.Errorf("title = %v, want hello", got["title"])
	}

	auth := got["auth"].(map[string]any)
	if auth["password"] != logging.Redacted {
		t.Errorf("password = %v, want %q", auth["password"], logging.Redacted)
	}

	nested := auth["nested"].(map[string]any)
	if nested["api_key"] != logging.Redacted {
		t.Errorf("api_key = %v, want %q", nested["api_key"], logging.Redacted)
	}
	if nested["model"] != "gpt-4o" {
		t.Errorf("model = %v, want gpt-4o", nested["model"])
	}

	item := got["items"].([]any)[0].(map[string]any)
	if item["token"] != logging.Redacted {
		t.Errorf("token = %v, want %q", item["token"], logging.Redacted)
	}
	if item["name"] != "x" {
		t.Errorf("name = %v, want x", item["name"])
	}
}

func TestRedactValueScalarsPassThrough(t *testing.T) {
	if got := logging.RedactValue("plain"); got != "plain" {
		t.Errorf("RedactValue(plain) = %v", got)
	}
	if got := logging.RedactValue(42); got != 42 {
		t.Errorf("RedactValue(42) = %v", got)
	}
}

func TestRedactingHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewRedactingHandler(slog.NewJSONHandler(&buf, nil)))

	logger.Info(
		"login attempt",
		"email", "admin@example.com",
		"password", "hunter2",
		"request", map[string]any{"api_key": "sk-555", "model": "gpt-4o"},
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}

	if record["password"] != logging.Redacted {
		t.Errorf("password = %v, want %q", record["password"], logging.Redacted)
	}
	if record["email"] != "admin@example.com" {
		t.Errorf("email = %v, want admin@example.com", record["email"])
	}

	request := record["request"].(map[string]any)
	if request["api_key"] != logging.Redacted {
		t.Errorf("request.api_key = %v, want %q", request["api_key"], logging.Redacted)
	}
	if request["model"] != "gpt-4o" {
		t.Errorf("request.model = %v, want gpt-4o", request["model"])
	}

	if strings.Contains(buf.String(), "hunter2") || strings.Contains(buf.String(), "sk-555") {
		t.Errorf("log output leaks credentials: %s", buf.String())
	}
}

func TestRedactingHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewRedactingHandler(slog.NewJSONHandler(&buf, nil)))

	logger.With("session_token", "tok-123").Info("request handled")

	if strings.Contains(buf.String(), "tok-123") {
		t.Errorf("With attrs leak credentials: %s", buf.String())
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&logging.Config{Level: "warn"}, &buf)

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info record emitted at warn level: %s", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestLoggingConfigFinalize(t *testing.T) {
	t.Run("defaults to info", func(t *testing.T) {
		cfg := &logging.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if cfg.Level != "info" {
			t.Errorf("Level = %q, want info", cfg.Level)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_LOG_LEVEL", "debug")
		cfg := &logging.Config{Level: "info"}
		if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL"}); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if cfg.Level != "debug" {
			t.Errorf("Level = %q, want debug", cfg.Level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := &logging.Config{Level: "loud"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() = nil, want error for invalid level")
		}
	})
}
