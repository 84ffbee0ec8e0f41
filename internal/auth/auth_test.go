package auth_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/promptrefine/promptrefine/internal/auth"
	"github.com/promptrefine/promptrefine/internal/config"
)

func testConfig(t *testing.T) *config.AuthConfig {
	t.Helper()
	cfg := &config.AuthConfig{
		AdminEmail:    "admin@example.com",
		AdminPassword: "correct-horse-battery-staple",
		Secret:        "0123456789abcdef0123456789abcdef",
		SessionTTL:    "1h",
		CookieName:    "promptrefine_session",
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize auth config: %v", err)
	}
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogin(t *testing.T) {
	sys := auth.New(testConfig(t), discardLogger())

	t.Run("valid credentials", func(t *testing.T) {
		token, session, err := sys.Login("admin@example.com", "correct-horse-battery-staple")
		if err != nil {
			t.Fatalf("Login() error: %v", err)
		}
		if token == "" {
			t.Error("token is empty")
		}
		if session.UserID != auth.UserID {
			t.Errorf("UserID = %v, want %v", session.UserID, auth.UserID)
		}
		if session.Email != "admin@example.com" {
			t.Errorf("Email = %q", session.Email)
		}
		if !session.ExpiresAt.After(time.Now()) {
			t.Errorf("ExpiresAt = %v, want future", session.ExpiresAt)
		}
	})

	t.Run("rejects bad credentials", func(t *testing.T) {
		tests := []struct {
			name     string
			email    string
			password string
		}{
			{"wrong password", "admin@example.com", "nope"},
			{"wrong email", "intruder@example.com", "correct-horse-battery-staple"},
			{"both empty", "", ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, _, err := sys.Login(tt.email, tt.password); err != auth.ErrInvalidCredentials {
					t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
				}
			})
		}
	})
}

func TestVerify(t *testing.T) {
	sys := auth.New(testConfig(t), discardLogger())

	t.Run("round trip", func(t *testing.T) {
		token, _, err := sys.Login("admin@example.com", "correct-horse-battery-staple")
		if err != nil {
			t.Fatalf("Login() error: %v", err)
		}

		session, err := sys.Verify(token)
		if err != nil {
			t.Fatalf("Verify() error: %v", err)
		}
		if session.UserID != auth.UserID {
			t.Errorf("UserID = %v, want %v", session.UserID, auth.UserID)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := sys.Verify("not.a.token"); err == nil {
			t.Error("Verify() = nil, want error")
		}
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := testConfig(t)
		other.Secret = "ffffffffffffffffffffffffffffffff"
		otherSys := auth.New(other, discardLogger())

		token, _, err := otherSys.Login("admin@example.com", "correct-horse-battery-staple")
		if err != nil {
			t.Fatalf("Login() error: %v", err)
		}
		if _, err := sys.Verify(token); err == nil {
			t.Error("Verify() accepted a foreign token")
		}
	})
}

func TestRequireSession(t *testing.T) {
	sys := auth.New(testConfig(t), discardLogger())

	protected := auth.RequireSession(sys, discardLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := auth.SessionFromContext(r.Context())
			if session == nil {
				t.Error("session missing from context")
			}
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	token, _, err := sys.Login("admin@example.com", "correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/prompts", nil)
		req.AddCookie(&http.Cookie{Name: "promptrefine_session", Value: token})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/prompts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/prompts", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assertUnauthorized(t, rec)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/prompts", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assertUnauthorized(t, rec)
	})
}

func TestLoginHandler(t *testing.T) {
	sys := auth.New(testConfig(t), discardLogger())
	handler := sys.Handler()

	t.Run("sets session cookie", func(t *testing.T) {
		body := `{"email":"admin@example.com","password":"correct-horse-battery-staple"}`
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("len(cookies) = %d, want 1", len(cookies))
		}
		cookie := cookies[0]
		if cookie.Name != "promptrefine_session" {
			t.Errorf("cookie name = %q", cookie.Name)
		}
		if cookie.Value == "" {
			t.Error("cookie value is empty")
		}
		if !cookie.HttpOnly {
			t.Error("cookie is not HttpOnly")
		}
	})

	t.Run("returns bearer token in body", func(t *testing.T) {
		body := `{"email":"admin@example.com","password":"correct-horse-battery-staple"}`
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var env struct {
			Data auth.LoginResponse `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if env.Data.Token == "" {
			t.Fatal("token is empty")
		}
		if env.Data.Session == nil || env.Data.Session.Email != "admin@example.com" {
			t.Errorf("session = %+v", env.Data.Session)
		}

		session, err := sys.Verify(env.Data.Token)
		if err != nil {
			t.Fatalf("Verify(body token) error: %v", err)
		}
		if session.UserID != auth.UserID {
			t.Errorf("UserID = %v, want %v", session.UserID, auth.UserID)
		}
	})

	t.Run("rejects bad credentials", func(t *testing.T) {
		body := `{"email":"admin@example.com","password":"wrong"}`
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		assertUnauthorized(t, rec)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		body := `{"email":"not-an-email","password":"x"}`
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestLogoutClearsCookie(t *testing.T) {
	sys := auth.New(testConfig(t), discardLogger())
	handler := sys.Handler()

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("len(cookies) = %d, want 1", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("Value = %q, want empty", cookies[0].Value)
	}
}

func assertUnauthorized(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var env struct {
		Data  any `json:"data"`
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error == nil || env.Error.Code != "UNAUTHORIZED" {
		t.Errorf("error = %+v, want UNAUTHORIZED", env.Error)
	}
}
