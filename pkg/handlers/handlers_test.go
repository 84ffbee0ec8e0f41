package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/promptrefine/promptrefine/pkg/handlers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, map[string]string{"name": "test"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	env := decodeEnvelope(t, rec.Body)
	if env.Error != nil {
		t.Errorf("error = %+v, want nil", env.Error)
	}
	if string(env.Data) != `{"name":"test"}` {
		t.Errorf("data = %s, want {\"name\":\"test\"}", env.Data)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", handlers.Unauthorized("no session"), http.StatusUnauthorized, handlers.CodeUnauthorized},
		{"invalid input", handlers.InvalidInput("bad field"), http.StatusBadRequest, handlers.CodeInvalidInput},
		{"invalid json", handlers.InvalidJSON("bad body"), http.StatusBadRequest, handlers.CodeInvalidJSON},
		{"not found", handlers.NotFound("missing"), http.StatusNotFound, handlers.CodeNotFound},
		{"conflict", handlers.Conflict("collision"), http.StatusConflict, handlers.CodeConflict},
		{"upstream", handlers.UpstreamError("model down"), http.StatusBadGateway, handlers.CodeUpstreamError},
		{"internal", handlers.InternalError("boom"), http.StatusInternalServerError, handlers.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/test", nil)
			handlers.RespondError(rec, req, discardLogger(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			env := decodeEnvelope(t, rec.Body)
			if string(env.Data) != "null" {
				t.Errorf("data = %s, want null", env.Data)
			}
			if env.Error == nil {
				t.Fatal("error is nil, want populated")
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", env.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	handlers.RespondError(rec, req, discardLogger(), errors.New("pq: secret table does not exist"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	env := decodeEnvelope(t, rec.Body)
	if env.Error == nil {
		t.Fatal("error is nil, want populated")
	}
	if env.Error.Code != handlers.CodeInternalError {
		t.Errorf("code = %q, want %q", env.Error.Code, handlers.CodeInternalError)
	}
	if strings.Contains(env.Error.Message, "secret table") {
		t.Errorf("message leaks internal detail: %q", env.Error.Message)
	}
}

func TestRespondErrorWrapped(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	wrapped := errors.Join(errors.New("outer"), handlers.NotFound("Prompt not found"))
	handlers.RespondError(rec, req, discardLogger(), wrapped)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title" validate:"required,max=10"`
	}

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"valid", `{"title":"ok"}`, ""},
		{"empty body", ``, handlers.CodeInvalidJSON},
		{"truncated", `{"title":`, handlers.CodeInvalidJSON},
		{"not json", `not json at all`, handlers.CodeInvalidJSON},
		{"wrong type", `{"title":42}`, handlers.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/test", strings.NewReader(tt.body))

			var dst payload
			herr := handlers.DecodeJSON(req, &dst)

			if tt.wantCode == "" {
				if herr != nil {
					t.Fatalf("DecodeJSON() = %v, want nil", herr)
				}
				return
			}
			if herr == nil {
				t.Fatal("DecodeJSON() = nil, want error")
			}
			if herr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", herr.Code, tt.wantCode)
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Title string   `json:"title" validate:"required,max=5"`
		Tags  []string `json:"tags" validate:"omitempty,max=2,dive,min=1"`
	}

	tests := []struct {
		name    string
		input   payload
		wantErr bool
	}{
		{"valid", payload{Title: "ok", Tags: []string{"a"}}, false},
		{"missing title", payload{}, true},
		{"title too long", payload{Title: "toolongtitle"}, true},
		{"too many tags", payload{Title: "ok", Tags: []string{"a", "b", "c"}}, true},
		{"empty tag", payload{Title: "ok", Tags: []string{""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			herr := handlers.ValidateStruct(&tt.input)
			if (herr != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() = %v, wantErr %v", herr, tt.wantErr)
			}
			if herr != nil && herr.Code != handlers.CodeInvalidInput {
				t.Errorf("code = %q, want %q", herr.Code, handlers.CodeInvalidInput)
			}
		})
	}
}
