package testruns

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/pkg/handlers"
	"github.com/promptrefine/promptrefine/pkg/routes"
)

// Handler provides HTTP endpoints for test-run operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "testruns"),
	}
}

// Routes returns the route group definition for test-run endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/test-runs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Execute},
		},
	}
}

// ExecuteRequest carries the test invocation payload.
type ExecuteRequest struct {
	PromptID        uuid.UUID      `json:"promptId" validate:"required"`
	PromptVersionID *uuid.UUID     `json:"promptVersionId"`
	Model           string         `json:"model" validate:"required,max=120"`
	Params          Params         `json:"params"`
	InputVariables  map[string]any `json:"inputVariables"`
}

// List returns a prompt's test runs newest-first. The promptId query
// parameter is required.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	promptID, err := uuid.Parse(r.URL.Query().Get("promptId"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.InvalidInput("A valid promptId query parameter is required"))
		return
	}

	runs, err := h.sys.ListForPrompt(r.Context(), promptID)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, runs)
}

// Execute dispatches a test invocation. A failed external call still
// responds with the upstream error code; the run row is persisted as
// failed either way.
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if herr := handlers.DecodeJSON(r, &req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}
	req.Model = strings.TrimSpace(req.Model)
	if herr := handlers.ValidateStruct(&req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}

	run, err := h.sys.Execute(r.Context(), ExecuteCommand{
		PromptID:       req.PromptID,
		VersionID:      req.PromptVersionID,
		Model:          req.Model,
		Params:         req.Params,
		InputVariables: req.InputVariables,
	})
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, run)
}
