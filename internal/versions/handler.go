package versions

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/pkg/handlers"
	"github.com/promptrefine/promptrefine/pkg/routes"
)

// Handler provides HTTP endpoints for version operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "versions"),
	}
}

// Routes returns the route group definition for version endpoints. Versions
// are addressed through their owning prompt.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/prompts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/versions", Handler: h.List},
			{Method: "POST", Pattern: "/{id}/versions", Handler: h.Create},
			{Method: "POST", Pattern: "/{id}/restore", Handler: h.Restore},
		},
	}
}

// CreateRequest carries the content for a new version.
type CreateRequest struct {
	Content string  `json:"content" validate:"required"`
	Notes   *string `json:"notes" validate:"omitempty,max=2000"`
}

// RestoreRequest names the version to repoint the prompt at.
type RestoreRequest struct {
	VersionID uuid.UUID `json:"versionId" validate:"required"`
}

// List returns a prompt's versions newest-first, or oldest-first when
// order=asc is requested.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.InvalidInput("Invalid prompt id"))
		return
	}

	list := h.sys.ListForPrompt
	if r.URL.Query().Get("order") == "asc" {
		list = h.sys.ListForPromptAscending
	}

	result, err := list(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create appends the next sequential version and repoints the prompt's
// current-version pointer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.InvalidInput("Invalid prompt id"))
		return
	}

	var req CreateRequest
	if herr := handlers.DecodeJSON(r, &req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}
	if herr := handlers.ValidateStruct(&req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}

	version, err := h.sys.CreateNext(r.Context(), id, req.Content, req.Notes)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, version)
}

// Restore repoints the prompt at an existing version without creating a
// new one.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.InvalidInput("Invalid prompt id"))
		return
	}

	var req RestoreRequest
	if herr := handlers.DecodeJSON(r, &req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}
	if herr := handlers.ValidateStruct(&req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}

	result, err := h.sys.Restore(r.Context(), id, req.VersionID)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
