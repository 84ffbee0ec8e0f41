package prompts

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/pkg/handlers"
	"github.com/promptrefine/promptrefine/pkg/routes"
)

// Handler provides HTTP endpoints for prompt operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "prompts"),
	}
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/prompts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// CreateRequest carries the prompt creation payload.
type CreateRequest struct {
	Title string   `json:"title" validate:"required,max=200"`
	Type  string   `json:"type" validate:"required,max=100"`
	Tags  []string `json:"tags" validate:"omitempty,max=25,dive,min=1,max=64"`
}

// UpdateRequest carries a partial metadata update; at least one field is
// required.
type UpdateRequest struct {
	Title *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Tags  *[]string `json:"tags" validate:"omitempty,max=25,dive,min=1,max=64"`
}

// DeleteResponse echoes the id of a deleted prompt.
type DeleteResponse struct {
	ID uuid.UUID `json:"id"`
}

// List returns all prompts ordered by most recently updated, with optional
// type/tag/search query filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, r, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single prompt joined with its current version.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.InvalidInput("Invalid prompt id"))
		return
	}

	detail, err := h.sys.FindWithCurrent(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, detail)
}

// Create adds a new prompt with no versions and a null current-version
// pointer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if herr := handlers.DecodeJSON(r, &req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}
	if herr := handlers.ValidateStruct(&req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}

	prompt, err := h.sys.Create(r.Context(), CreateCommand{
		Title: req.Title,
		Type:  req.Type,
		Tags:  req.Tags,
	})
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, prompt)
}

// Update applies a partial title/tags update.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.InvalidInput("Invalid prompt id"))
		return
	}

	var req UpdateRequest
	if herr := handlers.DecodeJSON(r, &req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}
	if herr := handlers.ValidateStruct(&req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}
	if req.Title == nil && req.Tags == nil {
		handlers.RespondError(w, r, h.logger, handlers.InvalidInput("At least one of title or tags is required"))
		return
	}

	prompt, err := h.sys.Update(r.Context(), id, UpdateCommand{
		Title: req.Title,
		Tags:  req.Tags,
	})
	if err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prompt)
}

// Delete removes a prompt; versions and test runs cascade with it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.InvalidInput("Invalid prompt id"))
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, r, h.logger, MapAPIError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DeleteResponse{ID: id})
}
