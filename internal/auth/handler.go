package auth

import (
	"log/slog"
	"net/http"

	"github.com/promptrefine/promptrefine/internal/config"
	"github.com/promptrefine/promptrefine/pkg/handlers"
	"github.com/promptrefine/promptrefine/pkg/routes"
)

// Handler provides HTTP endpoints for login, logout, and session inspection.
type Handler struct {
	sys    System
	cfg    *config.AuthConfig
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system, config, and logger.
func NewHandler(sys System, cfg *config.AuthConfig, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		cfg:    cfg,
		logger: logger.With("handler", "auth"),
	}
}

// Routes returns the route group definition for auth endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/login", Handler: h.Login},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout},
			{Method: "GET", Pattern: "/session", Handler: h.Session},
		},
	}
}

// LoginRequest carries the operator credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the signed token alongside the session so
// non-browser clients can authenticate with a bearer header; browser
// clients can ignore it and rely on the cookie.
type LoginResponse struct {
	Token   string   `json:"token"`
	Session *Session `json:"session"`
}

// Login verifies credentials and establishes a session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if herr := handlers.DecodeJSON(r, &req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}
	if herr := handlers.ValidateStruct(&req); herr != nil {
		handlers.RespondError(w, r, h.logger, herr)
		return
	}

	token, session, err := h.sys.Login(req.Email, req.Password)
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.Unauthorized("Invalid credentials"))
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.sys.SessionTTL().Seconds())))
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{Token: token, Session: session})
}

// Logout clears the session cookie. Tokens are stateless so logout is purely
// a cookie removal.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	handlers.RespondJSON(w, http.StatusOK, struct {
		LoggedOut bool `json:"loggedOut"`
	}{LoggedOut: true})
}

// Session returns the caller's current session, or 401 when none is active.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r, h.cfg.CookieName)
	if token == "" {
		handlers.RespondError(w, r, h.logger, handlers.Unauthorized("Authentication required"))
		return
	}

	session, err := h.sys.Verify(token)
	if err != nil {
		handlers.RespondError(w, r, h.logger, handlers.Unauthorized("Invalid or expired session"))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
