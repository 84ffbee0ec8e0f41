package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/promptrefine/promptrefine/pkg/handlers"
)

// RequireSession returns middleware that rejects requests without a valid
// session token. The token is read from the session cookie, falling back to
// an Authorization bearer header for non-browser clients. Valid sessions are
// stored in the request context.
func RequireSession(sys System, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, sys.CookieName())
			if token == "" {
				handlers.RespondError(w, r, logger, handlers.Unauthorized("Authentication required"))
				return
			}

			session, err := sys.Verify(token)
			if err != nil {
				handlers.RespondError(w, r, logger, handlers.Unauthorized("Invalid or expired session"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func extractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}
