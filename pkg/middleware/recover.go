package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Recover returns middleware that converts panics into a generic 500
// envelope, logging full detail server-side only.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				logger.Error(
					"panic recovered",
					"panic", rec,
					"method", r.Method,
					"uri", r.URL.RequestURI(),
					"correlation_id", CorrelationID(r.Context()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]any{
					"data": nil,
					"error": map[string]string{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
