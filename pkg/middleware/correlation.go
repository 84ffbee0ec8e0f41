package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// CorrelationHeader is the request/response header carrying the correlation id.
const CorrelationHeader = "X-Correlation-Id"

const maxCorrelationIDLength = 128

type correlationKey struct{}

// CorrelationID returns the correlation id stored in ctx, or "" when the
// correlation middleware did not run.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// WithCorrelationID returns a context carrying the given correlation id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// NormalizeCorrelationID validates an inbound correlation id. It returns the
// trimmed value when it is a constrained token (ASCII letters, digits,
// '.', ':', '-', '_', at most 128 chars), or "" otherwise.
func NormalizeCorrelationID(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || len(trimmed) > maxCorrelationIDLength {
		return ""
	}

	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == ':' || c == '-' || c == '_':
		default:
			return ""
		}
	}

	return trimmed
}

// Correlation returns middleware that accepts a well-formed inbound
// correlation id or generates a fresh one, stores it in the request
// context, and echoes it on the response.
func Correlation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := NormalizeCorrelationID(r.Header.Get(CorrelationHeader))
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(CorrelationHeader, id)
			next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), id)))
		})
	}
}
