package logging

import (
	"context"
	"log/slog"
	"regexp"
)

// Redacted replaces any value whose key looks credential-bearing.
const Redacted = "[REDACTED]"

var sensitiveKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)pass(word)?`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)session`),
	regexp.MustCompile(`(?i)credential`),
}

// IsSensitiveKey reports whether a log attribute key matches one of the
// credential-bearing name patterns.
func IsSensitiveKey(key string) bool {
	for _, pattern := range sensitiveKeyPatterns {
		if pattern.MatchString(key) {
			return true
		}
	}
	return false
}

// RedactValue deep-traverses maps and slices, replacing any entry whose key
// matches a sensitive pattern. Scalar values pass through unchanged.
func RedactValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			if IsSensitiveKey(key) {
				out[key] = Redacted
				continue
			}
			out[key] = RedactValue(nested)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for key, nested := range v {
			if IsSensitiveKey(key) {
				out[key] = Redacted
				continue
			}
			out[key] = nested
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = RedactValue(item)
		}
		return out
	default:
		return value
	}
}

// RedactingHandler wraps a slog.Handler, redacting sensitive attributes
// before they reach the underlying handler. Applies to every structured
// log context so credentials never land in observability output.
type RedactingHandler struct {
	inner slog.Handler
}

// NewRedactingHandler wraps inner with sensitive-field redaction.
func NewRedactingHandler(inner slog.Handler) *RedactingHandler {
	return &RedactingHandler{inner: inner}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(redacted)}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, Redacted)
	}

	value := a.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		members := value.Group()
		redacted := make([]any, 0, len(members))
		for _, member := range members {
			redacted = append(redacted, redactAttr(member))
		}
		return slog.Group(a.Key, redacted...)
	}

	return slog.Attr{Key: a.Key, Value: slog.AnyValue(RedactValue(value.Any()))}
}
