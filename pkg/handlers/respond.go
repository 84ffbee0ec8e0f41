// Package handlers provides the uniform request/response contract for HTTP
// endpoints: a {data, error} envelope where exactly one field is non-null,
// stable error codes, and the JSON decode and schema validation boundary.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/promptrefine/promptrefine/pkg/middleware"
)

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Data  any            `json:"data"`
	Error *envelopeError `json:"error"`
}

// RespondJSON writes a success envelope {data: v, error: null}.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	writeEnvelope(w, status, envelope{Data: v})
}

// RespondError writes an error envelope {data: null, error: {code, message}}.
// Errors that are not *Error are logged with full detail server-side and
// surfaced as a generic INTERNAL_ERROR.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		logger.Error(
			"unhandled error",
			"error", err,
			"method", r.Method,
			"uri", r.URL.RequestURI(),
			"correlation_id", middleware.CorrelationID(r.Context()),
		)
		apiErr = InternalError("Internal server error")
	}

	writeEnvelope(w, apiErr.Status, envelope{
		Error: &envelopeError{Code: apiErr.Code, Message: apiErr.Message},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
