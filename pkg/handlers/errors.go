package handlers

import "net/http"

// Stable error codes carried in the response envelope. Clients branch on
// these, so they never change even if messages do.
const (
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidJSON   = "INVALID_JSON"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeUpstreamError = "OPENAI_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// Error is an API-facing error with a stable code and HTTP status.
// Anything that is not an *Error is treated as internal and never exposed
// verbatim to the caller.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// InvalidInput builds a 400 schema-validation error.
func InvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message, Status: http.StatusBadRequest}
}

// InvalidJSON builds a 400 error for unparseable request bodies.
func InvalidJSON(message string) *Error {
	return &Error{Code: CodeInvalidJSON, Message: message, Status: http.StatusBadRequest}
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

// Conflict builds a 409 error.
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

// UpstreamError builds a 502 error for completion-service failures.
func UpstreamError(message string) *Error {
	return &Error{Code: CodeUpstreamError, Message: message, Status: http.StatusBadGateway}
}

// InternalError builds a 500 error with a generic message.
func InternalError(message string) *Error {
	return &Error{Code: CodeInternalError, Message: message, Status: http.StatusInternalServerError}
}
