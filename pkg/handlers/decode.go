package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON reads the request body into dst, distinguishing unparseable
// bodies (INVALID_JSON) from bodies that parse but do not fit the target
// shape (INVALID_INPUT).
func DecodeJSON(r *http.Request, dst any) *Error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return InvalidJSON("Request body must be valid JSON")
	}

	return InvalidInput("Invalid request payload")
}

// ValidateStruct checks dst against its `validate` struct tags, reporting
// any violation as INVALID_INPUT.
func ValidateStruct(dst any) *Error {
	if err := validate.Struct(dst); err != nil {
		return InvalidInput("Invalid request payload")
	}
	return nil
}
