package prompts

import (
	"errors"

	"github.com/promptrefine/promptrefine/pkg/handlers"
)

// Domain errors for prompt operations.
var (
	ErrNotFound = errors.New("prompt not found")
)

// MapAPIError translates prompt domain errors to API errors. Returns the
// input unchanged when no mapping applies.
func MapAPIError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return handlers.NotFound("Prompt not found")
	}
	return err
}
