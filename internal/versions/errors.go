package versions

import (
	"errors"

	"github.com/promptrefine/promptrefine/internal/prompts"
	"github.com/promptrefine/promptrefine/pkg/handlers"
)

// Domain errors for version operations.
var (
	ErrNotFound = errors.New("version not found")
	ErrConflict = errors.New("version number conflict")
)

// MapAPIError translates version domain errors to API errors. Returns the
// input unchanged when no mapping applies.
func MapAPIError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return handlers.NotFound("Version not found")
	case errors.Is(err, ErrConflict):
		return handlers.Conflict("Could not assign a version number, please retry")
	default:
		return prompts.MapAPIError(err)
	}
}
