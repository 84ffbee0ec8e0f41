package testruns

import (
	"errors"

	"github.com/promptrefine/promptrefine/internal/versions"
	"github.com/promptrefine/promptrefine/pkg/handlers"
)

// Domain errors for test-run operations.
var (
	ErrNoVersion = errors.New("prompt has no version to run")
	ErrUpstream  = errors.New("completion service failed")
)

// MapAPIError translates test-run domain errors to API errors. Returns the
// input unchanged when no mapping applies.
func MapAPIError(err error) error {
	switch {
	case errors.Is(err, ErrNoVersion):
		return handlers.InvalidInput("Prompt has no version to run")
	case errors.Is(err, ErrUpstream):
		return handlers.UpstreamError("Completion request failed")
	default:
		return versions.MapAPIError(err)
	}
}
