package prompts

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, filters Filters) ([]Prompt, error)
	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	FindWithCurrent(ctx context.Context, id uuid.UUID) (*Detail, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetCurrentVersion repoints the current-version pointer and refreshes
	// updated_at. Callers are responsible for verifying that versionID
	// belongs to the prompt.
	SetCurrentVersion(ctx context.Context, id, versionID uuid.UUID) error
}
