package versions

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for version domain operations.
type System interface {
	Handler() *Handler

	// ListForPrompt returns a prompt's versions newest-first.
	ListForPrompt(ctx context.Context, promptID uuid.UUID) ([]Version, error)

	// ListForPromptAscending returns a prompt's versions in creation order,
	// for sequence verification.
	ListForPromptAscending(ctx context.Context, promptID uuid.UUID) ([]Version, error)

	Find(ctx context.Context, id uuid.UUID) (*Version, error)

	// FindForPrompt returns the version only if it belongs to promptID;
	// cross-prompt access reports not-found.
	FindForPrompt(ctx context.Context, promptID, versionID uuid.UUID) (*Version, error)

	// CreateNext assigns the next sequential version number under a
	// prompt-row lock and repoints the prompt's current-version pointer,
	// all in one transaction.
	CreateNext(ctx context.Context, promptID uuid.UUID, content string, notes *string) (*Version, error)

	// Restore repoints the prompt at an existing version without creating
	// a new one.
	Restore(ctx context.Context, promptID, versionID uuid.UUID) (*RestoreResult, error)
}
