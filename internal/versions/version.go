// Package versions owns immutable prompt versions and enforces gap-free
// sequential numbering per prompt under concurrent writers.
package versions

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/internal/prompts"
)

// Version is an immutable snapshot of a prompt's content. Versions are
// never updated or deleted individually; they go away only when their
// prompt is deleted.
type Version struct {
	ID            uuid.UUID `json:"id"`
	PromptID      uuid.UUID `json:"promptId"`
	VersionNumber int       `json:"versionNumber"`
	Content       string    `json:"content"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RestoreResult is the outcome of repointing a prompt at an older version.
type RestoreResult struct {
	Prompt  *prompts.Prompt `json:"prompt"`
	Version *Version        `json:"version"`
}
