// Package prompts owns prompt records: title, type, tags, and the pointer
// to the current version.
package prompts

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prompt is a versioned prompt's metadata record. CurrentVersionID is nil
// until the first version is created.
type Prompt struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Type             string     `json:"type"`
	Tags             []string   `json:"tags"`
	CurrentVersionID *uuid.UUID `json:"currentVersionId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CurrentVersion is the current-version view embedded in Detail.
type CurrentVersion struct {
	ID            uuid.UUID `json:"id"`
	VersionNumber int       `json:"versionNumber"`
	Content       string    `json:"content"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Detail is a prompt joined with its current version, or nil when the
// pointer is unset.
type Detail struct {
	Prompt
	CurrentVersion *CurrentVersion `json:"currentVersion"`
}

// CreateCommand carries the fields for prompt creation.
type CreateCommand struct {
	Title string
	Type  string
	Tags  []string
}

// UpdateCommand carries a partial metadata update. Nil fields are left
// unchanged; at least one must be set.
type UpdateCommand struct {
	Title *string
	Tags  *[]string
}

// NormalizeTags trims whitespace, drops empty entries, and deduplicates
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	return out
}
