package versions

import (
	"database/sql"

	"github.com/promptrefine/promptrefine/pkg/query"
	"github.com/promptrefine/promptrefine/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompt_versions", "v").
	Project("id", "ID").
	Project("prompt_id", "PromptID").
	Project("version_number", "VersionNumber").
	Project("content", "Content").
	Project("notes", "Notes").
	Project("created_at", "CreatedAt")

var newestFirst = query.SortField{
	Field:      "VersionNumber",
	Descending: true,
}

var oldestFirst = query.SortField{
	Field: "VersionNumber",
}

// versionColumns is the unqualified column list for INSERT RETURNING.
const versionColumns = "id, prompt_id, version_number, content, notes, created_at"

func scanVersion(s repository.Scanner) (Version, error) {
	var (
		v     Version
		notes sql.NullString
	)

	err := s.Scan(
		&v.ID,
		&v.PromptID,
		&v.VersionNumber,
		&v.Content,
		&notes,
		&v.CreatedAt,
	)
	if err != nil {
		return v, err
	}

	if notes.Valid {
		n := notes.String
		v.Notes = &n
	}

	return v, nil
}
