package prompts

import (
	"database/sql"
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/pkg/query"
	"github.com/promptrefine/promptrefine/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("type", "Type").
	Project("tags", "Tags").
	Project("current_version_id", "CurrentVersionID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

// promptColumns is the unqualified column list for INSERT/UPDATE RETURNING.
const promptColumns = "id, title, type, tags, current_version_id, created_at, updated_at"

// Filters contains optional filtering criteria for prompt queries.
// Nil fields are ignored. Type uses exact matching, Tag jsonb containment,
// and Search case-insensitive title contains matching.
type Filters struct {
	Type   *string `json:"type,omitempty"`
	Tag    *string `json:"tag,omitempty"`
	Search *string `json:"search,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("Type", f.Type).
		WhereContains("Title", f.Search)

	if f.Tag != nil && *f.Tag != "" {
		if raw, err := json.Marshal([]string{*f.Tag}); err == nil {
			b.WhereJSONContains("Tags", raw)
		}
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("type"); t != "" {
		f.Type = &t
	}
	if t := values.Get("tag"); t != "" {
		f.Tag = &t
	}
	if s := values.Get("search"); s != "" {
		f.Search = &s
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var (
		p       Prompt
		rawTags []byte
		current uuid.NullUUID
	)

	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Type,
		&rawTags,
		&current,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	if err := json.Unmarshal(rawTags, &p.Tags); err != nil {
		return p, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if current.Valid {
		id := current.UUID
		p.CurrentVersionID = &id
	}

	return p, nil
}

func tagsValue(tags []string) (string, error) {
	raw, err := json.Marshal(NormalizeTags(tags))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func scanDetail(s repository.Scanner) (Detail, error) {
	var (
		d         Detail
		rawTags   []byte
		current   uuid.NullUUID
		vID       uuid.NullUUID
		vNumber   sql.NullInt32
		vContent  sql.NullString
		vNotes    sql.NullString
		vCreated  sql.NullTime
	)

	err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Type,
		&rawTags,
		&current,
		&d.CreatedAt,
		&d.UpdatedAt,
		&vID,
		&vNumber,
		&vContent,
		&vNotes,
		&vCreated,
	)
	if err != nil {
		return d, err
	}

	if err := json.Unmarshal(rawTags, &d.Tags); err != nil {
		return d, err
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if current.Valid {
		id := current.UUID
		d.CurrentVersionID = &id
	}

	if vID.Valid {
		cv := &CurrentVersion{
			ID:            vID.UUID,
			VersionNumber: int(vNumber.Int32),
			Content:       vContent.String,
			CreatedAt:     vCreated.Time,
		}
		if vNotes.Valid {
			notes := vNotes.String
			cv.Notes = &notes
		}
		d.CurrentVersion = cv
	}

	return d, nil
}
