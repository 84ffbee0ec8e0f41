package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/pkg/query"
	"github.com/promptrefine/promptrefine/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a prompt repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "prompts"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Prompt, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	q, args := qb.Build()
	result, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &p, nil
}

func (r *repo) FindWithCurrent(ctx context.Context, id uuid.UUID) (*Detail, error) {
	q := `
		SELECT p.id, p.title, p.type, p.tags, p.current_version_id,
		       p.created_at, p.updated_at,
		       v.id, v.version_number, v.content, v.notes, v.created_at
		FROM public.prompts p
		LEFT JOIN public.prompt_versions v ON v.id = p.current_version_id
		WHERE p.id = $1`

	detail, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanDetail)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &detail, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Prompt, error) {
	tags, err := tagsValue(cmd.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO prompts(title, type, tags)
		VALUES ($1, $2, $3)
		RETURNING %s`, promptColumns)

	p, err := repository.QueryOne(ctx, r.db, q, []any{cmd.Title, cmd.Type, tags}, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("insert prompt: %w", err)
	}

	r.logger.Info("prompt created", "id", p.ID, "title", p.Title, "type", p.Type)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	sets := []string{"updated_at = now()"}
	args := make([]any, 0, 3)

	if cmd.Title != nil {
		args = append(args, *cmd.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if cmd.Tags != nil {
		tags, err := tagsValue(*cmd.Tags)
		if err != nil {
			return nil, fmt.Errorf("encode tags: %w", err)
		}
		args = append(args, tags)
		sets = append(sets, fmt.Sprintf("tags = $%d", len(args)))
	}

	args = append(args, id)
	q := fmt.Sprintf(`
		UPDATE prompts
		SET %s
		WHERE id = $%d
		RETURNING %s`, strings.Join(sets, ", "), len(args), promptColumns)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("prompt updated", "id", p.ID)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM prompts WHERE id = $1",
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}

func (r *repo) SetCurrentVersion(ctx context.Context, id, versionID uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE prompts SET current_version_id = $1, updated_at = now() WHERE id = $2",
		versionID, id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return nil
}

