package versions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/internal/prompts"
	"github.com/promptrefine/promptrefine/pkg/query"
	"github.com/promptrefine/promptrefine/pkg/repository"
)

// createNextAttempts bounds transaction retries when a concurrent writer
// wins the version-number race despite the row lock.
const createNextAttempts = 3

type repo struct {
	db      *sql.DB
	prompts prompts.System
	logger  *slog.Logger
}

// New creates a version repository implementing the System interface.
func New(db *sql.DB, promptSys prompts.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		prompts: promptSys,
		logger:  logger.With("system", "versions"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListForPrompt(ctx context.Context, promptID uuid.UUID) ([]Version, error) {
	return r.list(ctx, promptID, newestFirst)
}

func (r *repo) ListForPromptAscending(ctx context.Context, promptID uuid.UUID) ([]Version, error) {
	return r.list(ctx, promptID, oldestFirst)
}

func (r *repo) list(ctx context.Context, promptID uuid.UUID, sort query.SortField) ([]Version, error) {
	q, args := query.
		NewBuilder(projection, sort).
		WhereEquals("PromptID", promptID).
		Build()

	result, err := repository.QueryMany(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}

	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Version, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &v, nil
}

func (r *repo) FindForPrompt(ctx context.Context, promptID, versionID uuid.UUID) (*Version, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", versionID).
		WhereEquals("PromptID", promptID).
		BuildSingleOrNull()

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &v, nil
}

// CreateNext locks the prompt row, derives the next version number from the
// current maximum, inserts the version, and repoints the prompt's
// current-version pointer in the same transaction. A unique violation on
// (prompt_id, version_number) retries the whole transaction before
// reporting conflict.
func (r *repo) CreateNext(ctx context.Context, promptID uuid.UUID, content string, notes *string) (*Version, error) {
	for attempt := 1; attempt <= createNextAttempts; attempt++ {
		v, err := r.createNext(ctx, promptID, content, notes)
		if err == nil {
			r.logger.Info(
				"version created",
				"prompt_id", promptID,
				"version_id", v.ID,
				"version_number", v.VersionNumber,
			)
			return &v, nil
		}

		if errors.Is(err, sql.ErrNoRows) {
			return nil, prompts.ErrNotFound
		}
		if !repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("create version: %w", err)
		}

		r.logger.Warn(
			"version number collision",
			"prompt_id", promptID,
			"attempt", attempt,
		)
	}

	return nil, ErrConflict
}

func (r *repo) createNext(ctx context.Context, promptID uuid.UUID, content string, notes *string) (Version, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Version, error) {
		var locked uuid.UUID
		err := tx.QueryRowContext(
			ctx,
			"SELECT id FROM prompts WHERE id = $1 FOR UPDATE",
			promptID,
		).Scan(&locked)
		if err != nil {
			return Version{}, err
		}

		var max int
		err = tx.QueryRowContext(
			ctx,
			"SELECT COALESCE(MAX(version_number), 0) FROM prompt_versions WHERE prompt_id = $1",
			promptID,
		).Scan(&max)
		if err != nil {
			return Version{}, err
		}

		q := fmt.Sprintf(`
			INSERT INTO prompt_versions(prompt_id, version_number, content, notes)
			VALUES ($1, $2, $3, $4)
			RETURNING %s`, versionColumns)

		v, err := repository.QueryOne(ctx, tx, q, []any{promptID, max + 1, content, notes}, scanVersion)
		if err != nil {
			return Version{}, err
		}

		_, err = tx.ExecContext(
			ctx,
			"UPDATE prompts SET current_version_id = $1, updated_at = now() WHERE id = $2",
			v.ID, promptID,
		)
		if err != nil {
			return Version{}, err
		}

		return v, nil
	})
}

// Restore verifies the version belongs to the prompt, then repoints the
// prompt's current-version pointer. No new version is created.
func (r *repo) Restore(ctx context.Context, promptID, versionID uuid.UUID) (*RestoreResult, error) {
	v, err := r.FindForPrompt(ctx, promptID, versionID)
	if err != nil {
		return nil, err
	}

	// Ownership is established above; the foreign key on current_version_id
	// rejects the repoint if the version disappears underneath us.
	if err := r.prompts.SetCurrentVersion(ctx, promptID, v.ID); err != nil {
		return nil, err
	}

	p, err := r.prompts.Find(ctx, promptID)
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"version restored",
		"prompt_id", promptID,
		"version_id", v.ID,
		"version_number", v.VersionNumber,
	)

	return &RestoreResult{Prompt: p, Version: v}, nil
}
