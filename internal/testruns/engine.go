package testruns

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/internal/completions"
	"github.com/promptrefine/promptrefine/internal/prompts"
	"github.com/promptrefine/promptrefine/internal/versions"
	"github.com/promptrefine/promptrefine/pkg/middleware"
)

type engine struct {
	store    store
	prompts  prompts.System
	versions versions.System
	client   completions.Client
	logger   *slog.Logger
}

// New creates the test-run engine implementing the System interface.
func New(
	db *sql.DB,
	promptSys prompts.System,
	versionSys versions.System,
	client completions.Client,
	logger *slog.Logger,
) System {
	return &engine{
		store:    &sqlStore{db: db},
		prompts:  promptSys,
		versions: versionSys,
		client:   client,
		logger:   logger.With("system", "testruns"),
	}
}

func (e *engine) Handler() *Handler {
	return NewHandler(e, e.logger)
}

func (e *engine) ListForPrompt(ctx context.Context, promptID uuid.UUID) ([]TestRun, error) {
	return e.store.listForPrompt(ctx, promptID)
}

// Execute runs the test invocation lifecycle: resolve the target version,
// render its content, insert the run as running BEFORE dispatch so every
// external call has a durable record, then settle the row to succeeded or
// failed. External calls are never retried.
func (e *engine) Execute(ctx context.Context, cmd ExecuteCommand) (*TestRun, error) {
	version, err := e.resolveVersion(ctx, cmd)
	if err != nil {
		return nil, err
	}

	rendered := Render(version.Content, cmd.InputVariables)

	run, err := e.store.insertRunning(ctx, cmd, version.ID)
	if err != nil {
		return nil, err
	}

	result, err := e.client.Complete(ctx, completions.Request{
		Model:           cmd.Model,
		Input:           rendered,
		Temperature:     cmd.Params.Temperature,
		MaxOutputTokens: cmd.Params.MaxOutputTokens,
		CorrelationID:   middleware.CorrelationID(ctx),
	})
	if err != nil {
		e.logger.Error(
			"completion call failed",
			"run_id", run.ID,
			"prompt_id", cmd.PromptID,
			"model", cmd.Model,
			"error", err,
			"correlation_id", middleware.CorrelationID(ctx),
		)

		// Persist the failure even if the request context is gone; the
		// failed row is an intentional side effect of the error path.
		if _, markErr := e.store.markFailed(context.WithoutCancel(ctx), run.ID, err.Error()); markErr != nil {
			e.logger.Error("failed to persist run failure", "run_id", run.ID, "error", markErr)
		}

		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	completed, err := e.store.markSucceeded(ctx, run.ID, result.Text, result.Usage)
	if err != nil {
		return nil, err
	}

	e.logger.Info(
		"test run completed",
		"run_id", completed.ID,
		"prompt_id", cmd.PromptID,
		"version_number", version.VersionNumber,
		"model", cmd.Model,
	)

	return completed, nil
}

// resolveVersion picks the explicit version (which must belong to the
// prompt) or falls back to the prompt's current-version pointer.
func (e *engine) resolveVersion(ctx context.Context, cmd ExecuteCommand) (*versions.Version, error) {
	if cmd.VersionID != nil {
		return e.versions.FindForPrompt(ctx, cmd.PromptID, *cmd.VersionID)
	}

	prompt, err := e.prompts.Find(ctx, cmd.PromptID)
	if err != nil {
		return nil, err
	}
	if prompt.CurrentVersionID == nil {
		return nil, ErrNoVersion
	}

	return e.versions.Find(ctx, *prompt.CurrentVersionID)
}
