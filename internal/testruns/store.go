package testruns

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/pkg/query"
	"github.com/promptrefine/promptrefine/pkg/repository"
)

// store persists test-run rows. It is unexported so the engine can be
// exercised against a fake in tests.
type store interface {
	insertRunning(ctx context.Context, cmd ExecuteCommand, versionID uuid.UUID) (*TestRun, error)
	markSucceeded(ctx context.Context, id uuid.UUID, output string, usage json.RawMessage) (*TestRun, error)
	markFailed(ctx context.Context, id uuid.UUID, message string) (*TestRun, error)
	listForPrompt(ctx context.Context, promptID uuid.UUID) ([]TestRun, error)
}

type sqlStore struct {
	db *sql.DB
}

func (s *sqlStore) insertRunning(ctx context.Context, cmd ExecuteCommand, versionID uuid.UUID) (*TestRun, error) {
	params, err := json.Marshal(cmd.Params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	input := cmd.InputVariables
	if input == nil {
		input = map[string]any{}
	}
	inputRaw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode input variables: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO test_runs(prompt_id, prompt_version_id, status, model, params, input_variables)
		VALUES ($1, $2, 'running', $3, $4, $5)
		RETURNING %s`, runColumns)

	args := []any{cmd.PromptID, versionID, cmd.Model, string(params), string(inputRaw)}

	run, err := repository.QueryOne(ctx, s.db, q, args, scanRun)
	if err != nil {
		return nil, fmt.Errorf("insert test run: %w", err)
	}
	return &run, nil
}

func (s *sqlStore) markSucceeded(ctx context.Context, id uuid.UUID, output string, usage json.RawMessage) (*TestRun, error) {
	q := fmt.Sprintf(`
		UPDATE test_runs
		SET status = 'succeeded', output = $2, usage = $3, error = NULL, updated_at = now()
		WHERE id = $1
		RETURNING %s`, runColumns)

	var usageArg any
	if usage != nil {
		usageArg = string(usage)
	}

	run, err := repository.QueryOne(ctx, s.db, q, []any{id, output, usageArg}, scanRun)
	if err != nil {
		return nil, fmt.Errorf("mark test run succeeded: %w", err)
	}
	return &run, nil
}

func (s *sqlStore) markFailed(ctx context.Context, id uuid.UUID, message string) (*TestRun, error) {
	q := fmt.Sprintf(`
		UPDATE test_runs
		SET status = 'failed', error = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, runColumns)

	run, err := repository.QueryOne(ctx, s.db, q, []any{id, message}, scanRun)
	if err != nil {
		return nil, fmt.Errorf("mark test run failed: %w", err)
	}
	return &run, nil
}

func (s *sqlStore) listForPrompt(ctx context.Context, promptID uuid.UUID) ([]TestRun, error) {
	q, args := query.
		NewBuilder(projection, newestFirst).
		WhereEquals("PromptID", promptID).
		Build()

	runs, err := repository.QueryMany(ctx, s.db, q, args, scanRun)
	if err != nil {
		return nil, fmt.Errorf("query test runs: %w", err)
	}
	return runs, nil
}
