package testruns

import (
	"database/sql"
	"encoding/json"

	"github.com/promptrefine/promptrefine/pkg/query"
	"github.com/promptrefine/promptrefine/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "test_runs", "t").
	Project("id", "ID").
	Project("prompt_id", "PromptID").
	Project("prompt_version_id", "PromptVersionID").
	Project("status", "Status").
	Project("model", "Model").
	Project("params", "Params").
	Project("input_variables", "InputVariables").
	Project("output", "Output").
	Project("usage", "Usage").
	Project("error", "Error").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var newestFirst = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// runColumns is the unqualified column list for INSERT/UPDATE RETURNING.
const runColumns = "id, prompt_id, prompt_version_id, status, model, params, " +
	"input_variables, output, usage, error, created_at, updated_at"

func scanRun(s repository.Scanner) (TestRun, error) {
	var (
		t         TestRun
		rawParams []byte
		rawInput  []byte
		output    sql.NullString
		usage     []byte
		errMsg    sql.NullString
	)

	err := s.Scan(
		&t.ID,
		&t.PromptID,
		&t.PromptVersionID,
		&t.Status,
		&t.Model,
		&rawParams,
		&rawInput,
		&output,
		&usage,
		&errMsg,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}

	if err := json.Unmarshal(rawParams, &t.Params); err != nil {
		return t, err
	}
	if err := json.Unmarshal(rawInput, &t.InputVariables); err != nil {
		return t, err
	}
	if t.InputVariables == nil {
		t.InputVariables = map[string]any{}
	}
	if output.Valid {
		o := output.String
		t.Output = &o
	}
	if usage != nil {
		t.Usage = json.RawMessage(usage)
	}
	if errMsg.Valid {
		e := errMsg.String
		t.Error = &e
	}

	return t, nil
}
