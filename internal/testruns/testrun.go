// Package testruns orchestrates test invocations of prompt versions against
// the external completion service and records their lifecycle.
package testruns

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status is a test run's lifecycle state. Runs are inserted as running and
// transition exactly once to succeeded or failed. Queued is reserved for
// future asynchronous dispatch and is never produced.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Params holds the recognized completion parameters. Absent values mean
// the completion service chooses its defaults.
type Params struct {
	Temperature     *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty" validate:"omitempty,gt=0,lte=8192"`
}

// TestRun records a single invocation of a prompt version. Output and Usage
// are set only on success; Error only on failure.
type TestRun struct {
	ID              uuid.UUID       `json:"id"`
	PromptID        uuid.UUID       `json:"promptId"`
	PromptVersionID uuid.UUID       `json:"promptVersionId"`
	Status          Status          `json:"status"`
	Model           string          `json:"model"`
	Params          Params          `json:"params"`
	InputVariables  map[string]any  `json:"inputVariables"`
	Output          *string         `json:"output"`
	Usage           json.RawMessage `json:"usage"`
	Error           *string         `json:"error"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ExecuteCommand carries the inputs for a test invocation. VersionID nil
// targets the prompt's current version.
type ExecuteCommand struct {
	PromptID       uuid.UUID
	VersionID      *uuid.UUID
	Model          string
	Params         Params
	InputVariables map[string]any
}
