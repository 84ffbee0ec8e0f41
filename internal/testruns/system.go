package testruns

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for test-run operations.
type System interface {
	Handler() *Handler

	// Execute resolves the target version, renders its content with the
	// input variables, records the run, and invokes the completion
	// service. A failed external call persists the run as failed AND
	// reports an upstream error.
	Execute(ctx context.Context, cmd ExecuteCommand) (*TestRun, error)

	// ListForPrompt returns a prompt's runs newest-first.
	ListForPrompt(ctx context.Context, promptID uuid.UUID) ([]TestRun, error)
}
