// Package completions wraps the upstream OpenAI Responses API behind a
// narrow client interface so test-run execution can be exercised without
// network access.
package completions

import (
	"context"
	"encoding/json"
)

// Request describes a single completion invocation. Temperature and
// MaxOutputTokens are optional; nil leaves the upstream default in place.
type Request struct {
	Model           string
	Input           string
	Temperature     *float64
	MaxOutputTokens *int
	CorrelationID   string
}

// Result carries the completion output text and the raw usage payload as
// reported by the upstream API.
type Result struct {
	Text  string
	Usage json.RawMessage
}

// Client executes completion requests against an upstream model API.
type Client interface {
	Complete(ctx context.Context, req Request) (*Result, error)
}
