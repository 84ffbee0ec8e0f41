package completions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/promptrefine/promptrefine/internal/config"
	"github.com/promptrefine/promptrefine/pkg/middleware"
)

// OpenAIClient implements Client against the OpenAI Responses API.
type OpenAIClient struct {
	client  openai.Client
	timeout time.Duration
}

// NewOpenAIClient builds a client from the openai config section.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		timeout: cfg.RequestTimeoutDuration(),
	}
}

// Complete sends a single-turn request and returns the output text plus the
// upstream usage payload. The correlation id, when set, is forwarded as a
// request header for cross-service tracing.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(req.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Input),
		},
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.MaxOutputTokens != nil {
		params.MaxOutputTokens = openai.Int(int64(*req.MaxOutputTokens))
	}

	var opts []option.RequestOption
	if req.CorrelationID != "" {
		opts = append(opts, option.WithHeader(middleware.CorrelationHeader, req.CorrelationID))
	}

	resp, err := c.client.Responses.New(ctx, params, opts...)
	if err != nil {
		return nil, fmt.Errorf("openai responses: %w", err)
	}

	usage, err := json.Marshal(resp.Usage)
	if err != nil {
		usage = nil
	}

	return &Result{
		Text:  resp.OutputText(),
		Usage: usage,
	}, nil
}
