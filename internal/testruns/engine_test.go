package testruns

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/internal/completions"
	"github.com/promptrefine/promptrefine/internal/prompts"
	"github.com/promptrefine/promptrefine/internal/versions"
)

type fakeStore struct {
	inserted  *TestRun
	succeeded *TestRun
	failedMsg string
}

func (f *fakeStore) insertRunning(ctx context.Context, cmd ExecuteCommand, versionID uuid.UUID) (*TestRun, error) {
	run := &TestRun{
		ID:              uuid.New(),
		PromptID:        cmd.PromptID,
		PromptVersionID: versionID,
		Status:          StatusRunning,
		Model:           cmd.Model,
		Params:          cmd.Params,
		InputVariables:  cmd.InputVariables,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.inserted = run
	return run, nil
}

func (f *fakeStore) markSucceeded(ctx context.Context, id uuid.UUID, output string, usage json.RawMessage) (*TestRun, error) {
	run := *f.inserted
	run.Status = StatusSucceeded
	run.Output = &output
	run.Usage = usage
	f.succeeded = &run
	return &run, nil
}

func (f *fakeStore) markFailed(ctx context.Context, id uuid.UUID, message string) (*TestRun, error) {
	f.failedMsg = message
	run := *f.inserted
	run.Status = StatusFailed
	run.Error = &message
	return &run, nil
}

func (f *fakeStore) listForPrompt(ctx context.Context, promptID uuid.UUID) ([]TestRun, error) {
	return []TestRun{}, nil
}

type fakeClient struct {
	result  *completions.Result
	err     error
	lastReq completions.Request
	calls   int
}

func (f *fakeClient) Complete(ctx context.Context, req completions.Request) (*completions.Result, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakePrompts struct {
	prompts.System
	prompt *prompts.Prompt
	err    error
}

func (f *fakePrompts) Find(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prompt, nil
}

type fakeVersions struct {
	versions.System
	version *versions.Version
	err     error
}

func (f *fakeVersions) Find(ctx context.Context, id uuid.UUID) (*versions.Version, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.version, nil
}

func (f *fakeVersions) FindForPrompt(ctx context.Context, promptID, versionID uuid.UUID) (*versions.Version, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.version, nil
}

func newTestEngine(store *fakeStore, p *fakePrompts, v *fakeVersions, c *fakeClient) *engine {
	return &engine{
		store:    store,
		prompts:  p,
		versions: v,
		client:   c,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestExecuteSuccess(t *testing.T) {
	promptID := uuid.New()
	versionID := uuid.New()

	store := &fakeStore{}
	client := &fakeClient{
		result: &completions.Result{
			Text:  "Hi Ann!",
			Usage: json.RawMessage(`{"total_tokens":7}`),
		},
	}
	p := &fakePrompts{prompt: &prompts.Prompt{ID: promptID, CurrentVersionID: &versionID}}
	v := &fakeVersions{version: &versions.Version{
		ID:       versionID,
		PromptID: promptID,
		Content:  "Say hello to {{name}}",
	}}

	e := newTestEngine(store, p, v, client)

	temp := 0.7
	run, err := e.Execute(context.Background(), ExecuteCommand{
		PromptID:       promptID,
		Model:          "gpt-4o-mini",
		Params:         Params{Temperature: &temp},
		InputVariables: map[string]any{"name": "Ann"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if run.Status != StatusSucceeded {
		t.Errorf("Status = %q, want %q", run.Status, StatusSucceeded)
	}
	if run.Output == nil || *run.Output != "Hi Ann!" {
		t.Errorf("Output = %v, want Hi Ann!", run.Output)
	}
	if string(run.Usage) != `{"total_tokens":7}` {
		t.Errorf("Usage = %s", run.Usage)
	}
	if run.Error != nil {
		t.Errorf("Error = %v, want nil", run.Error)
	}

	if client.lastReq.Input != "Say hello to Ann" {
		t.Errorf("rendered input = %q, want Say hello to Ann", client.lastReq.Input)
	}
	if client.lastReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", client.lastReq.Model)
	}
	if client.lastReq.Temperature == nil || *client.lastReq.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", client.lastReq.Temperature)
	}

	if store.inserted == nil {
		t.Fatal("no running row was inserted")
	}
	if store.inserted.PromptVersionID != versionID {
		t.Errorf("PromptVersionID = %v, want %v", store.inserted.PromptVersionID, versionID)
	}
}

func TestExecuteUpstreamFailure(t *testing.T) {
	promptID := uuid.New()
	versionID := uuid.New()

	store := &fakeStore{}
	client := &fakeClient{err: errors.New("connection refused")}
	p := &fakePrompts{prompt: &prompts.Prompt{ID: promptID, CurrentVersionID: &versionID}}
	v := &fakeVersions{version: &versions.Version{ID: versionID, PromptID: promptID, Content: "text"}}

	e := newTestEngine(store, p, v, client)

	_, err := e.Execute(context.Background(), ExecuteCommand{
		PromptID: promptID,
		Model:    "gpt-4o-mini",
	})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Execute() error = %v, want ErrUpstream", err)
	}

	if store.inserted == nil {
		t.Fatal("no running row was inserted before dispatch")
	}
	if store.failedMsg == "" {
		t.Error("run was not marked failed")
	}
	if store.succeeded != nil {
		t.Error("run was marked succeeded on a failed call")
	}
}

func TestExecuteNoVersionToRun(t *testing.T) {
	promptID := uuid.New()

	store := &fakeStore{}
	client := &fakeClient{}
	p := &fakePrompts{prompt: &prompts.Prompt{ID: promptID}}
	v := &fakeVersions{}

	e := newTestEngine(store, p, v, client)

	_, err := e.Execute(context.Background(), ExecuteCommand{
		PromptID: promptID,
		Model:    "gpt-4o-mini",
	})
	if !errors.Is(err, ErrNoVersion) {
		t.Fatalf("Execute() error = %v, want ErrNoVersion", err)
	}

	if store.inserted != nil {
		t.Error("a row was inserted despite having no version")
	}
	if client.calls != 0 {
		t.Errorf("client calls = %d, want 0", client.calls)
	}
}

func TestExecutePromptNotFound(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{}
	p := &fakePrompts{err: prompts.ErrNotFound}
	v := &fakeVersions{}

	e := newTestEngine(store, p, v, client)

	_, err := e.Execute(context.Background(), ExecuteCommand{
		PromptID: uuid.New(),
		Model:    "gpt-4o-mini",
	})
	if !errors.Is(err, prompts.ErrNotFound) {
		t.Fatalf("Execute() error = %v, want prompts.ErrNotFound", err)
	}
	if client.calls != 0 {
		t.Errorf("client calls = %d, want 0", client.calls)
	}
}

func TestExecuteExplicitVersionCrossPrompt(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{}
	p := &fakePrompts{}
	v := &fakeVersions{err: versions.ErrNotFound}

	e := newTestEngine(store, p, v, client)

	otherVersion := uuid.New()
	_, err := e.Execute(context.Background(), ExecuteCommand{
		PromptID:  uuid.New(),
		VersionID: &otherVersion,
		Model:     "gpt-4o-mini",
	})
	if !errors.Is(err, versions.ErrNotFound) {
		t.Fatalf("Execute() error = %v, want versions.ErrNotFound", err)
	}
	if store.inserted != nil {
		t.Error("a row was inserted for a cross-prompt version")
	}
}
