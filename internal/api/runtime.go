package api

import (
	"github.com/promptrefine/promptrefine/internal/config"
	"github.com/promptrefine/promptrefine/internal/infrastructure"
)

// Runtime scopes infrastructure to the API module.
type Runtime struct {
	*infrastructure.Infrastructure
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:   infra.Lifecycle,
			Logger:      infra.Logger.With("module", "api"),
			Database:    infra.Database,
			Completions: infra.Completions,
		},
	}
}
