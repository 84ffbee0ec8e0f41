// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/promptrefine/promptrefine/internal/auth"
	"github.com/promptrefine/promptrefine/internal/config"
	"github.com/promptrefine/promptrefine/internal/infrastructure"
	"github.com/promptrefine/promptrefine/pkg/middleware"
	"github.com/promptrefine/promptrefine/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Every route behind the module requires a valid session.
func NewModule(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	authSys auth.System,
) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Correlation())
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(auth.RequireSession(authSys, runtime.Logger))

	return m, nil
}
