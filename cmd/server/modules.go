package main

import (
	"encoding/json"
	"net/http"

	"github.com/promptrefine/promptrefine/internal/api"
	"github.com/promptrefine/promptrefine/internal/auth"
	"github.com/promptrefine/promptrefine/internal/config"
	"github.com/promptrefine/promptrefine/internal/infrastructure"
	"github.com/promptrefine/promptrefine/pkg/middleware"
	"github.com/promptrefine/promptrefine/pkg/module"
	"github.com/promptrefine/promptrefine/pkg/routes"
)

type Modules struct {
	API  *module.Module
	Auth *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	authSys := auth.New(&cfg.Auth, infra.Logger)

	apiModule, err := api.NewModule(cfg, infra, authSys)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:  apiModule,
		Auth: newAuthModule(cfg, infra, authSys),
	}, nil
}

func newAuthModule(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	authSys auth.System,
) *module.Module {
	mux := http.NewServeMux()
	routes.Register(mux, authSys.Handler().Routes())

	m := module.New("/auth", mux)
	m.Use(middleware.Correlation())
	m.Use(middleware.Recover(infra.Logger))
	m.Use(middleware.Logger(infra.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Auth)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
