package api

import (
	"net/http"

	"github.com/promptrefine/promptrefine/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Prompts.Handler().Routes(),
		domain.Versions.Handler().Routes(),
		domain.TestRuns.Handler().Routes(),
	)
}
