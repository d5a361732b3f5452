package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

// newRouter builds the route table. CORS wraps the whole mux because the
// primary consumer is a browser SPA on another origin.
func (s *Server) newRouter(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/config", func(r chi.Router) {
		r.Get("/", s.handleConfig)
		r.Get("/positions", s.handleConfigPositions)
		r.Get("/limits", s.handleConfigLimits)
		r.Get("/teams", s.handleConfigTeams)
		r.Get("/rules", s.handleConfigRules)
		r.Get("/gameweek", s.handleConfigGameweek)
		r.Get("/status", s.handleConfigStatus)
	})

	r.Get("/bootstrap/status", s.handleBootstrapStatus)

	r.Route("/insights", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/market", s.handleMarket)
		r.Get("/matrix", s.handleMatrix)
		r.Get("/risk", s.handleRiskTiers)
		r.Get("/recommendations", s.handleRecommendations)
	})

	r.Get("/fixtures", s.handleFixtures)
	r.Get("/players/{id}", s.handlePlayer)

	r.Post("/admin/cache/refresh", s.handleCacheRefresh)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	})
	return c.Handler(r)
}
