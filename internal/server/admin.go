package server

import (
	"crypto/subtle"
	"net/http"

	"fpl-insights-service/internal/bootstrapcache"
	"fpl-insights-service/internal/logging"
)

// handleCacheRefresh force-refreshes the bootstrap slot and drops the derived
// config bundle so the next read re-projects from the fresh payload. Guarded
// by the admin token; disabled when no token is configured.
func (s *Server) handleCacheRefresh(w http.ResponseWriter, r *http.Request) {
	if s.adminToken == "" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	token := r.Header.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(token), []byte("Bearer "+s.adminToken)) != 1 {
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := s.cache.Get(r.Context(), bootstrapcache.Options{ForceRefresh: true})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	s.resolver.Invalidate()

	logging.Info(logging.FromContext(r.Context()), "cache force-refreshed")
	writeJSON(w, r, http.StatusOK, map[string]any{
		"refreshed": true,
		"fetchedAt": res.FetchedAt,
		"degraded":  res.Degraded,
	})
}
