package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fpl-insights-service/internal/bootstrapcache"
	"fpl-insights-service/internal/fixtures"
	"fpl-insights-service/internal/identity"
	"fpl-insights-service/internal/insights"
	"fpl-insights-service/internal/logging"
)

// envelope wraps a derived view with its cache provenance so consumers can
// surface "showing cached data" style notices.
type envelope struct {
	Data           any       `json:"data"`
	FetchedAt      time.Time `json:"fetchedAt"`
	Stale          bool      `json:"stale,omitempty"`
	Degraded       bool      `json:"degraded,omitempty"`
	DegradedReason string    `json:"degradedReason,omitempty"`
}

func wrap(res bootstrapcache.Result, data any) envelope {
	return envelope{
		Data:           data,
		FetchedAt:      res.FetchedAt,
		Stale:          res.Stale,
		Degraded:       res.Degraded,
		DegradedReason: res.DegradedReason,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	st := s.cache.Status()
	if !st.IsReady() {
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]any{
			"ready":               false,
			"consecutiveFailures": st.ConsecutiveFailures,
			"lastError":           st.LastError,
		})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"ready": true})
}

func (s *Server) handleBootstrapStatus(w http.ResponseWriter, r *http.Request) {
	st := s.cache.Status()
	writeJSON(w, r, http.StatusOK, map[string]any{
		"hasValue":            st.HasValue,
		"fetchedAt":           st.FetchedAt,
		"ageSeconds":          int64(st.Age.Seconds()),
		"consecutiveFailures": st.ConsecutiveFailures,
		"lastError":           st.LastError,
		"lastAttempt":         st.LastAttempt,
		"lastSuccess":         st.LastSuccess,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	bundle := s.resolver.Bundle(r.Context(), false)
	writeJSON(w, r, http.StatusOK, bundle)
}

func (s *Server) handleConfigPositions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.resolver.Positions(r.Context(), false))
}

func (s *Server) handleConfigLimits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.resolver.PositionLimits(r.Context(), false))
}

func (s *Server) handleConfigTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.resolver.Teams(r.Context(), false))
}

func (s *Server) handleConfigRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.resolver.GameRules(r.Context(), false))
}

func (s *Server) handleConfigGameweek(w http.ResponseWriter, r *http.Request) {
	event := s.resolver.CurrentGameweek(r.Context(), false)
	if event == nil {
		// Season not active, or upstream unreachable with no cached payload.
		writeJSON(w, r, http.StatusOK, map[string]any{"gameweek": nil})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"gameweek": event})
}

func (s *Server) handleConfigStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.resolver.Status())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.cache.Get(r.Context(), bootstrapcache.Options{AllowStaleWhileRevalidate: true})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	players := insights.Enrich(res.Payload)
	writeJSON(w, r, http.StatusOK, wrap(res, insights.BuildDashboard(players)))
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	res, err := s.cache.Get(r.Context(), bootstrapcache.Options{AllowStaleWhileRevalidate: true})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	players := insights.Enrich(res.Payload)
	writeJSON(w, r, http.StatusOK, wrap(res, insights.BuildMarket(players)))
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	res, err := s.cache.Get(r.Context(), bootstrapcache.Options{AllowStaleWhileRevalidate: true})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	players := insights.Enrich(res.Payload)
	writeJSON(w, r, http.StatusOK, wrap(res, insights.BuildFormOwnershipMatrix(players)))
}

func (s *Server) handleRiskTiers(w http.ResponseWriter, r *http.Request) {
	res, err := s.cache.Get(r.Context(), bootstrapcache.Options{AllowStaleWhileRevalidate: true})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	players := insights.Enrich(res.Payload)
	writeJSON(w, r, http.StatusOK, wrap(res, insights.BuildRiskTiers(players)))
}

// handleRecommendations builds preference-aware recommendations. Preferences
// come from query parameters, or from the identity provider when a uid is
// supplied and a provider is wired.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	res, err := s.cache.Get(r.Context(), bootstrapcache.Options{AllowStaleWhileRevalidate: true})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	prefs := s.resolvePreferences(r)
	players := insights.Enrich(res.Payload)
	market := insights.BuildMarket(players)

	recs := insights.Recommend(market, prefs)
	if teamRec := insights.RecommendForTeam(players, prefs); teamRec != nil {
		recs = append(recs, *teamRec)
	}
	writeJSON(w, r, http.StatusOK, wrap(res, recs))
}

func (s *Server) resolvePreferences(r *http.Request) identity.Preferences {
	q := r.URL.Query()
	prefs := identity.Preferences{
		RiskTolerance: identity.ParseRiskTolerance(q.Get("risk")),
	}
	if team, err := strconv.Atoi(q.Get("team")); err == nil {
		prefs.FavoriteTeam = team
	}

	uid := q.Get("uid")
	if uid == "" || s.identity == nil {
		return prefs
	}

	profile, err := s.identity.Profile(r.Context(), uid)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context()), "profile lookup failed, using query preferences",
			slog.String("uid", uid), "error", err.Error())
		return prefs
	}

	stored := profile.Preferences
	if q.Get("risk") == "" {
		prefs.RiskTolerance = identity.ParseRiskTolerance(string(stored.RiskTolerance))
	}
	if q.Get("team") == "" {
		prefs.FavoriteTeam = stored.FavoriteTeam
	}
	return prefs
}

func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	all, err := s.client.Fixtures(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := fixtures.Filter{}
	if event, err := strconv.Atoi(q.Get("event")); err == nil {
		filter.Event = event
	}
	if team, err := strconv.Atoi(q.Get("team")); err == nil {
		filter.Team = team
	}
	if finished, err := strconv.ParseBool(q.Get("finished")); err == nil {
		filter.FinishedOnly = finished
	}

	teams := s.resolver.Teams(r.Context(), false)
	views := fixtures.Annotate(filter.Apply(all), teams)
	events, grouped := fixtures.GroupByEvent(views)

	writeJSON(w, r, http.StatusOK, map[string]any{
		"events":   events,
		"fixtures": grouped,
		"total":    len(views),
	})
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid player id")
		return
	}

	summary, err := s.client.PlayerSummary(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
