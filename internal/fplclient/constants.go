package fplclient

import "time"

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "fpl-insights-service/1.0"

	// The upstream regularly takes tens of seconds around deadlines, so the
	// client deadline is minutes, not the conventional few seconds.
	defaultHTTPTimeout = 2 * time.Minute

	maxErrorBodyBytes = 512
)

const (
	pathBootstrap     = "/bootstrap-static/"
	pathFixtures      = "/fixtures/"
	pathPlayerSummary = "/element-summary/%d/"
)
