package fixtures

import (
	"sort"

	"fpl-insights-service/internal/domain"
	"fpl-insights-service/internal/fplconfig"
)

// Filter narrows a fixture list. Zero values are no-ops.
type Filter struct {
	Event        int
	Team         int
	FinishedOnly bool
}

// Apply returns the fixtures matching the filter, preserving input order.
func (f Filter) Apply(all []domain.Fixture) []domain.Fixture {
	out := []domain.Fixture{}
	for _, fx := range all {
		if f.Event != 0 && fx.Event != f.Event {
			continue
		}
		if f.Team != 0 && !fx.Involves(f.Team) {
			continue
		}
		if f.FinishedOnly && !fx.Finished {
			continue
		}
		out = append(out, fx)
	}
	return out
}

// View is one fixture annotated with per-side difficulty for consumers.
type View struct {
	domain.Fixture

	HomeDifficulty int  `json:"home_difficulty"`
	AwayDifficulty int  `json:"away_difficulty"`
	BigMatch       bool `json:"big_match"`
}

// Annotate attaches difficulty scores to each fixture.
func Annotate(all []domain.Fixture, teams map[int]fplconfig.TeamInfo) []View {
	views := make([]View, 0, len(all))
	for _, fx := range all {
		views = append(views, View{
			Fixture:        fx,
			HomeDifficulty: Difficulty(fx, fx.TeamH, teams),
			AwayDifficulty: Difficulty(fx, fx.TeamA, teams),
			BigMatch:       IsBigMatch(fx, teams),
		})
	}
	return views
}

// GroupByEvent buckets annotated fixtures by gameweek, returning the sorted
// gameweek ids alongside the groups.
func GroupByEvent(views []View) ([]int, map[int][]View) {
	grouped := make(map[int][]View)
	for _, v := range views {
		grouped[v.Event] = append(grouped[v.Event], v)
	}

	events := make([]int, 0, len(grouped))
	for e := range grouped {
		events = append(events, e)
	}
	sort.Ints(events)
	return events, grouped
}
