package insights

import "fpl-insights-service/internal/identity"

// Recommendation is one surfaced advice card.
type Recommendation struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Players     []Player `json:"players"`
	Confidence  string   `json:"confidence"`
}

const (
	recommendationHeadline = 3
	recommendationDetail   = 2
)

// Recommend selects which analytical buckets to surface for the given
// preferences. The mapping is a fixed policy table, not a model: high risk
// tolerance surfaces hidden gems and rising stars first, low surfaces
// consensus picks first, and bandwagon warnings are always appended when
// present. Output is deterministic for a given market and preferences.
func Recommend(market Market, prefs identity.Preferences) []Recommendation {
	recs := []Recommendation{}

	switch prefs.RiskTolerance {
	case identity.RiskHigh:
		if len(market.FormOwnershipMatrix.HiddenGems) > 0 {
			recs = append(recs, Recommendation{
				Type:        "opportunity",
				Title:       "High-Risk, High-Reward Plays",
				Description: "These differential picks could provide massive rank gains",
				Players:     truncate(market.FormOwnershipMatrix.HiddenGems, recommendationHeadline),
				Confidence:  "medium",
			})
		}
	case identity.RiskLow:
		if len(market.FormOwnershipMatrix.ConsensusPicks) > 0 {
			recs = append(recs, Recommendation{
				Type:        "safe",
				Title:       "Conservative Consensus Plays",
				Description: "Reliable picks that most successful managers own",
				Players:     truncate(market.FormOwnershipMatrix.ConsensusPicks, recommendationHeadline),
				Confidence:  "high",
			})
		}
	}

	if len(market.TransferTrends.RisingStars) > 0 {
		recs = append(recs, Recommendation{
			Type:        "timing",
			Title:       "Beat the Market",
			Description: "Get ahead of the crowd with these trending players",
			Players:     truncate(market.TransferTrends.RisingStars, recommendationDetail),
			Confidence:  "medium",
		})
	}

	if len(market.FormOwnershipMatrix.Bandwagons) > 0 {
		recs = append(recs, Recommendation{
			Type:        "avoid",
			Title:       "Potential Traps",
			Description: "High ownership players with declining form - consider alternatives",
			Players:     truncate(market.FormOwnershipMatrix.Bandwagons, recommendationDetail),
			Confidence:  "high",
		})
	}

	return recs
}

// RecommendForTeam surfaces in-form players from the manager's favorite
// club, appended after the policy recommendations when a favorite team is
// set.
func RecommendForTeam(players []Player, prefs identity.Preferences) *Recommendation {
	if prefs.FavoriteTeam == 0 {
		return nil
	}
	picked := filterPlayers(players, func(p Player) bool {
		return p.Team == prefs.FavoriteTeam && p.Form > 0
	})
	if len(picked) == 0 {
		return nil
	}
	picked = TopForm(picked, recommendationHeadline)
	return &Recommendation{
		Type:        "favorite",
		Title:       "In-Form Players From Your Club",
		Description: "The strongest current picks from your favorite team",
		Players:     picked,
		Confidence:  "medium",
	}
}
