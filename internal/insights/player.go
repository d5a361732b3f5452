package insights

import "fpl-insights-service/internal/domain"

// InjuryRisk buckets a player's availability signal.
type InjuryRisk string

const (
	InjuryRiskHigh   InjuryRisk = "high"
	InjuryRiskMedium InjuryRisk = "medium"
	InjuryRiskLow    InjuryRisk = "low"
)

// Player is an upstream player record pre-joined with its team and position
// names and with the derived metrics every bucket reads. All numeric string
// fields are parsed once here; malformed values degrade to zero.
type Player struct {
	domain.Player

	TeamName      string  `json:"team_name"`
	PositionShort string  `json:"position_name"`
	CostMillions  float64 `json:"now_cost_millions"`

	Form            float64 `json:"form_value"`
	PointsPerGame   float64 `json:"points_per_game_value"`
	Ownership       float64 `json:"ownership"`
	ValueEfficiency float64 `json:"value_efficiency"`
	FormTrend       float64 `json:"form_trend"`

	Risk InjuryRisk `json:"injury_risk"`
}

// Enrich joins players with team and position names and computes the
// derived metrics. The input payload is not retained; the result is an
// independent snapshot safe for concurrent reads.
func Enrich(b *domain.Bootstrap) []Player {
	teamNames := make(map[int]string, len(b.Teams))
	for _, t := range b.Teams {
		teamNames[t.ID] = t.Name
	}
	positionNames := make(map[int]string, len(b.ElementTypes))
	for _, et := range b.ElementTypes {
		positionNames[et.ID] = et.SingularNameShort
	}

	players := make([]Player, 0, len(b.Elements))
	for _, p := range b.Elements {
		players = append(players, enrichPlayer(p, teamNames, positionNames))
	}
	return players
}

func enrichPlayer(p domain.Player, teamNames, positionNames map[int]string) Player {
	form := domain.ParseDecimal(p.Form)
	ppg := domain.ParseDecimal(p.PointsPerGame)
	ownership := domain.ParseDecimal(p.SelectedByPercent)
	cost := p.CostMillions()

	teamName, ok := teamNames[p.Team]
	if !ok {
		teamName = "Unknown"
	}
	positionShort, ok := positionNames[p.ElementType]
	if !ok {
		positionShort = "Unknown"
	}

	// Zero price means zero efficiency, never a division error.
	efficiency := 0.0
	if cost > 0 {
		efficiency = float64(p.TotalPoints) / cost
	}

	return Player{
		Player:          p,
		TeamName:        teamName,
		PositionShort:   positionShort,
		CostMillions:    cost,
		Form:            form,
		PointsPerGame:   ppg,
		Ownership:       ownership,
		ValueEfficiency: efficiency,
		FormTrend:       form - ppg,
		Risk:            injuryRisk(p),
	}
}

// injuryRisk follows the availability signal: a reduced chance of playing
// is high risk, news with full availability is medium, anything else low.
// A nil chance means the upstream has no doubt recorded.
func injuryRisk(p domain.Player) InjuryRisk {
	if p.ChanceOfPlayingNextRound != nil && *p.ChanceOfPlayingNextRound < 100 {
		return InjuryRiskHigh
	}
	if p.News != "" {
		return InjuryRiskMedium
	}
	return InjuryRiskLow
}
