package domain

// PlayerSummary is the per-player detail payload from the element-summary
// endpoint.
type PlayerSummary struct {
	History     []PlayerRound  `json:"history"`
	HistoryPast []PlayerSeason `json:"history_past"`
	Fixtures    []Fixture      `json:"fixtures"`
}

// PlayerRound is one completed gameweek of a player's current season.
type PlayerRound struct {
	Round       int `json:"round"`
	TotalPoints int `json:"total_points"`
	Minutes     int `json:"minutes"`
	GoalsScored int `json:"goals_scored"`
	Assists     int `json:"assists"`
	Value       int `json:"value"`
}

// PlayerSeason summarizes one past season.
type PlayerSeason struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Minutes     int    `json:"minutes"`
	StartCost   int    `json:"start_cost"`
	EndCost     int    `json:"end_cost"`
}
