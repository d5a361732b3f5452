package fplconfig

import "time"

const (
	captainMultiplier     = 2
	viceCaptainMultiplier = 2
	defaultFreeTransfers  = 1

	// Neutral display color for teams missing from the color table.
	defaultTeamColor = "#000000"
)

// teamColors maps upstream team ids to club display colors. The table is
// static; it is not part of the upstream data.
var teamColors = map[int]string{
	1:  "#EF0107", // Arsenal
	2:  "#95BFE5", // Aston Villa
	3:  "#DA291C", // Bournemouth
	4:  "#E30613", // Brentford
	5:  "#0057B8", // Brighton
	6:  "#034694", // Chelsea
	7:  "#1B458F", // Crystal Palace
	8:  "#003399", // Everton
	9:  "#CC0000", // Fulham
	10: "#3A64A3", // Ipswich
	11: "#003090", // Leicester
	12: "#C8102E", // Liverpool
	13: "#6CABDD", // Man City
	14: "#DA020E", // Man Utd
	15: "#241F20", // Newcastle
	16: "#DD0000", // Nott'm Forest
	17: "#D71920", // Southampton
	18: "#132257", // Spurs
	19: "#7A263A", // West Ham
	20: "#FDB913", // Wolves
}

// TeamColor looks up the display color for a team id, defaulting to a
// neutral color for unknown ids.
func TeamColor(id int) string {
	if color, ok := teamColors[id]; ok {
		return color
	}
	return defaultTeamColor
}

// DefaultGameRules is the hardcoded rule set used when the upstream payload
// is unavailable or carries no game settings.
func DefaultGameRules() GameRules {
	return GameRules{
		SquadSize:             15,
		StartingXI:            11,
		MaxPlayersPerTeam:     3,
		BudgetLimit:           100.0,
		FreeTransfers:         1,
		TransferCost:          4,
		CaptainMultiplier:     captainMultiplier,
		ViceCaptainMultiplier: viceCaptainMultiplier,
	}
}

// DefaultPositions is the hardcoded position view for degraded mode.
func DefaultPositions() map[string]Position {
	return map[string]Position{
		"GKP": {ID: 1, Name: "Goalkeepers", Short: "GKP", SquadSelect: 2, SquadMinPlay: 1, SquadMaxPlay: 1},
		"DEF": {ID: 2, Name: "Defenders", Short: "DEF", SquadSelect: 5, SquadMinPlay: 3, SquadMaxPlay: 5},
		"MID": {ID: 3, Name: "Midfielders", Short: "MID", SquadSelect: 5, SquadMinPlay: 2, SquadMaxPlay: 5},
		"FWD": {ID: 4, Name: "Forwards", Short: "FWD", SquadSelect: 3, SquadMinPlay: 1, SquadMaxPlay: 3},
	}
}

// DefaultPositionLimits is the hardcoded limit view for degraded mode.
func DefaultPositionLimits() map[string]PositionLimit {
	return map[string]PositionLimit{
		"GKP": {Min: 2, Max: 2, MinPlay: 1, MaxPlay: 1},
		"DEF": {Min: 5, Max: 5, MinPlay: 3, MaxPlay: 5},
		"MID": {Min: 5, Max: 5, MinPlay: 2, MaxPlay: 5},
		"FWD": {Min: 3, Max: 3, MinPlay: 1, MaxPlay: 3},
	}
}

// FallbackBundle is the degraded-mode configuration used when no live data
// and no persisted snapshot are available. It keeps the rest of the system
// functional.
func FallbackBundle(at time.Time) Bundle {
	return Bundle{
		Positions:      DefaultPositions(),
		PositionLimits: DefaultPositionLimits(),
		Teams:          map[int]TeamInfo{},
		GameRules:      DefaultGameRules(),
		LastUpdated:    at,
		IsFallback:     true,
	}
}
