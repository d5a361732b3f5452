// Package fixtures computes fixture difficulty and the fixture views served
// to consumers. Everything here is pure and total; missing data degrades to
// a medium rating instead of failing.
package fixtures

import (
	"fpl-insights-service/internal/domain"
	"fpl-insights-service/internal/fplconfig"
)

const (
	// Medium rating used when the opponent's strength is unknown.
	defaultDifficulty = 3

	// Both sides at or above this strength make a headline match.
	bigMatchStrength = 4
)

// Difficulty scores a fixture 1-5 from the perspective of teamID: the
// opponent's aggregate strength maps directly onto the scale, clamped to
// [1,5]. An opponent absent from the team map rates medium.
func Difficulty(f domain.Fixture, teamID int, teams map[int]fplconfig.TeamInfo) int {
	opponentID, ok := f.Opponent(teamID)
	if !ok {
		return defaultDifficulty
	}

	strength := defaultDifficulty
	if opponent, ok := teams[opponentID]; ok && opponent.Strength > 0 {
		strength = opponent.Strength
	}

	switch {
	case strength >= 5:
		return 5
	case strength >= 4:
		return 4
	case strength >= 3:
		return 3
	case strength >= 2:
		return 2
	default:
		return 1
	}
}

// IsBigMatch reports whether both sides rate at least the headline strength.
func IsBigMatch(f domain.Fixture, teams map[int]fplconfig.TeamInfo) bool {
	home, okH := teams[f.TeamH]
	away, okA := teams[f.TeamA]
	return okH && okA && home.Strength >= bigMatchStrength && away.Strength >= bigMatchStrength
}

// DifficultyLabel names a difficulty score for display.
func DifficultyLabel(score int) string {
	switch score {
	case 1:
		return "Very Easy"
	case 2:
		return "Easy"
	case 3:
		return "Medium"
	case 4:
		return "Hard"
	case 5:
		return "Very Hard"
	default:
		return "Unknown"
	}
}
