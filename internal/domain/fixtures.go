package domain

// Fixture is one scheduled match. Score pointers are nil until the match has
// started.
type Fixture struct {
	ID          int    `json:"id"`
	Event       int    `json:"event"`
	TeamH       int    `json:"team_h"`
	TeamA       int    `json:"team_a"`
	TeamHScore  *int   `json:"team_h_score"`
	TeamAScore  *int   `json:"team_a_score"`
	Finished    bool   `json:"finished"`
	Started     bool   `json:"started"`
	KickoffTime string `json:"kickoff_time"`
}

// Opponent returns the other side of the fixture from the perspective of
// teamID. The second return is false when teamID is not playing.
func (f Fixture) Opponent(teamID int) (int, bool) {
	switch teamID {
	case f.TeamH:
		return f.TeamA, true
	case f.TeamA:
		return f.TeamH, true
	}
	return 0, false
}

// Involves reports whether teamID plays in this fixture.
func (f Fixture) Involves(teamID int) bool {
	return f.TeamH == teamID || f.TeamA == teamID
}
