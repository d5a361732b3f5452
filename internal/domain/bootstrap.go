package domain

// Bootstrap is the bulk dataset returned by the upstream bootstrap-static
// endpoint: every player, team, position type, gameweek, and the global game
// settings in one payload. It is immutable once fetched; a refresh replaces
// the whole value, never mutates it in place.
type Bootstrap struct {
	Events       []Event        `json:"events"`
	GameSettings GameSettings   `json:"game_settings"`
	Teams        []Team         `json:"teams"`
	ElementTypes []PositionType `json:"element_types"`
	Elements     []Player       `json:"elements"`
}

// Player mirrors an upstream "element" record. Rolling metrics (form,
// ownership, points per game) arrive as decimal strings and are parsed on
// read via ParseDecimal. NowCost is in tenths of the display currency unit.
type Player struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	WebName     string `json:"web_name"`
	Team        int    `json:"team"`
	ElementType int    `json:"element_type"`

	NowCost     int `json:"now_cost"`
	TotalPoints int `json:"total_points"`
	Minutes     int `json:"minutes"`
	GoalsScored int `json:"goals_scored"`
	Assists     int `json:"assists"`

	Form              string `json:"form"`
	PointsPerGame     string `json:"points_per_game"`
	SelectedByPercent string `json:"selected_by_percent"`

	TransfersInEvent  int `json:"transfers_in_event"`
	TransfersOutEvent int `json:"transfers_out_event"`

	// ChanceOfPlayingNextRound is nil when the upstream has no availability
	// information for the player, which is distinct from 0.
	ChanceOfPlayingNextRound *int   `json:"chance_of_playing_next_round"`
	News                     string `json:"news"`
}

// CostMillions converts NowCost from tenths to display currency units.
func (p Player) CostMillions() float64 {
	return float64(p.NowCost) / 10
}

// Team mirrors an upstream team record, including the strength split by
// venue and attack/defence plus current league standing.
type Team struct {
	ID        int    `json:"id"`
	Code      int    `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`

	Strength            int `json:"strength"`
	StrengthOverallHome int `json:"strength_overall_home"`
	StrengthOverallAway int `json:"strength_overall_away"`
	StrengthAttackHome  int `json:"strength_attack_home"`
	StrengthAttackAway  int `json:"strength_attack_away"`
	StrengthDefenceHome int `json:"strength_defence_home"`
	StrengthDefenceAway int `json:"strength_defence_away"`

	Played   int    `json:"played"`
	Win      int    `json:"win"`
	Draw     int    `json:"draw"`
	Loss     int    `json:"loss"`
	Points   int    `json:"points"`
	Position int    `json:"position"`
	Form     string `json:"form"`
}

// PositionType mirrors an upstream "element_type": a squad position and its
// composition rules.
type PositionType struct {
	ID                int    `json:"id"`
	SingularName      string `json:"singular_name"`
	SingularNameShort string `json:"singular_name_short"`
	PluralName        string `json:"plural_name"`
	SquadSelect       int    `json:"squad_select"`
	SquadMinPlay      int    `json:"squad_min_play"`
	SquadMaxPlay      int    `json:"squad_max_play"`
}

// Event is one gameweek. Upstream guarantees at most one event is flagged
// current at any time.
type Event struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeadlineTime string `json:"deadline_time"`
	Finished     bool   `json:"finished"`
	IsPrevious   bool   `json:"is_previous"`
	IsCurrent    bool   `json:"is_current"`
	IsNext       bool   `json:"is_next"`
}

// GameSettings carries the global rule constants. Field names follow the
// upstream payload.
type GameSettings struct {
	SquadSquadsize       int    `json:"squad_squadsize"`
	SquadSquadplay       int    `json:"squad_squadplay"`
	SquadTeamLimit       int    `json:"squad_team_limit"`
	SquadTotalSpend      int    `json:"squad_total_spend"`
	LeagueJoinPrivateMax int    `json:"league_join_private_max"`
	TransfersCost        int    `json:"transfers_cost"`
	Timezone             string `json:"timezone"`
}

// CurrentEvent returns the event flagged current, falling back to the one
// flagged next. The second return is false when neither exists, which
// callers must treat as "season not active".
func (b *Bootstrap) CurrentEvent() (Event, bool) {
	for _, e := range b.Events {
		if e.IsCurrent {
			return e, true
		}
	}
	for _, e := range b.Events {
		if e.IsNext {
			return e, true
		}
	}
	return Event{}, false
}

// TeamByID returns the team with the given id.
func (b *Bootstrap) TeamByID(id int) (Team, bool) {
	for _, t := range b.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}
