package fplconfig

import (
	"time"

	"fpl-insights-service/internal/domain"
)

// Position is the narrow view of one squad position, keyed by its short
// code (GKP, DEF, MID, FWD).
type Position struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Short        string `json:"short"`
	SquadSelect  int    `json:"squad_select"`
	SquadMinPlay int    `json:"squad_min_play"`
	SquadMaxPlay int    `json:"squad_max_play"`
}

// PositionLimit captures squad composition rules for one position.
type PositionLimit struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	MinPlay int `json:"minPlay"`
	MaxPlay int `json:"maxPlay"`
}

// TeamInfo is the narrow team view with the display color attached.
type TeamInfo struct {
	Name      string `json:"name"`
	Short     string `json:"short"`
	Code      int    `json:"code"`
	Strength  int    `json:"strength"`
	Played    int    `json:"played"`
	Win       int    `json:"win"`
	Draw      int    `json:"draw"`
	Loss      int    `json:"loss"`
	Points    int    `json:"points"`
	Position  int    `json:"position"`
	Form      string `json:"form"`
	Color     string `json:"color"`

	StrengthOverallHome int `json:"strength_overall_home"`
	StrengthOverallAway int `json:"strength_overall_away"`
	StrengthAttackHome  int `json:"strength_attack_home"`
	StrengthAttackAway  int `json:"strength_attack_away"`
	StrengthDefenceHome int `json:"strength_defence_home"`
	StrengthDefenceAway int `json:"strength_defence_away"`
}

// GameRules is the projected global rule set. BudgetLimit is in display
// currency units.
type GameRules struct {
	SquadSize             int     `json:"squadSize"`
	StartingXI            int     `json:"startingXI"`
	MaxPlayersPerTeam     int     `json:"maxPlayersPerTeam"`
	BudgetLimit           float64 `json:"budgetLimit"`
	FreeTransfers         int     `json:"freeTransfers"`
	TransferCost          int     `json:"transferCost"`
	CaptainMultiplier     int     `json:"captainMultiplier"`
	ViceCaptainMultiplier int     `json:"viceCaptainMultiplier"`
	CurrentGameweek       *int    `json:"currentGameweek"`
	Timezone              string  `json:"timezone,omitempty"`
}

// Bundle is the whole derived configuration: one instance shared by all
// readers until its TTL lapses or a refresh replaces it.
type Bundle struct {
	Positions      map[string]Position      `json:"positions"`
	PositionLimits map[string]PositionLimit `json:"positionLimits"`
	Teams          map[int]TeamInfo         `json:"teams"`
	GameRules      GameRules                `json:"gameRules"`
	LastUpdated    time.Time                `json:"lastUpdated"`
	IsFallback     bool                     `json:"isFallback,omitempty"`
}

// Status reports resolver state for observability endpoints.
type Status struct {
	Loaded     bool      `json:"loaded"`
	LastFetch  time.Time `json:"lastFetch"`
	Valid      bool      `json:"valid"`
	IsFallback bool      `json:"isFallback"`
}

// ProjectBundle derives the full configuration bundle from a bootstrap
// payload. It never fails: every view degrades independently.
func ProjectBundle(b *domain.Bootstrap, at time.Time) Bundle {
	return Bundle{
		Positions:      ProjectPositions(b),
		PositionLimits: ProjectPositionLimits(b),
		Teams:          ProjectTeams(b),
		GameRules:      ProjectGameRules(b),
		LastUpdated:    at,
	}
}

// ProjectPositions maps element types by their short code.
func ProjectPositions(b *domain.Bootstrap) map[string]Position {
	positions := make(map[string]Position, len(b.ElementTypes))
	for _, et := range b.ElementTypes {
		positions[et.SingularNameShort] = Position{
			ID:           et.ID,
			Name:         et.PluralName,
			Short:        et.SingularNameShort,
			SquadSelect:  et.SquadSelect,
			SquadMinPlay: et.SquadMinPlay,
			SquadMaxPlay: et.SquadMaxPlay,
		}
	}
	return positions
}

// ProjectPositionLimits maps squad composition rules by short code.
func ProjectPositionLimits(b *domain.Bootstrap) map[string]PositionLimit {
	limits := make(map[string]PositionLimit, len(b.ElementTypes))
	for _, et := range b.ElementTypes {
		limits[et.SingularNameShort] = PositionLimit{
			Min:     et.SquadSelect,
			Max:     et.SquadSelect,
			MinPlay: et.SquadMinPlay,
			MaxPlay: et.SquadMaxPlay,
		}
	}
	return limits
}

// ProjectTeams maps teams by id with display colors attached. Teams absent
// from the color table get the neutral default; the projection never fails.
func ProjectTeams(b *domain.Bootstrap) map[int]TeamInfo {
	teams := make(map[int]TeamInfo, len(b.Teams))
	for _, t := range b.Teams {
		teams[t.ID] = TeamInfo{
			Name:      t.Name,
			Short:     t.ShortName,
			Code:      t.Code,
			Strength:  t.Strength,
			Played:    t.Played,
			Win:       t.Win,
			Draw:      t.Draw,
			Loss:      t.Loss,
			Points:    t.Points,
			Position:  t.Position,
			Form:      t.Form,
			Color:     TeamColor(t.ID),

			StrengthOverallHome: t.StrengthOverallHome,
			StrengthOverallAway: t.StrengthOverallAway,
			StrengthAttackHome:  t.StrengthAttackHome,
			StrengthAttackAway:  t.StrengthAttackAway,
			StrengthDefenceHome: t.StrengthDefenceHome,
			StrengthDefenceAway: t.StrengthDefenceAway,
		}
	}
	return teams
}

// ProjectGameRules derives the rule set from game settings, falling back to
// the hardcoded defaults when the payload carries none.
func ProjectGameRules(b *domain.Bootstrap) GameRules {
	s := b.GameSettings
	if s.SquadSquadsize == 0 {
		return DefaultGameRules()
	}

	rules := GameRules{
		SquadSize:             s.SquadSquadsize,
		StartingXI:            s.SquadSquadplay,
		MaxPlayersPerTeam:     s.SquadTeamLimit,
		BudgetLimit:           float64(s.SquadTotalSpend) / 10,
		FreeTransfers:         defaultFreeTransfers,
		TransferCost:          s.TransfersCost,
		CaptainMultiplier:     captainMultiplier,
		ViceCaptainMultiplier: viceCaptainMultiplier,
		Timezone:              s.Timezone,
	}
	if e, ok := b.CurrentEvent(); ok {
		id := e.ID
		rules.CurrentGameweek = &id
	}
	return rules
}
