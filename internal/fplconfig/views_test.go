package fplconfig

import (
	"testing"
	"time"

	"fpl-insights-service/internal/domain"
)

func samplePayload() *domain.Bootstrap {
	return &domain.Bootstrap{
		Events: []domain.Event{
			{ID: 7, IsCurrent: true},
			{ID: 8, IsNext: true},
		},
		GameSettings: domain.GameSettings{
			SquadSquadsize:  15,
			SquadSquadplay:  11,
			SquadTeamLimit:  3,
			SquadTotalSpend: 1000,
			TransfersCost:   4,
			Timezone:        "Europe/London",
		},
		Teams: []domain.Team{
			{ID: 1, Name: "Arsenal", ShortName: "ARS", Strength: 5},
			{ID: 99, Name: "Newly Promoted", ShortName: "NEW", Strength: 2},
		},
		ElementTypes: []domain.PositionType{
			{ID: 1, PluralName: "Goalkeepers", SingularNameShort: "GKP", SquadSelect: 2, SquadMinPlay: 1, SquadMaxPlay: 1},
			{ID: 3, PluralName: "Midfielders", SingularNameShort: "MID", SquadSelect: 5, SquadMinPlay: 2, SquadMaxPlay: 5},
		},
	}
}

func TestProjectGameRules(t *testing.T) {
	rules := ProjectGameRules(samplePayload())

	if rules.SquadSize != 15 || rules.StartingXI != 11 || rules.MaxPlayersPerTeam != 3 {
		t.Fatalf("unexpected squad rules: %+v", rules)
	}
	if rules.BudgetLimit != 100.0 {
		t.Fatalf("expected budget in display units, got %v", rules.BudgetLimit)
	}
	if rules.TransferCost != 4 || rules.CaptainMultiplier != 2 || rules.ViceCaptainMultiplier != 2 {
		t.Fatalf("unexpected transfer rules: %+v", rules)
	}
	if rules.CurrentGameweek == nil || *rules.CurrentGameweek != 7 {
		t.Fatalf("expected current gameweek 7, got %v", rules.CurrentGameweek)
	}
	if rules.Timezone != "Europe/London" {
		t.Fatalf("expected timezone projected, got %q", rules.Timezone)
	}
}

func TestProjectGameRulesDefaultsOnMissingSettings(t *testing.T) {
	rules := ProjectGameRules(&domain.Bootstrap{})

	want := DefaultGameRules()
	if rules.SquadSize != want.SquadSize || rules.StartingXI != want.StartingXI ||
		rules.MaxPlayersPerTeam != want.MaxPlayersPerTeam || rules.BudgetLimit != want.BudgetLimit ||
		rules.FreeTransfers != want.FreeTransfers || rules.TransferCost != want.TransferCost ||
		rules.CaptainMultiplier != want.CaptainMultiplier || rules.ViceCaptainMultiplier != want.ViceCaptainMultiplier {
		t.Fatalf("expected hardcoded defaults, got %+v", rules)
	}
	if rules.CurrentGameweek != nil {
		t.Fatalf("expected nil gameweek in degraded rules")
	}
}

func TestProjectTeamsAttachesColors(t *testing.T) {
	teams := ProjectTeams(samplePayload())

	arsenal, ok := teams[1]
	if !ok || arsenal.Color != "#EF0107" {
		t.Fatalf("expected Arsenal color, got %+v", arsenal)
	}
	promoted, ok := teams[99]
	if !ok || promoted.Color != "#000000" {
		t.Fatalf("expected neutral default color, got %+v", promoted)
	}
}

func TestProjectPositionsKeyedByShortCode(t *testing.T) {
	positions := ProjectPositions(samplePayload())

	mid, ok := positions["MID"]
	if !ok || mid.Name != "Midfielders" || mid.SquadSelect != 5 {
		t.Fatalf("unexpected MID view: %+v", mid)
	}
	if _, ok := positions["FWD"]; ok {
		t.Fatalf("expected only projected positions present")
	}
}

func TestProjectPositionLimits(t *testing.T) {
	limits := ProjectPositionLimits(samplePayload())

	gkp, ok := limits["GKP"]
	if !ok || gkp.Min != 2 || gkp.Max != 2 || gkp.MinPlay != 1 || gkp.MaxPlay != 1 {
		t.Fatalf("unexpected GKP limits: %+v", gkp)
	}
}

func TestProjectBundle(t *testing.T) {
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	bundle := ProjectBundle(samplePayload(), at)

	if !bundle.LastUpdated.Equal(at) {
		t.Fatalf("expected timestamp adopted")
	}
	if bundle.IsFallback {
		t.Fatalf("live projection must not be tagged fallback")
	}
	if len(bundle.Teams) != 2 || len(bundle.Positions) != 2 {
		t.Fatalf("unexpected bundle contents: %+v", bundle)
	}
}

func TestTeamColorTable(t *testing.T) {
	if TeamColor(12) != "#C8102E" {
		t.Fatalf("expected Liverpool color")
	}
	if TeamColor(1234) != "#000000" {
		t.Fatalf("expected neutral default for unknown id")
	}
}
