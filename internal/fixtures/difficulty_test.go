package fixtures

import (
	"testing"

	"fpl-insights-service/internal/domain"
	"fpl-insights-service/internal/fplconfig"
)

func testTeams() map[int]fplconfig.TeamInfo {
	return map[int]fplconfig.TeamInfo{
		1: {Name: "Arsenal", Strength: 5},
		2: {Name: "Villa", Strength: 4},
		3: {Name: "Promoted", Strength: 2},
	}
}

func TestDifficultyMapsOpponentStrength(t *testing.T) {
	teams := testTeams()
	f := domain.Fixture{TeamH: 3, TeamA: 1}

	// Promoted hosting Arsenal: the hosts face top strength.
	if got := Difficulty(f, 3, teams); got != 5 {
		t.Fatalf("expected 5 against strength-5 opponent, got %d", got)
	}
	// Arsenal away at the promoted side.
	if got := Difficulty(f, 1, teams); got != 2 {
		t.Fatalf("expected 2 against strength-2 opponent, got %d", got)
	}
}

func TestDifficultyUnknownOpponentDefaultsMedium(t *testing.T) {
	teams := testTeams()
	f := domain.Fixture{TeamH: 1, TeamA: 77}

	if got := Difficulty(f, 1, teams); got != 3 {
		t.Fatalf("expected medium for unknown opponent, got %d", got)
	}
}

func TestDifficultyTeamNotPlaying(t *testing.T) {
	f := domain.Fixture{TeamH: 1, TeamA: 2}
	if got := Difficulty(f, 9, testTeams()); got != 3 {
		t.Fatalf("expected medium when team is not in fixture, got %d", got)
	}
}

func TestDifficultyClampsLowStrength(t *testing.T) {
	teams := map[int]fplconfig.TeamInfo{4: {Strength: 1}}
	f := domain.Fixture{TeamH: 5, TeamA: 4}
	if got := Difficulty(f, 5, teams); got != 1 {
		t.Fatalf("expected floor of 1, got %d", got)
	}
}

func TestIsBigMatch(t *testing.T) {
	teams := testTeams()

	if !IsBigMatch(domain.Fixture{TeamH: 1, TeamA: 2}, teams) {
		t.Fatalf("expected strength 5 vs 4 to be a big match")
	}
	if IsBigMatch(domain.Fixture{TeamH: 1, TeamA: 3}, teams) {
		t.Fatalf("expected strength 5 vs 2 not to be a big match")
	}
	if IsBigMatch(domain.Fixture{TeamH: 1, TeamA: 77}, teams) {
		t.Fatalf("expected unknown side not to be a big match")
	}
}

func TestDifficultyLabel(t *testing.T) {
	cases := map[int]string{1: "Very Easy", 3: "Medium", 5: "Very Hard", 9: "Unknown"}
	for score, want := range cases {
		if got := DifficultyLabel(score); got != want {
			t.Fatalf("label(%d) = %q, want %q", score, got, want)
		}
	}
}

func TestFilterApply(t *testing.T) {
	all := []domain.Fixture{
		{ID: 1, Event: 1, TeamH: 1, TeamA: 2, Finished: true},
		{ID: 2, Event: 1, TeamH: 3, TeamA: 1},
		{ID: 3, Event: 2, TeamH: 2, TeamA: 3},
	}

	byEvent := Filter{Event: 1}.Apply(all)
	if len(byEvent) != 2 {
		t.Fatalf("expected 2 fixtures in event 1, got %d", len(byEvent))
	}

	byTeam := Filter{Team: 1}.Apply(all)
	if len(byTeam) != 2 {
		t.Fatalf("expected 2 fixtures for team 1, got %d", len(byTeam))
	}

	finished := Filter{FinishedOnly: true}.Apply(all)
	if len(finished) != 1 || finished[0].ID != 1 {
		t.Fatalf("expected only the finished fixture, got %v", finished)
	}

	combined := Filter{Event: 1, Team: 1, FinishedOnly: true}.Apply(all)
	if len(combined) != 1 || combined[0].ID != 1 {
		t.Fatalf("expected combined filters to intersect, got %v", combined)
	}

	if none := (Filter{Event: 99}).Apply(all); none == nil || len(none) != 0 {
		t.Fatalf("expected empty slice for no matches, got %v", none)
	}
}

func TestAnnotate(t *testing.T) {
	teams := testTeams()
	views := Annotate([]domain.Fixture{{ID: 1, Event: 4, TeamH: 1, TeamA: 2}}, teams)

	if len(views) != 1 {
		t.Fatalf("expected one view, got %d", len(views))
	}
	v := views[0]
	if v.HomeDifficulty != 4 || v.AwayDifficulty != 5 {
		t.Fatalf("unexpected difficulties: %+v", v)
	}
	if !v.BigMatch {
		t.Fatalf("expected big match flag")
	}
}

func TestGroupByEvent(t *testing.T) {
	teams := testTeams()
	views := Annotate([]domain.Fixture{
		{ID: 1, Event: 3, TeamH: 1, TeamA: 2},
		{ID: 2, Event: 1, TeamH: 2, TeamA: 3},
		{ID: 3, Event: 3, TeamH: 3, TeamA: 1},
	}, teams)

	events, grouped := GroupByEvent(views)
	if len(events) != 2 || events[0] != 1 || events[1] != 3 {
		t.Fatalf("expected sorted events [1 3], got %v", events)
	}
	if len(grouped[3]) != 2 {
		t.Fatalf("expected 2 fixtures in event 3, got %d", len(grouped[3]))
	}
}
