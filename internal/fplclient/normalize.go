package fplclient

import "fpl-insights-service/internal/domain"

// NormalizeBootstrap fills defaults for fields the upstream sometimes omits
// so an absent field can never surface as a nil dereference downstream.
// Returns the number of records that needed patching.
func NormalizeBootstrap(b *domain.Bootstrap) int {
	if b.Events == nil {
		b.Events = []domain.Event{}
	}
	if b.Teams == nil {
		b.Teams = []domain.Team{}
	}
	if b.ElementTypes == nil {
		b.ElementTypes = []domain.PositionType{}
	}
	if b.Elements == nil {
		b.Elements = []domain.Player{}
	}

	patched := 0
	for i := range b.Elements {
		if normalizePlayer(&b.Elements[i]) {
			patched++
		}
	}
	return patched
}

func normalizePlayer(p *domain.Player) bool {
	patched := false
	if p.Form == "" {
		p.Form = "0"
		patched = true
	}
	if p.PointsPerGame == "" {
		p.PointsPerGame = "0"
		patched = true
	}
	if p.SelectedByPercent == "" {
		p.SelectedByPercent = "0"
		patched = true
	}
	if p.WebName == "" {
		p.WebName = p.SecondName
		patched = true
	}
	return patched
}
