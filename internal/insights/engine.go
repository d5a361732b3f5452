// Package insights derives ranked and filtered analytical views from the
// bootstrap player collections. Everything here is pure computation over
// already-fetched data: no state, no network, no clock. All sorts are
// stable, so ties keep the upstream input order and repeated calls over the
// same input produce identical output.
package insights

import "sort"

// Bucket sizes and thresholds for the derived views.
const (
	topFormLimit      = 5
	differentialLimit = 5
	valuePickLimit    = 5
	captainLimit      = 5
	templateLimit     = 8
	transferLimit     = 5

	differentialMaxOwnership = 10
	differentialMinForm      = 4
	valueMinPoints           = 20
	// Excludes unused bench fodder priced at the floor.
	valueMinCostTenths   = 40
	captainMinForm       = 4
	captainMinOwnership  = 5
	templateMinOwnership = 20
	risingMinTrend       = 1
	risingMaxOwnership   = 15
)

// Dashboard is the primary insight view: the ranked buckets shown on the
// landing surface plus summary figures.
type Dashboard struct {
	TopForm           []Player `json:"topForm"`
	Differentials     []Player `json:"differentials"`
	ValuePicks        []Player `json:"valuePicks"`
	CaptainCandidates []Player `json:"captainCandidates"`
	TemplateTeam      []Player `json:"templateTeam"`

	TotalPlayers  int     `json:"totalPlayers"`
	AveragePrice  float64 `json:"averagePrice"`
	MostExpensive *Player `json:"mostExpensive,omitempty"`
}

// BuildDashboard computes every dashboard bucket from the enriched players.
func BuildDashboard(players []Player) Dashboard {
	d := Dashboard{
		TopForm:           TopForm(players, topFormLimit),
		Differentials:     Differentials(players, differentialLimit),
		ValuePicks:        ValuePicks(players, valuePickLimit),
		CaptainCandidates: CaptainCandidates(players, captainLimit),
		TemplateTeam:      TemplateTeam(players, templateLimit),
		TotalPlayers:      len(players),
	}

	if len(players) == 0 {
		return d
	}

	total := 0.0
	max := players[0]
	for _, p := range players {
		total += p.CostMillions
		if p.CostMillions > max.CostMillions {
			max = p
		}
	}
	d.AveragePrice = total / float64(len(players))
	d.MostExpensive = &max
	return d
}

// TopForm returns players with positive form, best form first.
func TopForm(players []Player, limit int) []Player {
	picked := filterPlayers(players, func(p Player) bool { return p.Form > 0 })
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Form > picked[j].Form })
	return truncate(picked, limit)
}

// Differentials returns low-ownership players in strong form: crowd-beating
// picks with rank-gain potential.
func Differentials(players []Player, limit int) []Player {
	picked := filterPlayers(players, func(p Player) bool {
		return p.Ownership < differentialMaxOwnership && p.Form > differentialMinForm
	})
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Form > picked[j].Form })
	return truncate(picked, limit)
}

// ValuePicks ranks established players by points per million.
func ValuePicks(players []Player, limit int) []Player {
	picked := filterPlayers(players, func(p Player) bool {
		return p.TotalPoints > valueMinPoints && p.NowCost > valueMinCostTenths
	})
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].ValueEfficiency > picked[j].ValueEfficiency
	})
	return truncate(picked, limit)
}

// CaptainCandidates ranks in-form, reasonably owned players by expected
// captaincy return (form times points per game).
func CaptainCandidates(players []Player, limit int) []Player {
	picked := filterPlayers(players, func(p Player) bool {
		return p.Form > captainMinForm && p.Ownership > captainMinOwnership
	})
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].Form*picked[i].PointsPerGame > picked[j].Form*picked[j].PointsPerGame
	})
	return truncate(picked, limit)
}

// TemplateTeam returns the most widely owned players, highest ownership
// first.
func TemplateTeam(players []Player, limit int) []Player {
	picked := filterPlayers(players, func(p Player) bool { return p.Ownership > templateMinOwnership })
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Ownership > picked[j].Ownership })
	return truncate(picked, limit)
}

// TransferTrends captures this-gameweek transfer momentum.
type TransferTrends struct {
	Hottest     []Player `json:"hottest"`
	Coldest     []Player `json:"coldest"`
	RisingStars []Player `json:"risingStars"`
}

// BuildTransferTrends derives transfer momentum: the most bought and most
// sold players this gameweek, and low-ownership players whose form is
// outrunning their season average.
func BuildTransferTrends(players []Player) TransferTrends {
	hottest := filterPlayers(players, func(p Player) bool { return p.TransfersInEvent > 0 })
	sort.SliceStable(hottest, func(i, j int) bool {
		return hottest[i].TransfersInEvent > hottest[j].TransfersInEvent
	})

	coldest := filterPlayers(players, func(p Player) bool { return p.TransfersOutEvent > 0 })
	sort.SliceStable(coldest, func(i, j int) bool {
		return coldest[i].TransfersOutEvent > coldest[j].TransfersOutEvent
	})

	rising := filterPlayers(players, func(p Player) bool {
		return p.FormTrend > risingMinTrend && p.Ownership < risingMaxOwnership
	})
	sort.SliceStable(rising, func(i, j int) bool { return rising[i].FormTrend > rising[j].FormTrend })

	return TransferTrends{
		Hottest:     truncate(hottest, transferLimit),
		Coldest:     truncate(coldest, transferLimit),
		RisingStars: truncate(rising, transferLimit),
	}
}

// FormOwnershipMatrix places players into form-vs-ownership quadrants. The
// thresholds make the quadrants mutually exclusive; a player may match none.
type FormOwnershipMatrix struct {
	HiddenGems     []Player `json:"hiddenGems"`
	Bandwagons     []Player `json:"bandwagons"`
	ConsensusPicks []Player `json:"consensusPicks"`
	AvoidList      []Player `json:"avoidList"`
}

// BuildFormOwnershipMatrix derives the four quadrants.
func BuildFormOwnershipMatrix(players []Player) FormOwnershipMatrix {
	return FormOwnershipMatrix{
		HiddenGems:     filterPlayers(players, func(p Player) bool { return p.Form > 5 && p.Ownership < 5 }),
		Bandwagons:     filterPlayers(players, func(p Player) bool { return p.Form < 3 && p.Ownership > 30 }),
		ConsensusPicks: filterPlayers(players, func(p Player) bool { return p.Form > 5 && p.Ownership > 30 }),
		AvoidList:      filterPlayers(players, func(p Player) bool { return p.Form < 2 && p.Ownership < 5 }),
	}
}

// RiskTiers buckets players by availability and form trajectory.
type RiskTiers struct {
	High     []Player `json:"high"`
	Moderate []Player `json:"moderate"`
	Low      []Player `json:"low"`
}

// BuildRiskTiers derives the three tiers: high for doubtful availability or
// a sharply declining trend, low for fully available proven players on a
// flat-or-rising trend, moderate for the remainder with any irregularity.
func BuildRiskTiers(players []Player) RiskTiers {
	return RiskTiers{
		High: filterPlayers(players, func(p Player) bool {
			return p.Risk == InjuryRiskHigh || p.FormTrend < -2
		}),
		Moderate: filterPlayers(players, func(p Player) bool {
			return p.Risk == InjuryRiskMedium || (p.FormTrend >= -2 && p.FormTrend <= 2)
		}),
		Low: filterPlayers(players, func(p Player) bool {
			return p.Risk == InjuryRiskLow && p.FormTrend >= 0 && p.TotalPoints > 50
		}),
	}
}

// PriceClusters groups players by price band against output.
type PriceClusters struct {
	PremiumPerformers []Player `json:"premiumPerformers"`
	MidRangeValue     []Player `json:"midRangeValue"`
	BudgetGems        []Player `json:"budgetGems"`
	Overpriced        []Player `json:"overpriced"`
}

// BuildPriceClusters derives the price-vs-performance clusters.
func BuildPriceClusters(players []Player) PriceClusters {
	return PriceClusters{
		PremiumPerformers: filterPlayers(players, func(p Player) bool {
			return p.CostMillions > 10 && p.TotalPoints > 80
		}),
		MidRangeValue: filterPlayers(players, func(p Player) bool {
			return p.CostMillions > 6 && p.CostMillions <= 10 && p.ValueEfficiency > 10
		}),
		BudgetGems: filterPlayers(players, func(p Player) bool {
			return p.CostMillions <= 6 && p.TotalPoints > 40
		}),
		Overpriced: filterPlayers(players, func(p Player) bool {
			return p.CostMillions > 8 && p.ValueEfficiency < 8
		}),
	}
}

// PositionInsight summarizes one position's market.
type PositionInsight struct {
	ID           int     `json:"id"`
	Short        string  `json:"short"`
	TotalPlayers int     `json:"totalPlayers"`
	AvgPrice     float64 `json:"avgPrice"`
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
	TopPerformer *Player `json:"topPerformer,omitempty"`
}

// Market is the full analytical view behind the insights surface.
type Market struct {
	TransferTrends      TransferTrends      `json:"transferTrends"`
	FormOwnershipMatrix FormOwnershipMatrix `json:"formOwnershipMatrix"`
	PriceClusters       PriceClusters       `json:"priceClusters"`
	PositionInsights    []PositionInsight   `json:"positionInsights"`
	RiskTiers           RiskTiers           `json:"riskTiers"`

	TotalPlayers int     `json:"totalPlayers"`
	MarketCap    float64 `json:"marketCap"`
}

// BuildMarket computes every market-analysis view in one pass over the
// enriched players.
func BuildMarket(players []Player) Market {
	m := Market{
		TransferTrends:      BuildTransferTrends(players),
		FormOwnershipMatrix: BuildFormOwnershipMatrix(players),
		PriceClusters:       BuildPriceClusters(players),
		PositionInsights:    buildPositionInsights(players),
		RiskTiers:           BuildRiskTiers(players),
		TotalPlayers:        len(players),
	}
	for _, p := range players {
		m.MarketCap += p.CostMillions
	}
	return m
}

func buildPositionInsights(players []Player) []PositionInsight {
	grouped := make(map[string][]Player)
	order := []string{}
	for _, p := range players {
		if _, seen := grouped[p.PositionShort]; !seen {
			order = append(order, p.PositionShort)
		}
		grouped[p.PositionShort] = append(grouped[p.PositionShort], p)
	}

	insights := make([]PositionInsight, 0, len(order))
	for _, short := range order {
		group := grouped[short]
		pi := PositionInsight{
			Short:        short,
			TotalPlayers: len(group),
			MinPrice:     group[0].CostMillions,
			MaxPrice:     group[0].CostMillions,
		}
		pi.ID = group[0].ElementType

		total := 0.0
		top := group[0]
		for _, p := range group {
			total += p.CostMillions
			if p.CostMillions < pi.MinPrice {
				pi.MinPrice = p.CostMillions
			}
			if p.CostMillions > pi.MaxPrice {
				pi.MaxPrice = p.CostMillions
			}
			if p.TotalPoints > top.TotalPoints {
				top = p
			}
		}
		pi.AvgPrice = total / float64(len(group))
		pi.TopPerformer = &top
		insights = append(insights, pi)
	}
	return insights
}

func filterPlayers(players []Player, keep func(Player) bool) []Player {
	out := []Player{}
	for _, p := range players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func truncate(players []Player, limit int) []Player {
	if limit > 0 && len(players) > limit {
		return players[:limit]
	}
	return players
}
