package ai

import (
	"sort"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/board"
	"github.com/DedS3t/monopoly-auction/platform/ledger"
)

// Policy is the deterministic money management used for every simulated player.
type Policy struct {
	Catalog      *board.Catalog
	CashBuffer   int
	MortgageRate float64
}

type BuildResult struct {
	Spent int
	Built int
}

// Build develops the player's complete groups: every group is evened up to
// three levels first, then taken to the maximum, never dipping below the cash buffer.
func (p Policy) Build(gs *models.GameState, player int) BuildResult {
	var res BuildResult

	for _, g := range board.BuildPriority {
		res.add(p.buildGroup(gs, player, g, 3))
	}
	for _, g := range board.BuildPriority {
		if lo, _ := ledger.LevelSpread(gs, p.Catalog, g); lo < 3 {
			continue
		}
		res.add(p.buildGroup(gs, player, g, models.MaxLevel))
	}
	return res
}

func (r *BuildResult) add(o BuildResult) {
	r.Spent += o.Spent
	r.Built += o.Built
}

func (p Policy) buildGroup(gs *models.GameState, player int, g models.Group, ceiling int) BuildResult {
	var res BuildResult
	if !ledger.IsComplete(gs, p.Catalog, player, g) {
		return res
	}
	for {
		target := -1
		for _, id := range p.Catalog.GroupMembers(g) {
			if gs.Deeds[id].Level >= ceiling || !ledger.CanBuild(gs, p.Catalog, id) {
				continue
			}
			if target < 0 || gs.Deeds[id].Level < gs.Deeds[target].Level {
				target = id
			}
		}
		if target < 0 {
			return res
		}
		if gs.Players[player].Money-p.Catalog.Properties[target].HouseCost < p.CashBuffer {
			return res
		}
		cost, err := ledger.Build(gs, p.Catalog, target)
		if err != nil {
			return res
		}
		res.Spent += cost
		res.Built++
	}
}

// Raise tries to cover a shortfall, crediting the player as it goes, and
// returns how much it raised. Order: mortgage loose assets (priciest first,
// railroads last), sell improvements from the cheapest groups, then mortgage
// complete groups.
func (p Policy) Raise(gs *models.GameState, player int, needed int) int {
	raised := 0

	var loose, looseRailroads []int
	for id, d := range gs.Deeds {
		if d.Owner != player || d.Mortgaged {
			continue
		}
		prop := p.Catalog.Properties[id]
		if ledger.IsComplete(gs, p.Catalog, player, prop.Group) {
			continue
		}
		if prop.Group == models.Railroad {
			looseRailroads = append(looseRailroads, id)
		} else {
			loose = append(loose, id)
		}
	}
	sort.SliceStable(loose, func(i, j int) bool {
		return p.Catalog.Properties[loose[i]].Price > p.Catalog.Properties[loose[j]].Price
	})

	for _, id := range append(loose, looseRailroads...) {
		if raised >= needed {
			return raised
		}
		raised += ledger.Mortgage(gs, p.Catalog, id, p.MortgageRate)
	}

	for i := len(board.BuildPriority) - 1; i >= 0 && raised < needed; i-- {
		raised += p.sellGroup(gs, player, board.BuildPriority[i], needed-raised)
	}

	groups := make([]models.Group, 0, len(board.BuildPriority)+2)
	for i := len(board.BuildPriority) - 1; i >= 0; i-- {
		groups = append(groups, board.BuildPriority[i])
	}
	groups = append(groups, models.Railroad, models.Utility)
	for _, g := range groups {
		if !ledger.IsComplete(gs, p.Catalog, player, g) {
			continue
		}
		for _, id := range p.Catalog.GroupMembers(g) {
			if raised >= needed {
				return raised
			}
			raised += ledger.Mortgage(gs, p.Catalog, id, p.MortgageRate)
		}
	}
	return raised
}

// sellGroup strips improvements off one complete group, always from the most
// improved asset, until the shortfall is covered or nothing is left.
func (p Policy) sellGroup(gs *models.GameState, player int, g models.Group, needed int) int {
	raised := 0
	if !ledger.IsComplete(gs, p.Catalog, player, g) {
		return 0
	}
	for raised < needed {
		target := -1
		for _, id := range p.Catalog.GroupMembers(g) {
			if !ledger.CanSell(gs, p.Catalog, id) {
				continue
			}
			if target < 0 || gs.Deeds[id].Level > gs.Deeds[target].Level {
				target = id
			}
		}
		if target < 0 {
			return raised
		}
		proceeds, err := ledger.SellImprovement(gs, p.Catalog, target)
		if err != nil {
			return raised
		}
		raised += proceeds
	}
	return raised
}
