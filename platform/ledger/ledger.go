// Package ledger owns the deed arena of a game: who holds which asset, at what
// improvement level, and whether it is mortgaged. Group completeness is always
// derived from the arena, never stored.
package ledger

import (
	"errors"
	"math"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/board"
)

var (
	ErrNotBuildable = errors.New("improvement not allowed")
	ErrNotSellable  = errors.New("no improvement can be sold")
)

// NewDeeds returns an arena with every asset unowned.
func NewDeeds(c *board.Catalog) []models.Deed {
	deeds := make([]models.Deed, len(c.Properties))
	for i := range deeds {
		deeds[i].Owner = models.NoOwner
	}
	return deeds
}

func Owner(gs *models.GameState, id int) int {
	return gs.Deeds[id].Owner
}

// OwnedIn returns the ids the player holds inside a group, in catalog order.
func OwnedIn(gs *models.GameState, c *board.Catalog, player int, g models.Group) []int {
	var ids []int
	for _, id := range c.GroupMembers(g) {
		if gs.Deeds[id].Owner == player {
			ids = append(ids, id)
		}
	}
	return ids
}

func IsComplete(gs *models.GameState, c *board.Catalog, player int, g models.Group) bool {
	size := c.GroupSize(g)
	return size > 0 && len(OwnedIn(gs, c, player, g)) == size
}

func groupMortgaged(gs *models.GameState, c *board.Catalog, g models.Group) bool {
	for _, id := range c.GroupMembers(g) {
		if gs.Deeds[id].Mortgaged {
			return true
		}
	}
	return false
}

func groupImproved(gs *models.GameState, c *board.Catalog, g models.Group) bool {
	for _, id := range c.GroupMembers(g) {
		if gs.Deeds[id].Level > 0 {
			return true
		}
	}
	return false
}

// LevelSpread returns the lowest and highest improvement level across a group.
func LevelSpread(gs *models.GameState, c *board.Catalog, g models.Group) (int, int) {
	lo, hi := models.MaxLevel, 0
	for _, id := range c.GroupMembers(g) {
		l := gs.Deeds[id].Level
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}
	return lo, hi
}

// CanBuild reports whether one more level can go on the asset without
// breaking the even-building rule.
func CanBuild(gs *models.GameState, c *board.Catalog, id int) bool {
	p := c.Properties[id]
	d := gs.Deeds[id]
	if !p.Buildable() || d.Owner == models.NoOwner || d.Mortgaged || d.Level >= models.MaxLevel {
		return false
	}
	if gs.AvailableImprovements <= 0 {
		return false
	}
	if !IsComplete(gs, c, d.Owner, p.Group) || groupMortgaged(gs, c, p.Group) {
		return false
	}
	lo, _ := LevelSpread(gs, c, p.Group)
	return d.Level == lo
}

// Build adds one improvement level, charging the owner the house cost.
func Build(gs *models.GameState, c *board.Catalog, id int) (int, error) {
	if !CanBuild(gs, c, id) {
		return 0, ErrNotBuildable
	}
	cost := c.Properties[id].HouseCost
	d := &gs.Deeds[id]
	d.Level++
	gs.AvailableImprovements--
	gs.Players[d.Owner].Money -= cost
	return cost, nil
}

func CanSell(gs *models.GameState, c *board.Catalog, id int) bool {
	d := gs.Deeds[id]
	if d.Owner == models.NoOwner || d.Level == 0 {
		return false
	}
	_, hi := LevelSpread(gs, c, c.Properties[id].Group)
	return d.Level == hi
}

// SellImprovement removes one level for half the house cost.
func SellImprovement(gs *models.GameState, c *board.Catalog, id int) (int, error) {
	if !CanSell(gs, c, id) {
		return 0, ErrNotSellable
	}
	proceeds := c.Properties[id].HouseCost / 2
	d := &gs.Deeds[id]
	d.Level--
	gs.AvailableImprovements++
	gs.Players[d.Owner].Money += proceeds
	return proceeds, nil
}

// Mortgage encumbers the asset and credits its owner. It returns zero when the
// asset is already mortgaged or its group still carries improvements.
func Mortgage(gs *models.GameState, c *board.Catalog, id int, rate float64) int {
	d := &gs.Deeds[id]
	p := c.Properties[id]
	if d.Owner == models.NoOwner || d.Mortgaged || groupImproved(gs, c, p.Group) {
		return 0
	}
	value := int(math.Floor(float64(p.Price) * rate))
	d.Mortgaged = true
	gs.Players[d.Owner].Money += value
	return value
}

// Assign gives an unowned asset to a player.
func Assign(gs *models.GameState, id, player int) {
	gs.Deeds[id] = models.Deed{Owner: player}
}

// TransferAll hands every deed of one player to another, improvements and
// mortgages included.
func TransferAll(gs *models.GameState, from, to int) {
	for i := range gs.Deeds {
		if gs.Deeds[i].Owner == from {
			gs.Deeds[i].Owner = to
		}
	}
}

// Release returns every deed of a player to the bank. Improvements go back to
// the pool.
func Release(gs *models.GameState, from int) {
	for i := range gs.Deeds {
		if gs.Deeds[i].Owner == from {
			gs.AvailableImprovements += gs.Deeds[i].Level
			gs.Deeds[i] = models.Deed{Owner: models.NoOwner}
		}
	}
}

// Holdings derives the group to holding view for one player.
func Holdings(gs *models.GameState, c *board.Catalog, player int) map[models.Group]models.GroupHolding {
	out := make(map[models.Group]models.GroupHolding)
	for id, d := range gs.Deeds {
		if d.Owner != player {
			continue
		}
		p := c.Properties[id]
		h, ok := out[p.Group]
		if !ok {
			h = models.GroupHolding{
				Group:     p.Group,
				Complete:  IsComplete(gs, c, player, p.Group),
				Levels:    make(map[string]int),
				Mortgaged: make(map[string]bool),
			}
		}
		h.Owned = append(h.Owned, p.Name)
		h.Levels[p.Name] = d.Level
		h.Mortgaged[p.Name] = d.Mortgaged
		out[p.Group] = h
	}
	return out
}
