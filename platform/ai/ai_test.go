package ai

import (
	"testing"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/board"
	"github.com/DedS3t/monopoly-auction/platform/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, money int, props ...string) (*models.GameState, Policy) {
	t.Helper()
	c := board.Standard()
	gs := &models.GameState{
		Players:               []models.PlayerState{{Name: "P1", Money: money}},
		Deeds:                 ledger.NewDeeds(c),
		AvailableImprovements: 32,
	}
	for _, n := range props {
		id, ok := c.ID(n)
		require.True(t, ok, n)
		ledger.Assign(gs, id, 0)
	}
	return gs, Policy{Catalog: c, MortgageRate: 0.5}
}

func level(gs *models.GameState, name string) int {
	id, _ := board.Standard().ID(name)
	return gs.Deeds[id].Level
}

func mortgaged(gs *models.GameState, name string) bool {
	id, _ := board.Standard().ID(name)
	return gs.Deeds[id].Mortgaged
}

func assertEven(t *testing.T, gs *models.GameState, g models.Group) {
	t.Helper()
	lo, hi := ledger.LevelSpread(gs, board.Standard(), g)
	assert.LessOrEqual(t, hi-lo, 1, "group %s", g)
}

func TestBuild_ToMaximum(t *testing.T) {
	gs, p := newGame(t, 1000, "Mediterranean Avenue", "Baltic Avenue")

	res := p.Build(gs, 0)

	assert.Equal(t, 8, res.Built)
	assert.Equal(t, 400, res.Spent)
	assert.Equal(t, 600, gs.Players[0].Money)
	assert.Equal(t, models.MaxLevel, level(gs, "Mediterranean Avenue"))
	assert.Equal(t, models.MaxLevel, level(gs, "Baltic Avenue"))
	assert.Equal(t, 24, gs.AvailableImprovements)
}

func TestBuild_RespectsCashBuffer(t *testing.T) {
	gs, p := newGame(t, 200, "Mediterranean Avenue", "Baltic Avenue")
	p.CashBuffer = 100

	res := p.Build(gs, 0)

	assert.Equal(t, 2, res.Built)
	assert.Equal(t, 100, gs.Players[0].Money)
	assertEven(t, gs, models.Brown)
}

func TestBuild_PriorityAndEvenness(t *testing.T) {
	gs, p := newGame(t, 450, "Mediterranean Avenue", "Baltic Avenue", "Park Place", "Boardwalk")

	p.Build(gs, 0)

	assert.Equal(t, 1, level(gs, "Park Place"))
	assert.Equal(t, 1, level(gs, "Boardwalk"))
	assert.Equal(t, 1, level(gs, "Mediterranean Avenue"))
	assert.Equal(t, 0, level(gs, "Baltic Avenue"))
	assert.Equal(t, 0, gs.Players[0].Money)
	assertEven(t, gs, models.DarkBlue)
	assertEven(t, gs, models.Brown)
}

func TestBuild_ThreeEverywhereBeforeFour(t *testing.T) {
	gs, p := newGame(t, 1000, "Mediterranean Avenue", "Baltic Avenue", "Park Place", "Boardwalk")

	p.Build(gs, 0)

	// 1000 buys three levels on both dark blues (1200) only partially, so
	// brown must still be waiting and nothing may be at four.
	assert.Less(t, level(gs, "Park Place"), models.MaxLevel)
	assert.Less(t, level(gs, "Boardwalk"), models.MaxLevel)
	assertEven(t, gs, models.DarkBlue)
}

func TestBuild_SkipsIncompleteAndMortgagedGroups(t *testing.T) {
	gs, p := newGame(t, 1000, "Mediterranean Avenue", "Oriental Avenue", "Vermont Avenue", "Connecticut Avenue")
	id, _ := board.Standard().ID("Vermont Avenue")
	gs.Deeds[id].Mortgaged = true

	res := p.Build(gs, 0)

	assert.Zero(t, res.Built)
	assert.Equal(t, 1000, gs.Players[0].Money)
}

func TestRaise_MortgagesLooseAssetsMostExpensiveFirst(t *testing.T) {
	gs, p := newGame(t, 0, "Boardwalk", "Baltic Avenue", "Reading Railroad")

	raised := p.Raise(gs, 0, 150)

	assert.Equal(t, 200, raised)
	assert.Equal(t, 200, gs.Players[0].Money)
	assert.True(t, mortgaged(gs, "Boardwalk"))
	assert.False(t, mortgaged(gs, "Baltic Avenue"))
	assert.False(t, mortgaged(gs, "Reading Railroad"))
}

func TestRaise_RailroadsAfterOtherLooseAssets(t *testing.T) {
	gs, p := newGame(t, 0, "Boardwalk", "Baltic Avenue", "Reading Railroad")

	raised := p.Raise(gs, 0, 250)

	assert.Equal(t, 200+30+100, raised)
	assert.True(t, mortgaged(gs, "Baltic Avenue"))
	assert.True(t, mortgaged(gs, "Reading Railroad"))
}

func TestRaise_SellsImprovementsEvenly(t *testing.T) {
	gs, p := newGame(t, 0, "Mediterranean Avenue", "Baltic Avenue")
	med, _ := board.Standard().ID("Mediterranean Avenue")
	bal, _ := board.Standard().ID("Baltic Avenue")
	gs.Deeds[med].Level = 2
	gs.Deeds[bal].Level = 2

	raised := p.Raise(gs, 0, 60)

	assert.Equal(t, 75, raised)
	assert.Equal(t, 75, gs.Players[0].Money)
	assert.Equal(t, 1, level(gs, "Mediterranean Avenue")+level(gs, "Baltic Avenue"))
	assertEven(t, gs, models.Brown)
	assert.False(t, mortgaged(gs, "Mediterranean Avenue"))
}

func TestRaise_EncumbersCompleteGroupsLast(t *testing.T) {
	gs, p := newGame(t, 0, "Mediterranean Avenue", "Baltic Avenue", "Electric Company", "Water Works")
	med, _ := board.Standard().ID("Mediterranean Avenue")
	gs.Deeds[med].Level = 1

	raised := p.Raise(gs, 0, 10000)

	// 25 for the house, 30 + 30 for brown, 75 + 75 for the utilities
	assert.Equal(t, 235, raised)
	assert.True(t, mortgaged(gs, "Mediterranean Avenue"))
	assert.True(t, mortgaged(gs, "Water Works"))
	assert.Equal(t, 33, gs.AvailableImprovements)
}
