package ledger

import (
	"testing"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(c *board.Catalog, money ...int) *models.GameState {
	gs := &models.GameState{
		Deeds:                 NewDeeds(c),
		AvailableImprovements: 32,
	}
	for i, m := range money {
		gs.Players = append(gs.Players, models.PlayerState{Name: string(rune('A' + i)), Money: m})
	}
	return gs
}

func give(t *testing.T, gs *models.GameState, c *board.Catalog, player int, names ...string) []int {
	t.Helper()
	ids := make([]int, 0, len(names))
	for _, n := range names {
		id, ok := c.ID(n)
		require.True(t, ok, n)
		Assign(gs, id, player)
		ids = append(ids, id)
	}
	return ids
}

func TestIsComplete(t *testing.T) {
	c := board.Standard()
	gs := newState(c, 1000, 1000)
	give(t, gs, c, 0, "Mediterranean Avenue")
	assert.False(t, IsComplete(gs, c, 0, models.Brown))

	give(t, gs, c, 0, "Baltic Avenue")
	assert.True(t, IsComplete(gs, c, 0, models.Brown))
	assert.False(t, IsComplete(gs, c, 1, models.Brown))

	h := Holdings(gs, c, 0)
	require.Contains(t, h, models.Brown)
	assert.True(t, h[models.Brown].Complete)
	assert.ElementsMatch(t, []string{"Mediterranean Avenue", "Baltic Avenue"}, h[models.Brown].Owned)
}

func TestBuild_EvenRule(t *testing.T) {
	c := board.Standard()
	gs := newState(c, 1000)
	ids := give(t, gs, c, 0, "Oriental Avenue", "Vermont Avenue", "Connecticut Avenue")

	_, err := Build(gs, c, ids[0])
	require.NoError(t, err)
	_, err = Build(gs, c, ids[0])
	assert.ErrorIs(t, err, ErrNotBuildable)

	_, err = Build(gs, c, ids[1])
	require.NoError(t, err)
	_, err = Build(gs, c, ids[2])
	require.NoError(t, err)

	lo, hi := LevelSpread(gs, c, models.LightBlue)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 1, hi)
	assert.Equal(t, 1000-3*50, gs.Players[0].Money)
	assert.Equal(t, 29, gs.AvailableImprovements)

	// selling must come off the highest level first
	_, err = Build(gs, c, ids[0])
	require.NoError(t, err)
	_, err = SellImprovement(gs, c, ids[1])
	assert.ErrorIs(t, err, ErrNotSellable)
	got, err := SellImprovement(gs, c, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 25, got)
}

func TestBuild_BlockedByMortgageAndPool(t *testing.T) {
	c := board.Standard()
	gs := newState(c, 1000)
	ids := give(t, gs, c, 0, "Park Place", "Boardwalk")

	assert.Equal(t, 175, Mortgage(gs, c, ids[0], 0.5))
	assert.False(t, CanBuild(gs, c, ids[1]), "group has an encumbered asset")
	assert.False(t, CanBuild(gs, c, ids[0]), "asset is encumbered")

	gs.Deeds[ids[0]].Mortgaged = false
	gs.AvailableImprovements = 0
	assert.False(t, CanBuild(gs, c, ids[0]))
}

func TestMortgage_RefusedWithImprovements(t *testing.T) {
	c := board.Standard()
	gs := newState(c, 1000)
	ids := give(t, gs, c, 0, "Mediterranean Avenue", "Baltic Avenue")
	_, err := Build(gs, c, ids[0])
	require.NoError(t, err)

	assert.Zero(t, Mortgage(gs, c, ids[1], 0.5))
	assert.False(t, gs.Deeds[ids[1]].Mortgaged)
}

func TestTransferAndRelease(t *testing.T) {
	c := board.Standard()
	gs := newState(c, 0, 0, 0)
	ids := give(t, gs, c, 0, "Mediterranean Avenue", "Baltic Avenue")
	_, err := Build(gs, c, ids[0])
	require.NoError(t, err)

	TransferAll(gs, 0, 1)
	assert.Equal(t, 1, Owner(gs, ids[0]))
	assert.Equal(t, 1, gs.Deeds[ids[0]].Level)
	assert.True(t, IsComplete(gs, c, 1, models.Brown))

	Release(gs, 1)
	assert.Equal(t, models.NoOwner, Owner(gs, ids[0]))
	assert.Equal(t, 0, gs.Deeds[ids[0]].Level)
	assert.Equal(t, 32, gs.AvailableImprovements)
}
