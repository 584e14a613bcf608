package board

import (
	"testing"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandard_GroupSizes(t *testing.T) {
	c := Standard()
	sizes := map[models.Group]int{
		models.Brown:     2,
		models.LightBlue: 3,
		models.Pink:      3,
		models.Orange:    3,
		models.Red:       3,
		models.Yellow:    3,
		models.Green:     3,
		models.DarkBlue:  2,
		models.Railroad:  4,
		models.Utility:   2,
	}
	total := 0
	for g, n := range sizes {
		assert.Equal(t, n, c.GroupSize(g), "group %s", g)
		total += n
	}
	assert.Len(t, c.Properties, total)
	assert.Equal(t, 40, c.BoardLen())
	assert.Equal(t, 10, c.JailPosition())
}

func TestStandard_Lookups(t *testing.T) {
	c := Standard()

	p, err := c.GetByName("Boardwalk")
	require.NoError(t, err)
	assert.Equal(t, models.DarkBlue, p.Group)
	assert.Equal(t, 400, p.Price)
	assert.Equal(t, 2000, p.HotelRent)

	_, err = c.GetByName("Atlantis")
	assert.ErrorIs(t, err, ErrNotFound)

	s, err := c.GetByPos(30)
	require.NoError(t, err)
	assert.Equal(t, models.SpaceGoToJail, s.Type)

	s, err = c.GetByPos(39)
	require.NoError(t, err)
	assert.Equal(t, "Boardwalk", s.Name)

	_, err = c.GetByPos(40)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewCatalog_RejectsUnknownPropertySpace(t *testing.T) {
	_, err := NewCatalog(
		[]models.Property{{Name: "A", Group: models.Brown}},
		[]models.Space{
			{Name: "Go", Type: models.SpaceGo, Posistion: 0},
			{Name: "B", Type: models.SpaceProperty, Posistion: 1},
			{Name: "Jail", Type: models.SpaceJail, Posistion: 2},
		},
	)
	assert.Error(t, err)
}

func TestBuildPriority_CoversColourGroups(t *testing.T) {
	c := Standard()
	for _, g := range BuildPriority {
		require.NotEmpty(t, c.GroupMembers(g))
		assert.True(t, c.Properties[c.GroupMembers(g)[0]].Buildable())
	}
	assert.False(t, c.Properties[c.GroupMembers(models.Railroad)[0]].Buildable())
}
