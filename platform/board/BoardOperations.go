package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/DedS3t/monopoly-auction/app/models"
)

//go:embed properties.json
var propertiesJSON []byte

//go:embed spaces.json
var spacesJSON []byte

var ErrNotFound = errors.New("not found")

// BuildPriority is the order complete groups are developed in, most valuable first.
var BuildPriority = []models.Group{
	models.DarkBlue,
	models.Green,
	models.Yellow,
	models.Red,
	models.Orange,
	models.Pink,
	models.LightBlue,
	models.Brown,
}

// Catalog is the immutable table of assets and board spaces. Asset ids are
// indexes into Properties.
type Catalog struct {
	Properties []models.Property
	Spaces     []models.Space

	byName  map[string]int
	byGroup map[models.Group][]int
	jail    int
}

var (
	standard     *Catalog
	standardOnce sync.Once
)

// Standard returns the classic board. It is built once and never mutated.
func Standard() *Catalog {
	standardOnce.Do(func() {
		c, err := LoadProperties(propertiesJSON, spacesJSON)
		if err != nil {
			panic(err)
		}
		standard = c
	})
	return standard
}

func LoadProperties(propertiesRaw, spacesRaw []byte) (*Catalog, error) {
	var properties []models.Property
	if err := json.Unmarshal(propertiesRaw, &properties); err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}
	var spaces []models.Space
	if err := json.Unmarshal(spacesRaw, &spaces); err != nil {
		return nil, fmt.Errorf("spaces: %w", err)
	}
	return NewCatalog(properties, spaces)
}

func NewCatalog(properties []models.Property, spaces []models.Space) (*Catalog, error) {
	c := &Catalog{
		Properties: properties,
		Spaces:     spaces,
		byName:     make(map[string]int, len(properties)),
		byGroup:    make(map[models.Group][]int),
		jail:       -1,
	}
	for id, p := range properties {
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate property %q", p.Name)
		}
		c.byName[p.Name] = id
		c.byGroup[p.Group] = append(c.byGroup[p.Group], id)
	}
	for pos, s := range spaces {
		if s.Posistion != pos {
			return nil, fmt.Errorf("space %q listed at %d but positioned at %d", s.Name, pos, s.Posistion)
		}
		switch s.Type {
		case models.SpaceProperty:
			if _, ok := c.byName[s.Name]; !ok {
				return nil, fmt.Errorf("space %q is not a known property", s.Name)
			}
		case models.SpaceJail:
			c.jail = pos
		}
	}
	if c.jail < 0 {
		return nil, errors.New("board has no jail")
	}
	return c, nil
}

func (c *Catalog) ID(name string) (int, bool) {
	id, ok := c.byName[name]
	return id, ok
}

func (c *Catalog) GetByName(name string) (models.Property, error) {
	id, ok := c.byName[name]
	if !ok {
		return models.Property{}, ErrNotFound
	}
	return c.Properties[id], nil
}

func (c *Catalog) GetByPos(pos int) (models.Space, error) {
	if pos < 0 || pos >= len(c.Spaces) {
		return models.Space{}, ErrNotFound
	}
	return c.Spaces[pos], nil
}

// GroupMembers returns the asset ids of a group in catalog order.
func (c *Catalog) GroupMembers(g models.Group) []int {
	return c.byGroup[g]
}

func (c *Catalog) GroupSize(g models.Group) int {
	return len(c.byGroup[g])
}

func (c *Catalog) Names() []string {
	names := make([]string, len(c.Properties))
	for i, p := range c.Properties {
		names[i] = p.Name
	}
	return names
}

func (c *Catalog) BoardLen() int { return len(c.Spaces) }

func (c *Catalog) JailPosition() int { return c.jail }
