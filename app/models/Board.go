package models

type Group string

const (
	Brown     Group = "brown"
	LightBlue Group = "lightBlue"
	Pink      Group = "pink"
	Orange    Group = "orange"
	Red       Group = "red"
	Yellow    Group = "yellow"
	Green     Group = "green"
	DarkBlue  Group = "darkBlue"
	Railroad  Group = "railroad"
	Utility   Group = "utility"
)

// MaxLevel is the hotel-equivalent improvement level.
const MaxLevel = 4

type Property struct {
	Name      string `json:"name"`
	Group     Group  `json:"group"`
	Price     int    `json:"price"`
	BaseRent  int    `json:"baserent"`
	HouseRent [4]int `json:"houserent"`
	HotelRent int    `json:"hotelrent"`
	HouseCost int    `json:"housecost"`
}

// Buildable reports whether improvements can ever be placed on the property.
func (p Property) Buildable() bool {
	return p.Group != Railroad && p.Group != Utility
}

type SpaceType string

const (
	SpaceGo          SpaceType = "go"
	SpaceProperty    SpaceType = "property"
	SpaceChest       SpaceType = "chest"
	SpaceChance      SpaceType = "chance"
	SpaceIncomeTax   SpaceType = "income-tax"
	SpaceLuxuryTax   SpaceType = "luxury-tax"
	SpaceJail        SpaceType = "jail"
	SpaceFreeParking SpaceType = "free-parking"
	SpaceGoToJail    SpaceType = "go-to-jail"
)

type Space struct {
	Name      string    `json:"name"`
	Type      SpaceType `json:"type"`
	Posistion int       `json:"posistion"`
}
