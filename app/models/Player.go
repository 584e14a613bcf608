package models

// Player is a participant registered in a game room.
type Player struct {
	User_id  string
	Game_id  string
	Username string
	Active   string
}

type PlayerState struct {
	Name          string `json:"name"`
	Money         int    `json:"money"`
	Position      int    `json:"position"`
	JailTurns     int    `json:"jailTurns"`
	JailFreeCards int    `json:"jailFreeCards"`
}

// Deed is the per-asset record of the ownership arena, indexed by asset id.
type Deed struct {
	Owner     int  `json:"owner"` // player index, NoOwner when unowned
	Level     int  `json:"level"`
	Mortgaged bool `json:"mortgaged"`
}

const NoOwner = -1

// GroupHolding is the view of what one player holds inside one group.
type GroupHolding struct {
	Group     Group           `json:"group"`
	Owned     []string        `json:"owned"`
	Complete  bool            `json:"complete"`
	Levels    map[string]int  `json:"levels"`
	Mortgaged map[string]bool `json:"mortgaged"`
}

// PlayerStart is one participant's entry in a starting assignment.
type PlayerStart struct {
	Name       string   `json:"name"`
	Money      int      `json:"money"`
	Properties []string `json:"properties"`
}

// Assignment is the ordered ownership hand-off from the auction to the simulator.
// Order is turn order.
type Assignment []PlayerStart
