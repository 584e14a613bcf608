package models

type Game struct {
	Id     string
	Name   string
	Status string
	Type   string
}

type GameCreateDto struct {
	Name string
	Type string
}

type VerifyGameDto struct {
	Code    string
	User_id string
}

type Outcome string

const (
	OutcomeOngoing   Outcome = "ongoing"
	OutcomeWin       Outcome = "win"
	OutcomeDraw      Outcome = "draw"
	OutcomeTurnLimit Outcome = "turn_limit"
)

// Draw is the winner value recorded when no participant survives.
const Draw = "draw"

type GameState struct {
	Players               []PlayerState `json:"players"`
	Deeds                 []Deed        `json:"deeds"`
	AvailableImprovements int           `json:"availableImprovements"`
	FreeParkingMoney      int           `json:"freeParkingMoney"`
	CurrentTurn           int           `json:"currentTurn"`
	CurrentPlayer         int           `json:"currentPlayer"`
	BankruptPlayers       []string      `json:"bankruptPlayers"`
	Winner                string        `json:"winner"`
	Outcome               Outcome       `json:"outcome"`
}

// Clone returns a deep copy of the state.
func (g GameState) Clone() GameState {
	c := g
	c.Players = append([]PlayerState(nil), g.Players...)
	c.Deeds = append([]Deed(nil), g.Deeds...)
	c.BankruptPlayers = append([]string(nil), g.BankruptPlayers...)
	return c
}

func (g GameState) IsBankrupt(name string) bool {
	for _, b := range g.BankruptPlayers {
		if b == name {
			return true
		}
	}
	return false
}

type GameAction string

const (
	ActionRollDice   GameAction = "ROLL_DICE"
	ActionPayRent    GameAction = "PAY_RENT"
	ActionPayTax     GameAction = "PAY_TAX"
	ActionCollectGo  GameAction = "COLLECT_GO"
	ActionGoToJail   GameAction = "GO_TO_JAIL"
	ActionLeaveJail  GameAction = "GET_OUT_OF_JAIL"
	ActionBuildHouse GameAction = "BUILD_HOUSE"
	ActionRaiseMoney GameAction = "RAISE_MONEY"
	ActionBankrupt   GameAction = "BANKRUPT"
)

type GameLog struct {
	Turn   int        `json:"turn"`
	Player string     `json:"player"`
	Action GameAction `json:"action"`
	Amount int        `json:"amount,omitempty"`
	To     string     `json:"to,omitempty"`
}
