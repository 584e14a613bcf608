package models

type AuctionMode string

const (
	TurnBased    AuctionMode = "turn_based"
	Simultaneous AuctionMode = "simultaneous"
)

type AuctionStage string

const (
	StageAuction  AuctionStage = "auction"
	StageComplete AuctionStage = "complete"
	StageResults  AuctionStage = "results"
)

type AuctionPlayer struct {
	Money      int      `json:"money"`
	Properties []string `json:"properties"`
}

type Bid struct {
	Player string `json:"player"`
	Amount int    `json:"amount"`
}

type AuctionResult struct {
	Property string `json:"property"`
	Winner   string `json:"winner"` // empty when nobody bought it
	Amount   int    `json:"amount"`
	AllBids  []Bid  `json:"allBids"`
}

// AuctionState is the replicated auction snapshot. Only the host mutates it;
// every other participant replaces its view with the latest snapshot.
type AuctionState struct {
	Seq                uint64                   `json:"seq"`
	Stage              AuctionStage             `json:"stage"`
	Mode               AuctionMode              `json:"mode"`
	Participants       []string                 `json:"participants"`
	Players            map[string]AuctionPlayer `json:"players"`
	CurrentProperty    string                   `json:"currentProperty"`
	Properties         []string                 `json:"properties"`
	CurrentBids        []Bid                    `json:"currentBids"`
	BiddingComplete    map[string]bool          `json:"biddingComplete"`
	ConsecutivePasses  int                      `json:"consecutivePasses"`
	CurrentPlayerIndex int                      `json:"currentPlayerIndex"`
	UnownedProperties  []string                 `json:"unownedProperties"`
	AuctionHistory     []AuctionResult          `json:"auctionHistory"`
	SimulationResults  *SimulationReport        `json:"simulationResults,omitempty"`
}

// Clone returns a deep copy so snapshots never alias the host's working state.
func (a AuctionState) Clone() AuctionState {
	c := a
	c.Participants = cloneStrings(a.Participants)
	c.Players = make(map[string]AuctionPlayer, len(a.Players))
	for name, p := range a.Players {
		c.Players[name] = AuctionPlayer{
			Money:      p.Money,
			Properties: cloneStrings(p.Properties),
		}
	}
	c.Properties = cloneStrings(a.Properties)
	c.CurrentBids = append(make([]Bid, 0, len(a.CurrentBids)), a.CurrentBids...)
	c.BiddingComplete = make(map[string]bool, len(a.BiddingComplete))
	for name, done := range a.BiddingComplete {
		c.BiddingComplete[name] = done
	}
	c.UnownedProperties = cloneStrings(a.UnownedProperties)
	c.AuctionHistory = make([]AuctionResult, len(a.AuctionHistory))
	for i, r := range a.AuctionHistory {
		r.AllBids = append(make([]Bid, 0, len(r.AllBids)), r.AllBids...)
		c.AuctionHistory[i] = r
	}
	if a.SimulationResults != nil {
		r := a.SimulationResults.Clone()
		c.SimulationResults = &r
	}
	return c
}

// cloneStrings never returns nil so empty lists survive as [] on the wire.
func cloneStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}

// HighestBid returns the first bid holding the highest amount, in submission order.
func (a AuctionState) HighestBid() (Bid, bool) {
	var best Bid
	found := false
	for _, b := range a.CurrentBids {
		if !found || b.Amount > best.Amount {
			best = b
			found = true
		}
	}
	return best, found
}

func (a AuctionState) BidOf(player string) (int, bool) {
	for _, b := range a.CurrentBids {
		if b.Player == player {
			return b.Amount, true
		}
	}
	return 0, false
}
