// Package auction resolves ownership of the catalog one asset at a time. The
// Coordinator is the only writer of an AuctionState; everyone else applies the
// snapshots it returns.
package auction

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/board"
)

var (
	// ErrRejected is wrapped by every refusal of a bid or pass. Rejected input
	// never changes the state.
	ErrRejected           = errors.New("rejected")
	ErrNotYourTurn        = fmt.Errorf("%w: not your turn", ErrRejected)
	ErrInsufficientFunds  = fmt.Errorf("%w: insufficient funds", ErrRejected)
	ErrBidTooLow          = fmt.Errorf("%w: bid too low", ErrRejected)
	ErrAlreadySubmitted   = fmt.Errorf("%w: already submitted for this asset", ErrRejected)
	ErrAuctionComplete    = fmt.Errorf("%w: auction complete", ErrRejected)
	ErrUnknownParticipant = fmt.Errorf("%w: unknown participant", ErrRejected)
	ErrStaleSubmission    = fmt.Errorf("%w: not the asset under auction", ErrRejected)

	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

type Config struct {
	Mode          models.AuctionMode
	StartingMoney int
	// Properties is the auction order. Empty means the whole catalog, shuffled.
	Properties []string
	Rand       *rand.Rand
	Catalog    *board.Catalog
}

type Coordinator struct {
	catalog *board.Catalog
	state   models.AuctionState
}

func New(participants []string, cfg Config) (*Coordinator, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = board.Standard()
	}
	if cfg.Mode == "" {
		cfg.Mode = models.TurnBased
	}
	if cfg.Mode != models.TurnBased && cfg.Mode != models.Simultaneous {
		return nil, fmt.Errorf("auction: unknown mode %q", cfg.Mode)
	}
	if cfg.StartingMoney == 0 {
		cfg.StartingMoney = models.DefaultRules().StartingMoney
	}
	if len(participants) < 2 {
		return nil, fmt.Errorf("auction: need at least two participants, got %d", len(participants))
	}

	props := append([]string(nil), cfg.Properties...)
	if len(props) == 0 {
		r := cfg.Rand
		if r == nil {
			r = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		props = cfg.Catalog.Names()
		r.Shuffle(len(props), func(i, j int) { props[i], props[j] = props[j], props[i] })
	}
	seen := make(map[string]bool, len(props))
	for _, name := range props {
		if _, err := cfg.Catalog.GetByName(name); err != nil {
			return nil, fmt.Errorf("auction: %s: %w", name, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("auction: %s listed twice", name)
		}
		seen[name] = true
	}

	st := models.AuctionState{
		Seq:               1,
		Stage:             models.StageAuction,
		Mode:              cfg.Mode,
		Participants:      append([]string(nil), participants...),
		Players:           make(map[string]models.AuctionPlayer, len(participants)),
		CurrentProperty:   props[0],
		Properties:        props[1:],
		CurrentBids:       []models.Bid{},
		BiddingComplete:   map[string]bool{},
		UnownedProperties: []string{},
		AuctionHistory:    []models.AuctionResult{},
	}
	for _, p := range participants {
		if _, dup := st.Players[p]; dup || p == "" {
			return nil, fmt.Errorf("auction: bad or duplicate participant %q", p)
		}
		st.Players[p] = models.AuctionPlayer{Money: cfg.StartingMoney, Properties: []string{}}
	}
	return &Coordinator{catalog: cfg.Catalog, state: st}, nil
}

// State returns the current snapshot.
func (c *Coordinator) State() models.AuctionState {
	return c.state.Clone()
}

func (c *Coordinator) check(player string, amount int) error {
	if c.state.Stage != models.StageAuction {
		return ErrAuctionComplete
	}
	p, ok := c.state.Players[player]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, player)
	}
	if amount < 0 {
		return fmt.Errorf("%w: %d is negative", ErrBidTooLow, amount)
	}
	if amount > p.Money {
		return fmt.Errorf("%w: %s has %d, bid %d", ErrInsufficientFunds, player, p.Money, amount)
	}
	return nil
}

func (c *Coordinator) turnOf(player string) error {
	if c.state.Participants[c.state.CurrentPlayerIndex] != player {
		return fmt.Errorf("%w: waiting on %s", ErrNotYourTurn, c.state.Participants[c.state.CurrentPlayerIndex])
	}
	return nil
}

// onProperty refuses input addressed to an asset other than the current one.
// An empty name is not checked.
func (c *Coordinator) onProperty(property string) error {
	if property == "" || c.state.Stage != models.StageAuction || property == c.state.CurrentProperty {
		return nil
	}
	return fmt.Errorf("%w: %s, bidding is on %s", ErrStaleSubmission, property, c.state.CurrentProperty)
}

// SubmitBidOn is SubmitBid for input that names its asset. A re-delivered bid
// for an asset that already cleared is rejected instead of landing on the next.
func (c *Coordinator) SubmitBidOn(property, player string, amount int) (models.AuctionState, error) {
	if err := c.onProperty(property); err != nil {
		return models.AuctionState{}, err
	}
	return c.SubmitBid(player, amount)
}

// SubmitPassOn is SubmitPass for input that names its asset.
func (c *Coordinator) SubmitPassOn(property, player string) (models.AuctionState, error) {
	if err := c.onProperty(property); err != nil {
		return models.AuctionState{}, err
	}
	return c.SubmitPass(player)
}

func (c *Coordinator) SubmitBid(player string, amount int) (models.AuctionState, error) {
	if err := c.check(player, amount); err != nil {
		return models.AuctionState{}, err
	}
	if c.state.Mode == models.Simultaneous {
		return c.submitSealed(player, amount)
	}

	if err := c.turnOf(player); err != nil {
		return models.AuctionState{}, err
	}
	highest := 0
	if b, ok := c.state.HighestBid(); ok {
		highest = b.Amount
	}
	if amount <= highest {
		return models.AuctionState{}, fmt.Errorf("%w: must beat %d", ErrBidTooLow, highest)
	}

	next := c.state.Clone()
	setBid(&next, player, amount)
	next.ConsecutivePasses = 0
	next.CurrentPlayerIndex = (next.CurrentPlayerIndex + 1) % len(next.Participants)
	return c.commit(next), nil
}

// SubmitPass declines the current asset. In simultaneous mode it is a sealed
// bid of zero.
func (c *Coordinator) SubmitPass(player string) (models.AuctionState, error) {
	if err := c.check(player, 0); err != nil {
		return models.AuctionState{}, err
	}
	if c.state.Mode == models.Simultaneous {
		return c.submitSealed(player, 0)
	}
	if err := c.turnOf(player); err != nil {
		return models.AuctionState{}, err
	}

	next := c.state.Clone()
	next.ConsecutivePasses++
	n := len(next.Participants)
	ends := next.ConsecutivePasses >= n
	if b, ok := next.HighestBid(); ok && b.Amount > 0 {
		ends = next.ConsecutivePasses >= n-1
	}
	if ends {
		resolve(&next)
	} else {
		next.CurrentPlayerIndex = (next.CurrentPlayerIndex + 1) % n
	}
	return c.commit(next), nil
}

func (c *Coordinator) submitSealed(player string, amount int) (models.AuctionState, error) {
	if c.state.BiddingComplete[player] {
		return models.AuctionState{}, fmt.Errorf("%w: %s", ErrAlreadySubmitted, player)
	}
	next := c.state.Clone()
	setBid(&next, player, amount)
	next.BiddingComplete[player] = true

	all := true
	for _, p := range next.Participants {
		if !next.BiddingComplete[p] {
			all = false
			break
		}
	}
	if all {
		resolve(&next)
	}
	return c.commit(next), nil
}

// Assignment is the final ownership, in participant order.
func (c *Coordinator) Assignment() models.Assignment {
	a := make(models.Assignment, 0, len(c.state.Participants))
	for _, name := range c.state.Participants {
		p := c.state.Players[name]
		a = append(a, models.PlayerStart{
			Name:       name,
			Money:      p.Money,
			Properties: append(make([]string, 0, len(p.Properties)), p.Properties...),
		})
	}
	return a
}

// AttachResults moves a finished auction to the results stage.
func (c *Coordinator) AttachResults(report models.SimulationReport) (models.AuctionState, error) {
	if c.state.Stage == models.StageAuction {
		return models.AuctionState{}, fmt.Errorf("%w: auction still running", ErrRejected)
	}
	next := c.state.Clone()
	r := report.Clone()
	next.SimulationResults = &r
	next.Stage = models.StageResults
	return c.commit(next), nil
}

func (c *Coordinator) commit(next models.AuctionState) models.AuctionState {
	next.Seq = c.state.Seq + 1
	c.state = next
	return next.Clone()
}

func setBid(st *models.AuctionState, player string, amount int) {
	for i := range st.CurrentBids {
		if st.CurrentBids[i].Player == player {
			st.CurrentBids[i].Amount = amount
			return
		}
	}
	st.CurrentBids = append(st.CurrentBids, models.Bid{Player: player, Amount: amount})
}

// resolve awards the current asset to the highest bid, earliest submission
// first on a tie, and moves on to the next asset.
func resolve(st *models.AuctionState) {
	res := models.AuctionResult{
		Property: st.CurrentProperty,
		AllBids:  append([]models.Bid(nil), st.CurrentBids...),
	}
	if b, ok := st.HighestBid(); ok && b.Amount > 0 {
		p := st.Players[b.Player]
		p.Money -= b.Amount
		p.Properties = append(p.Properties, st.CurrentProperty)
		st.Players[b.Player] = p
		res.Winner = b.Player
		res.Amount = b.Amount
	} else {
		st.UnownedProperties = append(st.UnownedProperties, st.CurrentProperty)
	}
	st.AuctionHistory = append(st.AuctionHistory, res)

	st.CurrentBids = []models.Bid{}
	st.BiddingComplete = map[string]bool{}
	st.ConsecutivePasses = 0
	st.CurrentPlayerIndex = 0

	if len(st.Properties) == 0 {
		st.CurrentProperty = ""
		st.Stage = models.StageComplete
		return
	}
	st.CurrentProperty = st.Properties[0]
	st.Properties = st.Properties[1:]
}
