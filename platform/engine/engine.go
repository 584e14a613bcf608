package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/ai"
	"github.com/DedS3t/monopoly-auction/platform/board"
	"github.com/DedS3t/monopoly-auction/platform/ledger"
	"github.com/sirupsen/logrus"
)

var ErrInvalidAssignment = errors.New("invalid assignment")

// toPool marks a payment to the bank; the money lands in the free parking pot.
const toPool = -1

type Dice interface {
	Roll() (int, int)
}

type RandomDice struct {
	r *rand.Rand
}

func NewRandomDice(seed int64) *RandomDice {
	return &RandomDice{r: rand.New(rand.NewSource(seed))}
}

func (d *RandomDice) Roll() (int, int) {
	return d.r.Intn(6) + 1, d.r.Intn(6) + 1
}

type Options struct {
	Catalog *board.Catalog
	Rules   models.Rules
	Dice    Dice
	Debug   bool
	Logger  *logrus.Entry
}

// Engine plays one game from a starting assignment to its end. It owns its
// state exclusively and is not safe for concurrent use.
type Engine struct {
	catalog *board.Catalog
	rules   models.Rules
	policy  ai.Policy
	dice    Dice
	debug   bool
	log     *logrus.Entry
	logs    []models.GameLog
	state   models.GameState
}

// ValidateAssignment checks names and asset ownership before a game is built.
func ValidateAssignment(c *board.Catalog, a models.Assignment) error {
	if len(a) == 0 {
		return fmt.Errorf("%w: no players", ErrInvalidAssignment)
	}
	players := make(map[string]bool, len(a))
	assigned := make(map[string]bool)
	for _, ps := range a {
		if ps.Name == "" || ps.Name == models.Draw {
			return fmt.Errorf("%w: bad player name %q", ErrInvalidAssignment, ps.Name)
		}
		if players[ps.Name] {
			return fmt.Errorf("%w: player %s listed twice", ErrInvalidAssignment, ps.Name)
		}
		players[ps.Name] = true
		if ps.Money < 0 {
			return fmt.Errorf("%w: player %s starts with negative money", ErrInvalidAssignment, ps.Name)
		}
		for _, name := range ps.Properties {
			if _, ok := c.ID(name); !ok {
				return fmt.Errorf("%w: invalid property name %s", ErrInvalidAssignment, name)
			}
			if assigned[name] {
				return fmt.Errorf("%w: property %s assigned multiple times", ErrInvalidAssignment, name)
			}
			assigned[name] = true
		}
	}
	return nil
}

func New(assignment models.Assignment, opts Options) (*Engine, error) {
	if opts.Catalog == nil {
		opts.Catalog = board.Standard()
	}
	if opts.Rules == (models.Rules{}) {
		opts.Rules = models.DefaultRules()
	}
	if opts.Dice == nil {
		opts.Dice = NewRandomDice(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if err := ValidateAssignment(opts.Catalog, assignment); err != nil {
		return nil, err
	}

	e := &Engine{
		catalog: opts.Catalog,
		rules:   opts.Rules,
		policy: ai.Policy{
			Catalog:      opts.Catalog,
			CashBuffer:   opts.Rules.CashBuffer,
			MortgageRate: opts.Rules.MortgageRate,
		},
		dice:  opts.Dice,
		debug: opts.Debug,
		log:   opts.Logger.WithField("component", "engine"),
		state: models.GameState{
			Deeds:                 ledger.NewDeeds(opts.Catalog),
			AvailableImprovements: opts.Rules.ImprovementPool,
			CurrentTurn:           1,
			Outcome:               models.OutcomeOngoing,
		},
	}
	for i, ps := range assignment {
		e.state.Players = append(e.state.Players, models.PlayerState{Name: ps.Name, Money: ps.Money})
		for _, name := range ps.Properties {
			id, _ := opts.Catalog.ID(name)
			ledger.Assign(&e.state, id, i)
		}
	}
	return e, nil
}

// State returns a deep copy of the current game state.
func (e *Engine) State() models.GameState {
	return e.state.Clone()
}

// Logs returns the recorded actions; empty unless debug is on.
func (e *Engine) Logs() []models.GameLog {
	return append([]models.GameLog(nil), e.logs...)
}

// SimulateToEnd plays turns until someone wins, everyone is out, or the turn
// ceiling cuts the game short.
func (e *Engine) SimulateToEnd() models.GameState {
	for e.state.Outcome == models.OutcomeOngoing && e.state.CurrentTurn < e.rules.MaxTurns {
		e.SimulateTurn()
	}
	if e.state.Outcome == models.OutcomeOngoing {
		e.state.Outcome = models.OutcomeTurnLimit
	}
	return e.State()
}

// SimulateTurn plays the current player's turn. A doubles roll leaves the same
// player up next. It returns false once the game is over.
func (e *Engine) SimulateTurn() bool {
	gs := &e.state
	if gs.Outcome != models.OutcomeOngoing {
		return false
	}
	cur := gs.CurrentPlayer
	if e.bankrupt(cur) {
		e.nextPlayer()
		return true
	}

	if res := e.policy.Build(gs, cur); res.Built > 0 {
		e.record(cur, models.ActionBuildHouse, res.Spent, "")
	}

	d1, d2 := e.dice.Roll()
	roll := d1 + d2
	e.record(cur, models.ActionRollDice, roll, "")

	p := &gs.Players[cur]
	if p.JailTurns > 0 {
		if !e.leaveJail(cur, d1 == d2) {
			e.nextPlayer()
			return true
		}
		if e.bankrupt(cur) {
			e.endTurn()
			return true
		}
	}

	p.Position = (p.Position + roll) % e.catalog.BoardLen()
	if p.Position < roll {
		p.Money += e.rules.GoSalary
		e.record(cur, models.ActionCollectGo, e.rules.GoSalary, "")
	}

	e.land(cur, roll)

	if d1 == d2 && !e.bankrupt(cur) && gs.Outcome == models.OutcomeOngoing {
		return true
	}
	e.endTurn()
	return true
}

// leaveJail reports whether the player gets out this turn. The third turn
// forces the fine.
func (e *Engine) leaveJail(cur int, doubles bool) bool {
	p := &e.state.Players[cur]
	switch {
	case doubles:
	case p.JailFreeCards > 0:
		p.JailFreeCards--
	case p.JailTurns >= 3:
		p.JailTurns = 0
		e.record(cur, models.ActionLeaveJail, e.rules.JailFine, "")
		e.pay(cur, toPool, e.rules.JailFine)
		return true
	default:
		p.JailTurns++
		return false
	}
	p.JailTurns = 0
	e.record(cur, models.ActionLeaveJail, 0, "")
	return true
}

func (e *Engine) land(cur, roll int) {
	p := &e.state.Players[cur]
	space, err := e.catalog.GetByPos(p.Position)
	if err != nil {
		panic(fmt.Sprintf("engine: player %s at position %d off the board", p.Name, p.Position))
	}

	switch space.Type {
	case models.SpaceProperty:
		id, ok := e.catalog.ID(space.Name)
		if !ok {
			panic(fmt.Sprintf("engine: space %q has no property", space.Name))
		}
		owner := e.state.Deeds[id].Owner
		if owner == models.NoOwner || owner == cur {
			return
		}
		if rent := e.Rent(id, roll); rent > 0 {
			e.record(cur, models.ActionPayRent, rent, e.state.Players[owner].Name)
			e.pay(cur, owner, rent)
		}
	case models.SpaceIncomeTax:
		tax := int(math.Floor(float64(p.Money) * e.rules.IncomeTaxRate))
		if tax > e.rules.IncomeTax {
			tax = e.rules.IncomeTax
		}
		if tax > 0 {
			e.record(cur, models.ActionPayTax, tax, "")
			e.pay(cur, toPool, tax)
		}
	case models.SpaceLuxuryTax:
		e.record(cur, models.ActionPayTax, e.rules.LuxuryTax, "")
		e.pay(cur, toPool, e.rules.LuxuryTax)
	case models.SpaceGoToJail:
		p.Position = e.catalog.JailPosition()
		p.JailTurns = 1
		e.record(cur, models.ActionGoToJail, 0, "")
	}
}

func (e *Engine) endTurn() {
	if e.state.Outcome == models.OutcomeOngoing {
		e.nextPlayer()
	}
}

// nextPlayer moves the pointer to the next solvent player. Coming back round
// to the first solvent player starts a new turn.
func (e *Engine) nextPlayer() {
	gs := &e.state
	n := len(gs.Players)
	next := -1
	for step := 1; step <= n; step++ {
		idx := (gs.CurrentPlayer + step) % n
		if !e.bankrupt(idx) {
			next = idx
			break
		}
	}
	if next < 0 {
		gs.Winner = models.Draw
		gs.Outcome = models.OutcomeDraw
		return
	}
	gs.CurrentPlayer = next

	for i := range gs.Players {
		if !e.bankrupt(i) {
			if i == next {
				gs.CurrentTurn++
			}
			break
		}
	}
}

func (e *Engine) bankrupt(i int) bool {
	return e.state.IsBankrupt(e.state.Players[i].Name)
}

func (e *Engine) record(player int, action models.GameAction, amount int, to string) {
	if !e.debug {
		return
	}
	entry := models.GameLog{
		Turn:   e.state.CurrentTurn,
		Player: e.state.Players[player].Name,
		Action: action,
		Amount: amount,
		To:     to,
	}
	e.logs = append(e.logs, entry)
	e.log.WithFields(logrus.Fields{
		"turn":   entry.Turn,
		"player": entry.Player,
		"amount": entry.Amount,
	}).Debug(string(action))
}
