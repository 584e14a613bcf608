package engine

import (
	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/ledger"
)

// Rent is what landing on the asset costs for the given dice total.
// Mortgaged and unowned assets yield nothing.
func (e *Engine) Rent(id, roll int) int {
	d := e.state.Deeds[id]
	if d.Owner == models.NoOwner || d.Mortgaged {
		return 0
	}
	p := e.catalog.Properties[id]
	complete := ledger.IsComplete(&e.state, e.catalog, d.Owner, p.Group)

	switch p.Group {
	case models.Utility:
		if complete {
			return roll * 10
		}
		return roll * 4
	case models.Railroad:
		owned := len(ledger.OwnedIn(&e.state, e.catalog, d.Owner, models.Railroad))
		return p.BaseRent << (owned - 1)
	}

	switch {
	case d.Level >= models.MaxLevel:
		return p.HotelRent
	case d.Level > 0:
		return p.HouseRent[d.Level-1]
	case complete:
		return p.BaseRent * 2
	}
	return p.BaseRent
}

// pay moves money from one player to another player or to the pool. A player
// short of cash gets the AI's raise step first; if that is not enough the
// player is eliminated and pay returns false.
func (e *Engine) pay(from, to, amount int) bool {
	p := &e.state.Players[from]
	if p.Money < amount {
		raised := e.policy.Raise(&e.state, from, amount-p.Money)
		if raised > 0 {
			e.record(from, models.ActionRaiseMoney, raised, "")
		}
	}
	if p.Money < amount {
		e.eliminate(from, to)
		return false
	}

	p.Money -= amount
	if to == toPool {
		e.state.FreeParkingMoney += amount
	} else {
		e.state.Players[to].Money += amount
	}
	return true
}

// eliminate hands everything the player still has to the payee, or back to
// the bank when the debt was owed to the pool.
func (e *Engine) eliminate(from, to int) {
	gs := &e.state
	p := &gs.Players[from]
	if to == toPool {
		ledger.Release(gs, from)
	} else {
		gs.Players[to].Money += p.Money
		ledger.TransferAll(gs, from, to)
	}
	beneficiary := ""
	if to != toPool {
		beneficiary = gs.Players[to].Name
	}
	e.record(from, models.ActionBankrupt, p.Money, beneficiary)
	p.Money = 0
	p.JailTurns = 0
	gs.BankruptPlayers = append(gs.BankruptPlayers, p.Name)

	var remaining []string
	for i := range gs.Players {
		if !e.bankrupt(i) {
			remaining = append(remaining, gs.Players[i].Name)
		}
	}
	switch len(remaining) {
	case 0:
		gs.Winner = models.Draw
		gs.Outcome = models.OutcomeDraw
	case 1:
		gs.Winner = remaining[0]
		gs.Outcome = models.OutcomeWin
	}
}
