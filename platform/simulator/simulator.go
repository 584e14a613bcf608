// Package simulator runs many independent playouts of one starting assignment
// and reduces them into win, draw and bankruptcy statistics.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/board"
	"github.com/DedS3t/monopoly-auction/platform/engine"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Simulator struct {
	Catalog *board.Catalog
	Rules   models.Rules
	Workers int
	Seed    int64
	Logger  *logrus.Entry
}

type outcome struct {
	winner   string
	kind     models.Outcome
	turns    int
	bankrupt []string
}

// Run plays games independent copies of the assignment, each with its own
// engine and a dice source seeded Seed+i. When ctx is cancelled no further
// runs start and only the finished ones are summarised.
func (s Simulator) Run(ctx context.Context, assignment models.Assignment, games int) (models.SimulationResult, error) {
	c := s.Catalog
	if c == nil {
		c = board.Standard()
	}
	rules := s.Rules
	if rules == (models.Rules{}) {
		rules = models.DefaultRules()
	}
	log := s.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "simulator")

	if err := engine.ValidateAssignment(c, assignment); err != nil {
		return models.SimulationResult{}, err
	}
	if games <= 0 {
		return models.SimulationResult{}, fmt.Errorf("simulator: game count must be positive, got %d", games)
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu       sync.Mutex
		outcomes []outcome
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < games; i++ {
		if gctx.Err() != nil {
			break
		}
		seed := s.Seed + int64(i)
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			e, err := engine.New(assignment, engine.Options{
				Catalog: c,
				Rules:   rules,
				Dice:    engine.NewRandomDice(seed),
				Logger:  log,
			})
			if err != nil {
				return err
			}
			st := e.SimulateToEnd()

			mu.Lock()
			outcomes = append(outcomes, outcome{
				winner:   st.Winner,
				kind:     st.Outcome,
				turns:    st.CurrentTurn,
				bankrupt: st.BankruptPlayers,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.SimulationResult{}, err
	}

	res := summarise(assignment, outcomes)
	log.WithFields(logrus.Fields{
		"requested": games,
		"played":    res.TotalGames,
		"draws":     res.Draws,
		"cutoffs":   res.TurnLimitCutoffs,
	}).Info("simulation finished")
	return res, nil
}

func summarise(assignment models.Assignment, outcomes []outcome) models.SimulationResult {
	res := models.SimulationResult{
		TotalGames:   len(outcomes),
		Wins:         make(map[string]int, len(assignment)),
		Bankruptcies: make(map[string]int, len(assignment)),
	}
	for _, ps := range assignment {
		res.Wins[ps.Name] = 0
		res.Bankruptcies[ps.Name] = 0
	}

	turns := 0
	for _, o := range outcomes {
		turns += o.turns
		switch o.kind {
		case models.OutcomeWin:
			res.Wins[o.winner]++
		case models.OutcomeTurnLimit:
			res.TurnLimitCutoffs++
			res.Draws++
		default:
			res.Draws++
		}
		for _, name := range o.bankrupt {
			res.Bankruptcies[name]++
		}
	}
	if len(outcomes) > 0 {
		res.AverageTurns = float64(turns) / float64(len(outcomes))
	}
	return res
}
