package simulator

import (
	"fmt"
	"math"

	"github.com/DedS3t/monopoly-auction/app/models"
)

// Report flattens a result into the record shown to players once the
// auction is over. Rates are percentages with one decimal.
func Report(r models.SimulationResult) models.SimulationReport {
	rep := models.SimulationReport{
		GamesPlayed:   r.TotalGames,
		Draws:         r.Draws,
		TurnLimits:    r.TurnLimitCutoffs,
		Wins:          make(map[string]int, len(r.Wins)),
		SurvivalRates: make(map[string]string, len(r.Wins)),
		Bankruptcies:  make(map[string]int, len(r.Bankruptcies)),
		AverageRounds: int(math.Round(r.AverageTurns)),
	}
	for name, w := range r.Wins {
		rep.ClearWins += w
		rep.Wins[name] = w
		rep.SurvivalRates[name] = percent(w, r.TotalGames)
	}
	for name, b := range r.Bankruptcies {
		rep.Bankruptcies[name] = b
	}
	rep.DrawPercentage = percent(r.Draws, r.TotalGames)
	return rep
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
