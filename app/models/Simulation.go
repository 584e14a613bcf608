package models

import "time"

type SimulationResult struct {
	TotalGames       int            `json:"totalGames"`
	Wins             map[string]int `json:"wins"`
	Draws            int            `json:"draws"` // includes turn-limit cutoffs
	TurnLimitCutoffs int            `json:"turnLimitCutoffs"`
	Bankruptcies     map[string]int `json:"bankruptcies"`
	AverageTurns     float64        `json:"averageTurns"`
}

// SimulationReport is the flat record handed to the presentation layer.
type SimulationReport struct {
	GamesPlayed    int               `json:"games_played"`
	ClearWins      int               `json:"clear_wins"`
	Draws          int               `json:"draws"`
	TurnLimits     int               `json:"turn_limits"`
	DrawPercentage string            `json:"draw_percentage"`
	Wins           map[string]int    `json:"wins"`
	SurvivalRates  map[string]string `json:"survival_rates"`
	Bankruptcies   map[string]int    `json:"bankruptcies"`
	AverageRounds  int               `json:"average_rounds"`
}

func (r SimulationReport) Clone() SimulationReport {
	c := r
	c.Wins = copyCounts(r.Wins)
	c.Bankruptcies = copyCounts(r.Bankruptcies)
	c.SurvivalRates = make(map[string]string, len(r.SurvivalRates))
	for k, v := range r.SurvivalRates {
		c.SurvivalRates[k] = v
	}
	return c
}

func copyCounts(m map[string]int) map[string]int {
	c := make(map[string]int, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

type SimulationRecord struct {
	tableName struct{} `pg:"simulation_results"`

	Id         string
	Game_id    string
	Assignment Assignment
	Result     SimulationResult
	Created_at time.Time
}
