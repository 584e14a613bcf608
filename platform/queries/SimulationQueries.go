package queries

import (
	"time"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/go-pg/pg/v10"
	uuid "github.com/satori/go.uuid"
)

// SaveSimulation archives one aggregated run for a room.
func SaveSimulation(game_id string, assignment models.Assignment, result models.SimulationResult, db *pg.DB) (*models.SimulationRecord, error) {
	record := &models.SimulationRecord{
		Id:         uuid.NewV4().String(),
		Game_id:    game_id,
		Assignment: assignment,
		Result:     result,
		Created_at: time.Now(),
	}
	if _, err := db.Model(record).Insert(); err != nil {
		return nil, err
	}
	return record, nil
}

func LatestSimulation(game_id string, db *pg.DB) (*models.SimulationRecord, error) {
	record := new(models.SimulationRecord)
	err := db.Model(record).
		Where("game_id = ?", game_id).
		Order("created_at DESC").
		Limit(1).
		Select()
	if err != nil {
		return nil, err
	}
	return record, nil
}
