package database

import (
	"context"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/config"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

func PostgreSQLConnection(cfg config.Config) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     cfg.DB.User,
		Addr:     cfg.DB.Addr,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
	})
}

// CreateSchema creates the room, player and simulation archive tables if they
// are missing.
func CreateSchema(ctx context.Context, db *pg.DB) error {
	if err := db.Ping(ctx); err != nil {
		return err
	}
	for _, model := range []interface{}{
		(*models.Game)(nil),
		(*models.Player)(nil),
		(*models.SimulationRecord)(nil),
	} {
		err := db.Model(model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return err
		}
	}
	return nil
}
