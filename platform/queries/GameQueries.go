package queries

import (
	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/go-pg/pg/v10"
)

const (
	StatusOpen       = "false"
	StatusInProgress = "in progress"
	StatusFinished   = "finished"
)

func CreateGame(game *models.Game, db *pg.DB) error {
	_, err := db.Model(game).Insert()
	return err
}

func GetGame(id string, db *pg.DB) (*models.Game, error) {
	game := &models.Game{Id: id}
	if err := db.Model(game).WherePK().Select(); err != nil {
		return nil, err
	}
	return game, nil
}

func VerifyGame(id string, db *pg.DB) bool {
	_, err := GetGame(id, db)
	return err == nil
}

func AvailableGames(db *pg.DB) ([]models.Game, error) {
	var games []models.Game
	err := db.Model(&games).Where("status = ?", StatusOpen).Select()
	return games, err
}

// FindAvailGame picks the open room with the most players waiting.
func FindAvailGame(db *pg.DB) (*models.Game, error) {
	game := new(models.Game)
	err := db.Model(game).
		ColumnExpr("game.*").
		Join("LEFT JOIN players AS p ON p.game_id = game.id").
		Where("game.status = ?", StatusOpen).
		Group("game.id").
		OrderExpr("count(p.user_id) DESC").
		Limit(1).
		Select()
	if err != nil {
		return nil, err
	}
	return game, nil
}

func SetStatus(id string, status string, db *pg.DB) error {
	game := &models.Game{Id: id}
	_, err := db.Model(game).WherePK().Set("status = ?", status).Update()
	return err
}

func CreatePlayer(player models.Player, db *pg.DB) error {
	_, err := db.Model(&player).Insert()
	return err
}

func GetPlayers(game_id string, db *pg.DB) ([]models.Player, error) {
	var players []models.Player
	err := db.Model(&players).Where("game_id = ?", game_id).Select()
	return players, err
}

// NameTaken reports whether a participant name is already used in the room.
func NameTaken(game_id string, name string, db *pg.DB) (bool, error) {
	return db.Model((*models.Player)(nil)).
		Where("game_id = ? AND username = ?", game_id, name).
		Exists()
}

// DeletePlayer removes the player and drops the room once it is empty.
func DeletePlayer(user_id string, game_id string, db *pg.DB) error {
	player := new(models.Player)
	_, err := db.Model(player).Where("user_id = ? and game_id = ?", user_id, game_id).Delete()
	if err != nil {
		return err
	}
	return CheckDB(game_id, db)
}

func CheckDB(game_id string, db *pg.DB) error {
	n, err := db.Model((*models.Player)(nil)).Where("game_id = ?", game_id).Count()
	if err != nil || n > 0 {
		return err
	}
	game := new(models.Game)
	_, err = db.Model(game).Where("id = ?", game_id).Delete()
	return err
}
