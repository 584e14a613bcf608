package controllers

import (
	"errors"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/pkg"
	"github.com/DedS3t/monopoly-auction/platform/cache"
	"github.com/DedS3t/monopoly-auction/platform/config"
	"github.com/DedS3t/monopoly-auction/platform/queries"
	"github.com/DedS3t/monopoly-auction/platform/simulator"
	"github.com/go-pg/pg/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Controller carries what the HTTP handlers share.
type Controller struct {
	Config    config.Config
	DB        *pg.DB
	Store     *cache.Store
	Simulator simulator.Simulator
	Log       *logrus.Entry
}

func (ctl *Controller) CreateGame(c *fiber.Ctx) error {
	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	mode := models.AuctionMode(gameCreateDto.Type)
	if mode == "" {
		mode = models.TurnBased
	}
	if mode != models.TurnBased && mode != models.Simultaneous {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown auction mode"})
	}

	game := &models.Game{
		Id:     pkg.RandString(8),
		Name:   gameCreateDto.Name,
		Status: queries.StatusOpen,
		Type:   string(mode),
	}
	if err := queries.CreateGame(game, ctl.DB); err != nil {
		ctl.Log.WithError(err).Error("creating game")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"id": game.Id})
}

func (ctl *Controller) GetAllAvailGames(c *fiber.Ctx) error {
	games, err := queries.AvailableGames(ctl.DB)
	if err != nil {
		ctl.Log.WithError(err).Error("listing games")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(games)
}

func (ctl *Controller) FindAvailGame(c *fiber.Ctx) error {
	game, err := queries.FindAvailGame(ctl.DB)
	if errors.Is(err, pg.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": false})
	}
	if err != nil {
		ctl.Log.WithError(err).Error("finding game")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"status": true, "id": game.Id})
}

func (ctl *Controller) VerifyGame(c *fiber.Ctx) error {
	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	return c.JSON(fiber.Map{"status": queries.VerifyGame(verifyGameDto.Code, ctl.DB)})
}

// Snapshot replays the latest auction state of a room.
func (ctl *Controller) Snapshot(c *fiber.Ctx) error {
	st, err := ctl.Store.LoadSnapshot(c.Params("id"))
	if errors.Is(err, cache.ErrNoSnapshot) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		ctl.Log.WithError(err).Error("loading snapshot")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(st)
}

func (ctl *Controller) Results(c *fiber.Ctx) error {
	record, err := queries.LatestSimulation(c.Params("id"), ctl.DB)
	if errors.Is(err, pg.ErrNoRows) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		ctl.Log.WithError(err).Error("loading results")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{
		"assignment": record.Assignment,
		"result":     record.Result,
		"report":     simulator.Report(record.Result),
		"created_at": record.Created_at,
	})
}
