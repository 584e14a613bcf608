package controllers

import (
	"errors"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/engine"
	"github.com/DedS3t/monopoly-auction/platform/simulator"
	"github.com/gofiber/fiber/v2"
)

type SimulateDto struct {
	Players models.Assignment `json:"players"`
	Games   int               `json:"games"`
}

const maxGames = 10000

// Simulate runs the aggregator on a posted assignment.
func (ctl *Controller) Simulate(c *fiber.Ctx) error {
	dto := new(SimulateDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if dto.Games <= 0 {
		dto.Games = ctl.Config.SimulationGames
	}
	if dto.Games > maxGames {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "too many games"})
	}

	res, err := ctl.Simulator.Run(c.Context(), dto.Players, dto.Games)
	if errors.Is(err, engine.ErrInvalidAssignment) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		ctl.Log.WithError(err).Error("simulation failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{
		"result": res,
		"report": simulator.Report(res),
	})
}
