package controllers

import (
	"strings"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/pkg"
	"github.com/DedS3t/monopoly-auction/platform/queries"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
)

// Join registers a named participant in an open room and hands back the
// token the socket connection authenticates with.
func (ctl *Controller) Join(c *fiber.Ctx) error {
	joinDto := new(models.JoinDto)
	if err := c.BodyParser(joinDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	joinDto.Name = strings.TrimSpace(joinDto.Name)
	if joinDto.Name == "" || joinDto.Name == models.Draw {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}

	game, err := queries.GetGame(joinDto.Game_id, ctl.DB)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid game"})
	}
	if game.Status != queries.StatusOpen {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "game already started"})
	}
	taken, err := queries.NameTaken(game.Id, joinDto.Name, ctl.DB)
	if err != nil {
		ctl.Log.WithError(err).Error("checking name")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if taken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "name taken"})
	}

	p := models.Participant{
		User_id: uuid.NewV4().String(),
		Game_id: game.Id,
		Name:    joinDto.Name,
	}
	err = queries.CreatePlayer(models.Player{
		User_id:  p.User_id,
		Game_id:  p.Game_id,
		Username: p.Name,
		Active:   "true",
	}, ctl.DB)
	if err != nil {
		ctl.Log.WithError(err).Error("creating player")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	t, err := pkg.NewToken(ctl.Config.JWTSecret, p)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t, "user_id": p.User_id})
}

func (ctl *Controller) Cur(c *fiber.Ctx) error {
	user := c.Locals("user").(*jwt.Token)
	p, err := pkg.FromClaims(user.Claims.(jwt.MapClaims))
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.JSON(p)
}
