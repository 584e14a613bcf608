package routes

import (
	"github.com/DedS3t/monopoly-auction/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, ctl *controllers.Controller) {
	route := a.Group("/game")
	route.Post("create", ctl.CreateGame)
	route.Get("/verify", ctl.VerifyGame)
	route.Get("/all", ctl.GetAllAvailGames)
	route.Get("/find", ctl.FindAvailGame)
	route.Get("/:id/snapshot", ctl.Snapshot)
	route.Get("/:id/results", ctl.Results)
}
