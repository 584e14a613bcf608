package routes

import (
	"github.com/DedS3t/monopoly-auction/app/controllers"
	"github.com/gofiber/fiber/v2"
)

// SimulationRoutes runs playouts on demand, so it sits behind the token check.
func SimulationRoutes(a *fiber.App, ctl *controllers.Controller) {
	a.Post("/simulate", ctl.Simulate)
}
