package routes

import (
	"github.com/DedS3t/monopoly-auction/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(a *fiber.App, ctl *controllers.Controller) {
	route := a.Group("/user")

	route.Post("join", ctl.Join)
}

// PrivateRoutes need a participant token.
func PrivateRoutes(a *fiber.App, ctl *controllers.Controller) {
	a.Get("/user/cur", ctl.Cur)
}
