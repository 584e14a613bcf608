package routes

import (
	"github.com/DedS3t/monopoly-auction/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

// Register mounts the public routes, then the token middleware, then
// everything that needs a participant token.
func Register(a *fiber.App, ctl *controllers.Controller) {
	AuthRoutes(a, ctl)
	GameRoutes(a, ctl)

	a.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(ctl.Config.JWTSecret),
	}))
	PrivateRoutes(a, ctl)
	SimulationRoutes(a, ctl)
}
