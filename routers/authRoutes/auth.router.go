package authRoutes

import (
	authControllers "lms/controllers/auth"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/v1/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
}
