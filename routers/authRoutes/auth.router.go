package authRoutes

import (
	authController "coinzy/controllers/auth"
	"coinzy/middleware"
	authValidator "coinzy/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
	authGroup.Post("/social/connect", authValidator.ConnectSocial(), middleware.JWTMiddleware, authController.ConnectSocial)
}
