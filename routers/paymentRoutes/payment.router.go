package paymentRoutes

import (
	paymentController "coinzy/controllers/payment"
	"coinzy/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/create-order", middleware.JWTMiddleware, paymentController.CreateOrder)
	paymentGroup.Post("/verify", middleware.JWTMiddleware, paymentController.VerifyPayment)
}
