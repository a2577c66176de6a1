package slotRoutes

import (
	slotController "coinzy/controllers/slot"
	"coinzy/middleware"
	slotValidator "coinzy/validators/slot"

	"github.com/gofiber/fiber/v2"
)

func SetupSlotRoutes(app *fiber.App) {
	slotGroup := app.Group("/slots")

	slotGroup.Get("/window", slotController.GetWindow)
	slotGroup.Post("/book", slotValidator.BookSlot(), middleware.JWTMiddleware, slotController.BookSlot)
	slotGroup.Get("/today", middleware.JWTMiddleware, slotController.GetTodaySlot)
	slotGroup.Get("/history", middleware.JWTMiddleware, slotController.GetSlotHistory)
}
