package slotValidator

import (
	"coinzy/config"
	"coinzy/middleware"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// BookSlot validates a slot booking request
func BookSlot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount float64 `json:"amount"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount < config.AppConfig.MinSlotAmount {
			errors["amount"] = fmt.Sprintf("Please enter at least ₹%.0f to book a slot!", config.AppConfig.MinSlotAmount)
		}
		if reqData.Amount > config.AppConfig.MaxSlotAmount {
			errors["amount"] = fmt.Sprintf("Maximum investment limit is ₹%.0f per slot!", config.AppConfig.MaxSlotAmount)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBookSlot", reqData)
		return c.Next()
	}
}
