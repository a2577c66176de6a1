package authValidator

import (
	authController "coinzy/controllers/auth"
	"coinzy/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// fieldErrors flattens validator.ValidationErrors into the field->message
// map the envelope expects.
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			errors[verr.Field()] = "Failed validation: " + verr.Tag()
		}
		return errors
	}
	errors["request"] = err.Error()
	return errors
}

// Signup validates the registration payload
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.SignupRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validates the login payload
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// ConnectSocial validates the social account payload
func ConnectSocial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authController.ConnectSocialRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedConnectSocial", reqData)
		return c.Next()
	}
}
