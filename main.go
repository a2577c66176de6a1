package main

import (
	"coinzy/config"
	paymentController "coinzy/controllers/payment"
	"coinzy/database"
	authRoutes "coinzy/routers/authRoutes"
	paymentRoutes "coinzy/routers/paymentRoutes"
	slotRoutes "coinzy/routers/slotRoutes"
	walletRoutes "coinzy/routers/walletRoutes"
	"coinzy/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	paymentController.InitGateway()

	utils.StartSchedulers()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	walletRoutes.SetupWalletRoutes(app)
	slotRoutes.SetupSlotRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
