package walletRoutes

import (
	walletController "coinzy/controllers/wallet"
	"coinzy/middleware"
	walletValidator "coinzy/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet")

	// User routes
	walletGroup.Get("/balance", middleware.JWTMiddleware, walletController.GetWalletBalance)
	walletGroup.Get("/history", middleware.JWTMiddleware, walletController.GetWalletHistory)
	walletGroup.Post("/withdraw", walletValidator.Withdraw(), middleware.JWTMiddleware, walletController.RequestWithdrawal)

	// Admin routes
	adminGroup := walletGroup.Group("/admin")
	adminGroup.Post("/withdrawals/approve", walletValidator.WithdrawalAction(), middleware.JWTMiddleware, walletController.ApproveWithdrawal)
	adminGroup.Post("/withdrawals/reject", walletValidator.WithdrawalAction(), middleware.JWTMiddleware, walletController.RejectWithdrawal)
}
