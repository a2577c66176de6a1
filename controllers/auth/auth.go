package authController

import (
	"coinzy/config"
	"coinzy/database"
	"coinzy/middleware"
	"coinzy/models"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// newReferralCode derives a short shareable code from a fresh UUID
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Signup registers a user, optionally linking a referrer by code.
// The referrer gets the flat signup bonus immediately.
func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:         reqData.Name,
		Email:        reqData.Email,
		Mobile:       reqData.Mobile,
		Password:     string(hashedPassword),
		ReferralCode: newReferralCode(),
	}

	// Link referrer if a valid code was supplied
	var referrer models.User
	if reqData.ReferralCode != "" {
		if err := db.Where("referral_code = ? AND is_deleted = false", strings.ToUpper(reqData.ReferralCode)).
			First(&referrer).Error; err == nil {
			newUser.ReferredBy = &referrer.ID
		}
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	if newUser.ReferredBy != nil {
		creditSignupBonus(db, &referrer, &newUser)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Signup successful!", fiber.Map{
		"userId":       newUser.ID,
		"referralCode": newUser.ReferralCode,
	})
}

// creditSignupBonus pays the flat referral bonus for a new registration.
// Best effort, like the deposit-time bonus.
func creditSignupBonus(db *gorm.DB, referrer, newUser *models.User) {
	bonus := config.AppConfig.ReferralSignupBonus
	if bonus <= 0 {
		return
	}

	if err := db.Model(&models.User{}).
		Where("id = ? AND is_deleted = false", referrer.ID).
		UpdateColumns(map[string]interface{}{
			"wallet_balance":    gorm.Expr("wallet_balance + ?", bonus),
			"referral_earnings": gorm.Expr("referral_earnings + ?", bonus),
		}).Error; err != nil {
		log.Printf("Signup bonus error for referrer %d: %v", referrer.ID, err)
		return
	}

	bonusTxn := models.WalletTransaction{
		UserID:          referrer.ID,
		TransactionType: models.TransactionTypeReferralBonus,
		Amount:          bonus,
		Status:          models.TransactionStatusCompleted,
		Description:     "Referral signup bonus: " + newUser.Name,
		ReferenceType:   "user",
		ReferenceID:     newUser.ID,
	}
	if err := db.Create(&bonusTxn).Error; err != nil {
		log.Printf("Error recording signup bonus for referrer %d: %v", referrer.ID, err)
	}
}

// Login verifies credentials and issues a 24h bearer token
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = false", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	now := time.Now()
	user.LastLogin = &now
	db.Model(&user).UpdateColumn("last_login", now)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"role":         user.Role,
			"referralCode": user.ReferralCode,
		},
	})
}

// Me returns the authenticated user's profile with wallet and referral stats
func Me(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	var referredCount int64
	db.Model(&models.User{}).Where("referred_by = ? AND is_deleted = false", userId).Count(&referredCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched!", fiber.Map{
		"id":               user.ID,
		"name":             user.Name,
		"email":            user.Email,
		"mobile":           user.Mobile,
		"walletBalance":    user.WalletBalance,
		"referralCode":     user.ReferralCode,
		"referralEarnings": user.ReferralEarnings,
		"referredUsers":    referredCount,
		"socialPlatform":   user.SocialPlatform,
		"socialHandle":     user.SocialHandle,
		"lastLogin":        user.LastLogin,
	})
}

// ConnectSocial records the social account the user's ad slots run against
func ConnectSocial(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedConnectSocial").(*ConnectSocialRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	res := db.Model(&models.User{}).Where("id = ? AND is_deleted = false", userId).
		Updates(map[string]interface{}{
			"social_platform": reqData.Platform,
			"social_handle":   reqData.Handle,
		})
	if res.Error != nil || res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to connect account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Social account connected!", fiber.Map{
		"platform": reqData.Platform,
		"handle":   reqData.Handle,
	})
}
