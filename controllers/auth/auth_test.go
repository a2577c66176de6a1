package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"coinzy/config"
	"coinzy/database"
	"coinzy/models"
	authRoutes "coinzy/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	config.AppConfig = &config.Config{
		JWTKey:              "test_jwt_secret",
		SaltRound:           bcrypt.MinCost,
		ReferralSignupBonus: 50,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.WalletTransaction{}, &models.Slot{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, auth string, payload interface{}) (*http.Response, map[string]interface{}) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestSignupAndLogin(t *testing.T) {
	app, db := setupAuthTest(t)

	resp, body := call(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":     "Asha",
		"email":    "asha@coinzy.app",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["referralCode"])

	// Stored credential is a bcrypt hash, never the raw password
	var user models.User
	require.NoError(t, db.Where("email = ?", "asha@coinzy.app").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))

	resp, body = call(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "asha@coinzy.app",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	token := body["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)

	resp, body = call(t, app, "GET", "/auth/me", "Bearer "+token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "asha@coinzy.app", body["data"].(map[string]interface{})["email"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	app, _ := setupAuthTest(t)

	payload := fiber.Map{"name": "Asha", "email": "dup@coinzy.app", "password": "secret123"}

	resp, _ := call(t, app, "POST", "/auth/signup", "", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = call(t, app, "POST", "/auth/signup", "", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app, _ := setupAuthTest(t)

	resp, _ := call(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":     "A",
		"email":    "not-an-email",
		"password": "123",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSignupWithReferralCode(t *testing.T) {
	app, db := setupAuthTest(t)

	resp, body := call(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":     "Referrer",
		"email":    "ref@coinzy.app",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	code := body["data"].(map[string]interface{})["referralCode"].(string)

	resp, _ = call(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name":         "Friend",
		"email":        "friend@coinzy.app",
		"password":     "secret123",
		"referralCode": code,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var referrer, friend models.User
	require.NoError(t, db.Where("email = ?", "ref@coinzy.app").First(&referrer).Error)
	require.NoError(t, db.Where("email = ?", "friend@coinzy.app").First(&friend).Error)

	require.NotNil(t, friend.ReferredBy)
	assert.Equal(t, referrer.ID, *friend.ReferredBy)

	// Flat signup bonus credited immediately
	assert.Equal(t, float64(50), referrer.WalletBalance)
	assert.Equal(t, float64(50), referrer.ReferralEarnings)

	var bonus models.WalletTransaction
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?",
		referrer.ID, models.TransactionTypeReferralBonus).First(&bonus).Error)
	assert.Equal(t, float64(50), bonus.Amount)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := setupAuthTest(t)

	resp, _ := call(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name": "Asha", "email": "wrongpw@coinzy.app", "password": "secret123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = call(t, app, "POST", "/auth/login", "", fiber.Map{
		"email": "wrongpw@coinzy.app", "password": "not-the-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
