package slotController

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coinzy/config"
	"coinzy/database"
	"coinzy/middleware"
	"coinzy/models"
	slotValidator "coinzy/validators/slot"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSlotTest(t *testing.T) (*fiber.App, *gorm.DB) {
	config.AppConfig = &config.Config{
		JWTKey:         "test_jwt_secret",
		MinSlotAmount:  100,
		MaxSlotAmount:  50000,
		SlotReturnRate: 4.5,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.WalletTransaction{}, &models.Slot{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/slots/window", GetWindow)
	app.Post("/slots/book", slotValidator.BookSlot(), middleware.JWTMiddleware, BookSlot)
	app.Get("/slots/today", middleware.JWTMiddleware, GetTodaySlot)

	t.Cleanup(func() { timeNow = time.Now })
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, balance float64) (models.User, string) {
	user := models.User{
		Name:          "Slot User",
		Email:         "slots@coinzy.app",
		Password:      "irrelevant",
		ReferralCode:  "SLOTREF1",
		WalletBalance: balance,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, "Bearer " + token
}

func postJSON(t *testing.T, app *fiber.App, path, auth string, payload interface{}) (*http.Response, map[string]interface{}) {
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &decoded))
	}
	return resp, decoded
}

func TestBookSlotInsideWindow(t *testing.T) {
	app, db := setupSlotTest(t)
	user, auth := seedUser(t, db, 1000)

	timeNow = func() time.Time { return at(18, 30) }

	resp, body := postJSON(t, app, "/slots/book", auth, fiber.Map{"amount": 500})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(500), data["amount"])
	assert.Equal(t, 4.5, data["returnRate"])
	assert.Equal(t, 22.5, data["expectedReturn"])

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, float64(500), fresh.WalletBalance)

	var slot models.Slot
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&slot).Error)
	assert.Equal(t, models.SlotStatusBooked, slot.Status)

	var booking models.WalletTransaction
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?",
		user.ID, models.TransactionTypeSlotBooking).First(&booking).Error)
	assert.Equal(t, models.TransactionStatusCompleted, booking.Status)
	assert.Equal(t, slot.ID, booking.ReferenceID)
}

func TestBookSlotOutsideWindow(t *testing.T) {
	app, db := setupSlotTest(t)
	user, auth := seedUser(t, db, 1000)

	timeNow = func() time.Time { return at(10, 0) }

	resp, _ := postJSON(t, app, "/slots/book", auth, fiber.Map{"amount": 500})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, float64(1000), fresh.WalletBalance)
}

func TestBookSlotInsufficientBalance(t *testing.T) {
	app, db := setupSlotTest(t)
	_, auth := seedUser(t, db, 200)

	timeNow = func() time.Time { return at(19, 0) }

	resp, _ := postJSON(t, app, "/slots/book", auth, fiber.Map{"amount": 500})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBookSlotOncePerDay(t *testing.T) {
	app, db := setupSlotTest(t)
	_, auth := seedUser(t, db, 2000)

	timeNow = func() time.Time { return at(18, 15) }

	resp, _ := postJSON(t, app, "/slots/book", auth, fiber.Map{"amount": 500})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, app, "/slots/book", auth, fiber.Map{"amount": 300})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestBookSlotBelowMinimum(t *testing.T) {
	app, db := setupSlotTest(t)
	_, auth := seedUser(t, db, 2000)

	timeNow = func() time.Time { return at(18, 15) }

	resp, _ := postJSON(t, app, "/slots/book", auth, fiber.Map{"amount": 50})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetWindowFeed(t *testing.T) {
	app, _ := setupSlotTest(t)

	timeNow = func() time.Time { return at(17, 0) }

	req := httptest.NewRequest("GET", "/slots/window", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	decoded := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, false, data["open"])
	assert.Equal(t, float64(3600), data["secondsLeft"])
}
