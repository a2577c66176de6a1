package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayApiURL    string

	MinDepositAmount    float64
	MaxDepositAmount    float64
	MinWithdrawalAmount float64
	MinSlotAmount       float64
	MaxSlotAmount       float64
	SlotReturnRate      float64 // percent, credited on settlement
	ReferralBonusRate   float64 // percent of deposit credited to referrer
	ReferralSignupBonus float64 // flat credit when a referred user signs up

	SendGridKey string
	EmailSender string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayApiURL:    getEnv("RAZORPAY_API_URL", "https://api.razorpay.com"),

		MinDepositAmount:    getEnvFloat("MIN_DEPOSIT_AMOUNT", 100),
		MaxDepositAmount:    getEnvFloat("MAX_DEPOSIT_AMOUNT", 100000),
		MinWithdrawalAmount: getEnvFloat("MIN_WITHDRAWAL_AMOUNT", 500),
		MinSlotAmount:       getEnvFloat("MIN_SLOT_AMOUNT", 100),
		MaxSlotAmount:       getEnvFloat("MAX_SLOT_AMOUNT", 50000),
		SlotReturnRate:      getEnvFloat("SLOT_RETURN_RATE", 4.5),
		ReferralBonusRate:   getEnvFloat("REFERRAL_BONUS_RATE", 2),
		ReferralSignupBonus: getEnvFloat("REFERRAL_SIGNUP_BONUS", 50),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "no-reply@coinzy.app"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.RazorpayKeyID == "" || AppConfig.RazorpayKeySecret == "" {
		log.Println("Warning: Razorpay credentials not configured. Deposits will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvFloat retrieves an environment variable as a float or returns the default float value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
