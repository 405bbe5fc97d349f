package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string

	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string
	AdminEmail     string

	MidtransServerKey  string
	MidtransProduction bool

	AppBaseURL string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, falling back to system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	EmailFrom = GetEnv("EMAIL_FROM", "no-reply@qodwa.app")
	EmailFromName = GetEnv("EMAIL_FROM_NAME", "Qodwa")
	AdminEmail = GetEnv("ADMIN_EMAIL")

	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransProduction = GetEnv("MIDTRANS_ENV", "sandbox") == "production"

	AppBaseURL = GetEnv("APP_BASE_URL", "http://localhost:3000")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET is not set!")
	}
	if SendgridAPIKey == "" {
		log.Println("⚠️ SENDGRID_API_KEY is not set, emails go to console")
	}
	if MidtransServerKey == "" {
		log.Println("⚠️ MIDTRANS_SERVER_KEY is not set, checkout/renewal will fail")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
