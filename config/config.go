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
	DBDriver  string // postgres or sqlite
	DBName    string
	JWTKey    string
	SaltRound int

	OrgCode string // prefix for generated student IDs
	BaseURL string // public base URL embedded in certificate QR codes

	EmailSender string
	Password    string // SMTP App Password
	SendGridKey string // preferred transport when set

	SmsApiKey string
	SmsApiUrl string

	PublicDir      string // static root served by the app
	CertificateDir string // where generated PDFs land, under PublicDir
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
		Port:      getEnv("PORT", "5000"),
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBName:    getEnv("DB_NAME", "academy.db"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		OrgCode: getEnv("ORG_CODE", "nxtsync"),
		BaseURL: getEnv("BASE_URL", "http://localhost:5000"),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("EMAIL_PASSWORD", ""),
		SendGridKey: getEnv("SENDGRID_API_KEY", ""),

		SmsApiKey: getEnv("SMS_API_KEY", ""),
		SmsApiUrl: getEnv("SMS_API_URL", "https://www.fast2sms.com/dev/bulkV2"),

		PublicDir:      getEnv("PUBLIC_DIR", "./public"),
		CertificateDir: getEnv("CERTIFICATE_DIR", "./public/certificates"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.EmailSender == "" && AppConfig.SendGridKey == "" {
		log.Println("Warning: No email transport configured. Emails will be logged and skipped.")
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
