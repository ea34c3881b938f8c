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
	DBName    string
	JWTKey    string
	SaltRound int

	SendGridKey string
	EmailSender string
	EmailName   string

	StorageDir    string // local directory for rendered certificate PDFs
	PublicBaseURL string // base URL the stored artifacts are served from
	VerifyBaseURL string // base URL printed on certificates for verification

	IssuerName  string
	IssuerTitle string

	WebinarSweepMinutes int
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
		DBName:    getEnv("DB_NAME", "lms.db"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "noreply@classiacapital.com"),
		EmailName:   getEnv("EMAIL_SENDER_NAME", "Classia Capital Academy"),

		StorageDir:    getEnv("CERTIFICATE_STORAGE_DIR", "public/certificates"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		VerifyBaseURL: getEnv("CERTIFICATE_VERIFY_URL", "http://localhost:3000/certificate/verify"),

		IssuerName:  getEnv("CERTIFICATE_ISSUER_NAME", "Classia Capital Academy"),
		IssuerTitle: getEnv("CERTIFICATE_ISSUER_TITLE", "Director of Learning"),

		WebinarSweepMinutes: getEnvInt("WEBINAR_SWEEP_MINUTES", 5),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY is empty. Emails will not be sent.")
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
