package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the composition point needs to assemble the
// process, read once from the environment at startup.
type Config struct {
	Port      string
	GinMode   string
	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	MailgunDomain string
	MailgunAPIKey string
	MailFrom      string

	AWSBucket string
	AWSRegion string

	PromotionSweepInterval time.Duration
}

// Load reads .env if present, then the environment, applying defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}
	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		JWTSecret: getEnv("JWT_SECRET", "eats_api_dev_secret"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "eats"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		MailgunDomain: getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getEnv("MAILGUN_API_KEY", ""),
		MailFrom:      getEnv("MAIL_FROM", "Eats <mailgun@localhost>"),

		AWSBucket: getEnv("AWS_BUCKET_NAME", ""),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		PromotionSweepInterval: getDurationEnv("PROMOTION_SWEEP_INTERVAL", 24*time.Hour),
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if v, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default", key)
	}
	return defaultValue
}
