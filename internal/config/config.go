package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// DefaultAccountID is the account credited when a loan liability does
	// not specify one. Last-resort fallback; may legitimately be empty.
	DefaultAccountID string

	// SenderName is the SMS sender ID attached to outbound messages.
	SenderName string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "parishbooks"),
		DBPassword: getEnv("DB_PASSWORD", "parishbooks"),
		DBName:     getEnv("DB_NAME", "parishbooks"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		DefaultAccountID: getEnv("DEFAULT_ACCOUNT_ID", ""),
		SenderName:       getEnv("SMS_SENDER_NAME", "ParishBooks"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
