package config

import (
	"log" // Standard log package
	"os"  // Package to interact with the OS, including environment variables

	"github.com/joho/godotenv" // Package to load .env files
)

// Config holds all configuration for the application.
// Values are read from environment variables.
type Config struct {
	DatabaseURL       string // PostgreSQL connection string
	RedisAddr         string // Redis address (host:port); empty disables caching
	RedisPassword     string
	ServerPort        string
	JWTSecret         string // Secret for signing admin session tokens
	AdminEmail        string // Email of the single admin account
	AdminPasswordHash string // bcrypt hash of the admin password
	UploadDir         string // Directory where uploaded client files are stored
}

// LoadConfig reads configuration from environment variables.
// It loads a .env file first if it exists.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file. Ignore error if it doesn't exist.
	err := godotenv.Load() // Loads .env from the current directory
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	// Read environment variables or use defaults
	cfg := &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
	}

	// Basic validation (ensure critical keys are present)
	if cfg.DatabaseURL == "" || cfg.JWTSecret == "" || cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		log.Println("Warning: One or more critical configuration keys (DATABASE_URL, JWT_SECRET, ADMIN_EMAIL, ADMIN_PASSWORD_HASH) are missing.")
		// The admin area is unusable without JWT_SECRET and the admin credentials;
		// set them via environment variables before deploying.
	}

	log.Println("Configuration loaded successfully")
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using fallback '%s'", key, fallback)
	return fallback
}
