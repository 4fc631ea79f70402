package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"cheatsheet-editor/pkg/logger"
)

type Config struct {
	// Server configuration
	ServerPort  string
	Environment string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis configuration
	RedisAddress string

	// JWT configuration
	JWTSecret string

	FrontendAddress string

	// Client engine configuration
	APIBaseURL       string
	ProfileDir       string
	DebounceInterval time.Duration
}

// Load reads configuration from environment variables, falling back to a
// .env file in the working directory or one of its parents.
func Load() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = filepath.Join("..", ".env")
		if _, err := os.Stat(envPath); os.IsNotExist(err) {
			envPath = filepath.Join("..", "..", ".env")
		}
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			logger.Sugar.Warnf("Error loading .env file: %v", err)
		}
	}

	profileDir := getEnv("PROFILE_DIR", "")
	if profileDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		profileDir = filepath.Join(home, ".cheatsheet-editor")
	}

	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		Environment:      getEnv("ENV", "development"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "cheatsheet_editor"),
		RedisAddress:     getEnv("REDIS_ADDRESS", "localhost:6379"),
		JWTSecret:        getEnv("JWT_SECRET", "cheatsheet-session-secret"),
		FrontendAddress:  getEnv("FRONTEND_ADDRESS", "https://production-frontend.com"),
		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:8080"),
		ProfileDir:       profileDir,
		DebounceInterval: getEnvDuration("SYNC_DEBOUNCE", 2*time.Second),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
