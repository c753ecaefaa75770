package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	API_VERSION string

	DB_DRIVER string
	DB_URL    string

	REDIS_ADDR string
	CACHE_TTL  time.Duration

	// empty leaves write routes open
	JWT_SECRET string

	CORS_ORIGIN string
	LOG_MODE    string
	SEED_DATA   bool
)

// LoadEnv reads .env (when present) and the process environment into the
// package variables.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	API_VERSION = getEnv("API_VERSION", "v1")

	DB_DRIVER = strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	switch DB_DRIVER {
	case "postgres":
		v, err := mustEnv("DB_URL")
		if err != nil {
			return err
		}
		DB_URL = v
	case "sqlite":
		DB_URL = getEnv("DB_URL", "catalog.db")
	case "memory":
		DB_URL = ""
	default:
		return fmt.Errorf("DB_DRIVER must be postgres, sqlite or memory, got %q", DB_DRIVER)
	}

	REDIS_ADDR = getEnv("REDIS_ADDR", "")
	ttl, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "600"))
	if err != nil || ttl < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be a non-negative integer")
	}
	CACHE_TTL = time.Duration(ttl) * time.Second

	JWT_SECRET = getEnv("JWT_SECRET", "")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")
	LOG_MODE = getEnv("LOG_MODE", "dev")

	seed, err := strconv.ParseBool(getEnv("SEED_DATA", "false"))
	if err != nil {
		return fmt.Errorf("SEED_DATA must be a boolean: %w", err)
	}
	SEED_DATA = seed
	return nil
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("missing required environment variable: %s", key)
	}
	return v, nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
