package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration required by the service.
type Config struct {
	DBURL     string
	JWTSecret []byte
	Port      string
}

// Load reads required values from environment variables. A .env file is
// honored when present so `go run ./cmd/api` works out-of-the-box locally.
func Load() (Config, error) {
	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return Config{}, errors.New("DB_URL required")
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		// Local dev fallback so the service runs out-of-the-box.
		secret = "event-planner-dev-secret"
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	return Config{
		DBURL:     dbURL,
		JWTSecret: []byte(secret),
		Port:      port,
	}, nil
}
