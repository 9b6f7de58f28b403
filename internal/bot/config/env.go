package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment, first
// loading a .env file if one exists (the deployment ships its credentials
// that way). A missing .env is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("TELEGRAM_BOT_TOKEN"); ok {
		cfg.TelegramToken = v
	}
	if v, ok := os.LookupEnv("API_BACKEND"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv("PORT"); ok {
		cfg.HealthAddr = ":" + v
	}
	if v, ok := os.LookupEnv("SESSION_DB"); ok {
		cfg.SessionDSN = v
	}
}
