package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost/website/expired/api", cfg.APIBaseURL)
	assert.Equal(t, ":3000", cfg.HealthAddr)
	assert.Equal(t, "session.db", cfg.SessionDSN)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.PollTimeout)
	assert.False(t, cfg.Console)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("API_BACKEND", "https://panel.example/api")
	t.Setenv("PORT", "8080")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, "https://panel.example/api", cfg.APIBaseURL)
	assert.Equal(t, ":8080", cfg.HealthAddr)
}
