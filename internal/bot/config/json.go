package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/perawita/bot-telegram-expxxx/internal/flagx"
)

// JsonConfig is the DTO used exclusively for JSON unmarshalling. Durations
// are expressed in whole units (days, seconds) to keep hand-written config
// files simple.
type JsonConfig struct {
	TelegramToken      string `json:"telegram_bot_token"`
	APIBaseURL         string `json:"api_backend"`
	HealthAddr         string `json:"health_addr"`
	SessionDSN         string `json:"session_db"`
	SessionTTLDays     int    `json:"session_ttl_days"`
	PollTimeoutSeconds int    `json:"poll_timeout_seconds"`
}

// parseJson overlays Config with values from the JSON file given via
// -c/-config. Absent flag means no JSON layer. Only fields present in the
// file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.TelegramToken != "" {
		cfg.TelegramToken = jc.TelegramToken
	}
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.HealthAddr != "" {
		cfg.HealthAddr = jc.HealthAddr
	}
	if jc.SessionDSN != "" {
		cfg.SessionDSN = jc.SessionDSN
	}
	if jc.SessionTTLDays > 0 {
		cfg.SessionTTL = time.Duration(jc.SessionTTLDays) * 24 * time.Hour
	}
	if jc.PollTimeoutSeconds > 0 {
		cfg.PollTimeout = time.Duration(jc.PollTimeoutSeconds) * time.Second
	}
}
