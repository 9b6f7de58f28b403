// Package config handles configuration for the bot: defaults, .env and
// environment overlay, optional JSON file, and command-line flags. Later
// sources take precedence over earlier ones.
package config

import "time"

// Config holds runtime settings for the bot process.
//
// Fields:
//   - TelegramToken: bot credential from BotFather.
//   - APIBaseURL: root of the panel HTTP API (login.php etc. live under it).
//   - HealthAddr: listen address of the liveness HTTP server.
//   - SessionDSN: sqlite path for the session store.
//   - SessionTTL: how long an idle session is retained.
//   - SweepInterval: how often expired sessions are purged.
//   - PollTimeout: long-poll timeout for getUpdates.
//   - Console: run the local stdin gateway instead of Telegram.
type Config struct {
	TelegramToken string
	APIBaseURL    string
	HealthAddr    string
	SessionDSN    string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	PollTimeout   time.Duration
	Console       bool
}

// LoadDefaults populates c with development defaults. The API default
// mirrors the panel's local install path.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost/website/expired/api"
	c.HealthAddr = ":3000"
	c.SessionDSN = "session.db"
	c.SessionTTL = 7 * 24 * time.Hour
	c.SweepInterval = time.Hour
	c.PollTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (.env included), a JSON file (if given via -c), and
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
