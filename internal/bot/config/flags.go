package config

import (
	"flag"
	"os"
	"time"

	"github.com/perawita/bot-telegram-expxxx/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    base URL of the panel API
//	-l string    listen address of the health server
//	-d string    sqlite path for the session store
//	-ttl int     session retention in days
//	-i int       getUpdates long-poll timeout in seconds
//	-local       run the console gateway instead of Telegram
//
// Arguments are filtered through flagx.FilterArgs so the config-file flags
// handled elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-d", "-ttl", "-i", "-local"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the panel API")
	fs.StringVar(&cfg.HealthAddr, "l", cfg.HealthAddr, "health server listen address")
	fs.StringVar(&cfg.SessionDSN, "d", cfg.SessionDSN, "session database path")
	ttlDays := fs.Int("ttl", int(cfg.SessionTTL.Hours()/24), "session retention (in days)")
	pollTimeout := fs.Int("i", int(cfg.PollTimeout.Seconds()), "long-poll timeout (in seconds)")
	fs.BoolVar(&cfg.Console, "local", cfg.Console, "use the local console gateway")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTTL = time.Duration(*ttlDays) * 24 * time.Hour
	cfg.PollTimeout = time.Duration(*pollTimeout) * time.Second
}
