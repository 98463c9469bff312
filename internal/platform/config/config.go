package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration. Domain configuration (league
// thresholds, top-list limit) lives in the settings store instead, because
// admins change it at runtime.
type Server struct {
	Addr            string
	LogLevel        slog.Level
	SeasonCheckTick time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A local .env file is honored when present.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("GOODTIME_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	level := slog.LevelInfo
	if os.Getenv("GOODTIME_DEBUG") == "true" {
		level = slog.LevelDebug
	}

	// How often the season worker checks whether the month rolled over.
	tick := time.Hour
	if raw := os.Getenv("GOODTIME_SEASON_TICK"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			tick = d
		}
	}

	return Server{Addr: addr, LogLevel: level, SeasonCheckTick: tick}
}
