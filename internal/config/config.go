package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/kritik8/pixgonzDIP/internal/logger"
)

const (
	defaultAddr = ":8000"

	// Defaults for the per-operation parameters the endpoints expose.
	DefaultThreshold      = 128
	DefaultKMeansClusters = 4
	DefaultWatershedK     = 6
	DefaultWatershedIters = 4
)

// Config carries the environment-derived server settings.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// LogLevel is the zerolog level parsed from LOG_LEVEL.
	LogLevel zerolog.Level

	// HistoryDepth caps the per-session undo stack. Zero means unbounded
	// (no expiry, no GC).
	HistoryDepth int
}

// FromEnv reads configuration from the process environment.
func FromEnv() Config {
	cfg := Config{
		Addr:     os.Getenv("PIXGONZ_ADDR"),
		LogLevel: logger.ParseLevel(os.Getenv("LOG_LEVEL")),
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if raw := os.Getenv("PIXGONZ_HISTORY_DEPTH"); raw != "" {
		if depth, err := strconv.Atoi(raw); err == nil && depth >= 0 {
			cfg.HistoryDepth = depth
		}
	}
	return cfg
}
