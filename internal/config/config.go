// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// LINE messaging credentials. Both must be present for the webhook
	// route to be registered; otherwise the messaging channel is off.
	LineChannelSecret string
	LineChannelToken  string

	// SearchEnabled toggles the YouTube search resolver. Off means every
	// search-dependent branch is a silent no-op.
	SearchEnabled bool

	// DefaultVideoID seeds the default track at startup.
	DefaultVideoID string

	// DataDir holds the history database. Empty disables persistence.
	DataDir string

	// Silent disables all log output.
	Silent bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	port := 3000
	if s := os.Getenv("PORT"); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", s, err)
		}
		port = p
	}

	searchEnabled, _ := strconv.ParseBool(os.Getenv("ENABLE_YOUTUBE_SEARCH"))
	silent, _ := strconv.ParseBool(os.Getenv("SILENT"))

	cfg := &Config{
		Port:              port,
		LineChannelSecret: os.Getenv("LINE_CHANNEL_SECRET"),
		LineChannelToken:  os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
		SearchEnabled:     searchEnabled,
		DefaultVideoID:    os.Getenv("DEFAULT_VIDEO_ID"),
		DataDir:           os.Getenv("DATA_DIR"),
		Silent:            silent,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks bounds and normalizes partial settings.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	// A LINE channel needs both halves; a lone credential is a config slip.
	if (c.LineChannelSecret == "") != (c.LineChannelToken == "") {
		return fmt.Errorf("LINE_CHANNEL_SECRET and LINE_CHANNEL_ACCESS_TOKEN must be set together")
	}
	if c.DefaultVideoID != "" && len(c.DefaultVideoID) != 11 {
		return fmt.Errorf("DEFAULT_VIDEO_ID must be an 11-character video id, got %q", c.DefaultVideoID)
	}
	return nil
}

// LineEnabled reports whether the messaging channel is configured.
func (c *Config) LineEnabled() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
