// Package config loads taskdeck process configuration from the
// environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the taskdeck CLI.
type Config struct {
	// APIURL is the task API root.
	APIURL string `env:"TASKDECK_API_URL, default=http://localhost:9000/api/v1"`

	// DBPath is the session database location. Empty means the
	// default, ~/.taskdeck/taskdeck.db.
	DBPath string `env:"TASKDECK_DB"`

	// HTTPTimeout bounds each API request.
	HTTPTimeout time.Duration `env:"TASKDECK_HTTP_TIMEOUT, default=30s"`

	LogLevel  string `env:"TASKDECK_LOG_LEVEL,  default=info"`
	LogFormat string `env:"TASKDECK_LOG_FORMAT, default=text"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
