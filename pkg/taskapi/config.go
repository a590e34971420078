// Package taskapi provides a Go client for the taskdeck task-management
// HTTP API.
package taskapi

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultBaseURL is the local development endpoint used when no base
// URL is configured.
const DefaultBaseURL = "http://localhost:9000/api/v1"

// DefaultTimeout is the HTTP client timeout for each request.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:9000/api/v1".
	BaseURL string `env:"TASKDECK_API_URL, default=http://localhost:9000/api/v1"`

	// Timeout bounds each request. Zero disables the deadline; callers
	// relying on cancellation should use the request context instead.
	Timeout time.Duration `env:"TASKDECK_HTTP_TIMEOUT, default=30s"`
}

// DefaultConfig returns a Config with default settings.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// ConfigFromEnv reads client configuration from the environment.
func ConfigFromEnv(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("load client config: %w", err)
	}
	return cfg, nil
}

// WithBaseURL returns a copy of the config with the specified base URL.
func (c Config) WithBaseURL(url string) Config {
	c.BaseURL = url
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}
