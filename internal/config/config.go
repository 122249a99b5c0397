// internal/config/config.go
package config

import (
	"fmt"
	"time"
)

// defaults applied when the config file omits a field.
const (
	defaultListenAddr  = ":8080"
	defaultVenueID     = "venue-tapline-dev"
	defaultMaxAttempts = 4
)

// Config is the full server configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	VenueID    string `yaml:"venue_id"`

	// AuthSecret guards mutating routes; empty disables the check.
	AuthSecret string `yaml:"auth_secret"`

	Webhook   WebhookConfig   `yaml:"webhook"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WebhookConfig controls the outbound delivery agent. An empty
// endpoint disables webhook delivery entirely.
type WebhookConfig struct {
	Endpoint    string   `yaml:"endpoint"`
	Secret      string   `yaml:"secret"`
	MaxAttempts int      `yaml:"max_attempts"`
	BaseDelay   Duration `yaml:"base_delay"`
	RateLimit   float64  `yaml:"rate_limit"`
	RateBurst   int      `yaml:"rate_burst"`
	HTTPTimeout Duration `yaml:"http_timeout"`
}

// TelemetryConfig controls the OTLP trace exporter. An empty endpoint
// leaves tracing as a no-op.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.VenueID == "" {
		c.VenueID = defaultVenueID
	}
	if c.Webhook.MaxAttempts == 0 {
		c.Webhook.MaxAttempts = defaultMaxAttempts
	}
	if c.Webhook.BaseDelay == 0 {
		c.Webhook.BaseDelay = Duration(time.Second)
	}
	if c.Webhook.HTTPTimeout == 0 {
		c.Webhook.HTTPTimeout = Duration(10 * time.Second)
	}
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.Webhook.Endpoint != "" && c.Webhook.Secret == "" {
		return fmt.Errorf("webhook.secret is required when webhook.endpoint is set")
	}
	if c.Webhook.MaxAttempts < 1 {
		return fmt.Errorf("webhook.max_attempts must be at least 1")
	}
	if c.Webhook.BaseDelay < 0 {
		return fmt.Errorf("webhook.base_delay must not be negative")
	}
	if c.Webhook.RateLimit < 0 {
		return fmt.Errorf("webhook.rate_limit must not be negative")
	}
	return nil
}
