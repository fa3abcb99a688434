// Package config defines all configuration structures for the ChemGPT
// gateway. No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BackendsConfig holds base URLs and client tunables for the three chemistry
// backend tools. The gateway appends the tool-specific path to each base URL
// (/extract, /spectroscopy, /retrosynthesis).
type BackendsConfig struct {
	ExtractURL string `mapstructure:"extract_url"`
	SpectroURL string `mapstructure:"spectro_url"`
	RetroURL   string `mapstructure:"retro_url"`

	// Timeout bounds every individual backend call. A timeout is treated as
	// a dispatch failure and feeds the fallback path.
	Timeout time.Duration `mapstructure:"timeout"`

	// RetryMax is the number of retries on network errors and 5xx responses.
	RetryMax int `mapstructure:"retry_max"`
}

// FallbackConfig holds the OpenAI-compatible completion service used when no
// tool matches a question or a matched tool call fails.
type FallbackConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
}

// CORSConfig holds the cross-origin policy for the HTTP surface.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the gateway. ["*"]
	// allows all origins, matching the original deployment.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration structure for the gateway.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Backends BackendsConfig `mapstructure:"backends"`
	Fallback FallbackConfig `mapstructure:"fallback"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      logging.Config `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// Validate performs semantic validation of a fully-populated Config. It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}

	for _, b := range []struct {
		name string
		addr string
	}{
		{"backends.extract_url", c.Backends.ExtractURL},
		{"backends.spectro_url", c.Backends.SpectroURL},
		{"backends.retro_url", c.Backends.RetroURL},
		{"fallback.base_url", c.Fallback.BaseURL},
	} {
		if b.addr == "" {
			return fmt.Errorf("config: %s is required", b.name)
		}
		u, err := url.Parse(b.addr)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config: %s %q is not a valid http(s) URL", b.name, b.addr)
		}
	}

	if c.Backends.Timeout <= 0 {
		return fmt.Errorf("config: backends.timeout must be positive, got %s", c.Backends.Timeout)
	}
	if c.Backends.RetryMax < 0 {
		return fmt.Errorf("config: backends.retry_max must be >= 0, got %d", c.Backends.RetryMax)
	}
	if c.Fallback.Model == "" {
		return fmt.Errorf("config: fallback.model is required")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
