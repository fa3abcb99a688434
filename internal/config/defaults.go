package config

import "time"

// Default values. The backend URLs default to the original ChemGPT
// microservice deployments so a bare environment still routes somewhere
// useful; production overrides them via CHEMGW_BACKENDS_* variables.
const (
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultExtractURL = "https://chemgpt-extract-production.up.railway.app"
	DefaultSpectroURL = "https://chemgpt-spectro-production.up.railway.app"
	DefaultRetroURL   = "https://chemgpt-se-production.up.railway.app"

	DefaultBackendTimeout = 15 * time.Second
	DefaultRetryMax       = 2

	DefaultFallbackBaseURL     = "https://api.openai.com/v1"
	DefaultFallbackModel       = "gpt-4o"
	DefaultFallbackTimeout     = 30 * time.Second
	DefaultFallbackMaxTokens   = 1024
	DefaultFallbackTemperature = 0.2

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "chemgw"
)

// ApplyDefaults fills every zero-value field in cfg with the gateway default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins. It must run after unmarshalling and before
// Validate so optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Backends.ExtractURL == "" {
		cfg.Backends.ExtractURL = DefaultExtractURL
	}
	if cfg.Backends.SpectroURL == "" {
		cfg.Backends.SpectroURL = DefaultSpectroURL
	}
	if cfg.Backends.RetroURL == "" {
		cfg.Backends.RetroURL = DefaultRetroURL
	}
	if cfg.Backends.Timeout == 0 {
		cfg.Backends.Timeout = DefaultBackendTimeout
	}
	if cfg.Backends.RetryMax == 0 {
		cfg.Backends.RetryMax = DefaultRetryMax
	}

	if cfg.Fallback.BaseURL == "" {
		cfg.Fallback.BaseURL = DefaultFallbackBaseURL
	}
	if cfg.Fallback.Model == "" {
		cfg.Fallback.Model = DefaultFallbackModel
	}
	if cfg.Fallback.Timeout == 0 {
		cfg.Fallback.Timeout = DefaultFallbackTimeout
	}
	if cfg.Fallback.MaxTokens == 0 {
		cfg.Fallback.MaxTokens = DefaultFallbackMaxTokens
	}
	if cfg.Fallback.Temperature == 0 {
		cfg.Fallback.Temperature = DefaultFallbackTemperature
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// NewDefaultConfig returns a Config populated entirely with defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Metrics.Enabled = true
	return cfg
}
