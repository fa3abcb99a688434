package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all gateway settings.
const envPrefix = "CHEMGW"

// newViper builds a pre-configured Viper instance with the gateway's
// standard settings: YAML file type, CHEMGW_ env prefix, automatic env
// binding, and a key replacer mapping "." → "_" so nested keys like
// "backends.spectro_url" resolve to "CHEMGW_BACKENDS_SPECTRO_URL".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Booleans cannot distinguish unset from false after Unmarshal, so the
	// on-by-default ones get viper defaults instead of ApplyDefaults.
	v.SetDefault("metrics.enabled", true)
	bindKeys(v)
	return v
}

// bindKeys registers every config key with viper so environment-only values
// survive Unmarshal even when no config file is present.
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.host", "server.port", "server.read_timeout",
		"server.write_timeout", "server.idle_timeout", "server.shutdown_timeout",
		"backends.extract_url", "backends.spectro_url", "backends.retro_url",
		"backends.timeout", "backends.retry_max",
		"fallback.base_url", "fallback.api_key", "fallback.model",
		"fallback.timeout", "fallback.max_tokens", "fallback.temperature",
		"cors.allowed_origins",
		"log.level", "log.format", "log.output_paths",
		"metrics.enabled", "metrics.namespace",
	} {
		_ = v.BindEnv(key)
	}
}

// Load reads the YAML file at configPath, merges any CHEMGW_* environment
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from CHEMGW_* environment variables
// with no config file required. This is the preferred loading strategy for
// containerised deployments; the original gateway was configured the same
// way (RETRO_URL, EXTRACT_URL, SPECTRO_URL in the environment).
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}
