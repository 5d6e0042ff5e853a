// Package config loads gateway configuration from a JSON5 file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/titanous/json5"
)

// Config is the full gateway configuration.
type Config struct {
	Admin   AdminConfig   `json:"admin"`
	Driver  DriverConfig  `json:"driver"`
	Plugins PluginsConfig `json:"plugins"`
	Media   MediaConfig   `json:"media"`
	Log     LogConfig     `json:"log"`
	Tracing TracingConfig `json:"tracing"`
}

// AdminConfig configures the management HTTP listener.
type AdminConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	RateLimitRPM int    `json:"rate_limit_rpm"`
}

// DriverConfig selects the IM backend.
type DriverConfig struct {
	// Name is the registered driver to open sessions with.
	Name string `json:"name"`
	// DeviceSeed, when non-zero, fixes the device identity used for QR
	// logins that do not supply their own seed.
	DeviceSeed int64 `json:"device_seed"`
}

// PluginsConfig configures on-disk plugin storage.
type PluginsConfig struct {
	Dir string `json:"dir"`
}

// MediaConfig configures media handling.
type MediaConfig struct {
	VideoCacheDir string `json:"video_cache_dir"`
}

// TracingConfig configures OTLP span export. An empty endpoint disables it.
type TracingConfig struct {
	OTLPEndpoint string `json:"otlp_endpoint"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `json:"level"`  // debug | info | warn | error
	Format string `json:"format"` // text | json
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Admin: AdminConfig{
			Host:         "127.0.0.1",
			Port:         3000,
			RateLimitRPM: 120,
		},
		Driver: DriverConfig{
			Name: "ricq",
		},
		Plugins: PluginsConfig{
			Dir: "plugins",
		},
		Media: MediaConfig{
			VideoCacheDir: "video",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads config from a JSON5 file, then overlays env vars. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays env vars onto the config. Env vars take
// precedence over file values.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	envInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	envStr("PBGATE_ADMIN_HOST", &c.Admin.Host)
	envInt("PBGATE_ADMIN_PORT", &c.Admin.Port)
	envInt("PBGATE_ADMIN_RATE_LIMIT_RPM", &c.Admin.RateLimitRPM)
	envStr("PBGATE_DRIVER", &c.Driver.Name)
	envStr("PBGATE_PLUGIN_DIR", &c.Plugins.Dir)
	envStr("PBGATE_VIDEO_CACHE_DIR", &c.Media.VideoCacheDir)
	envStr("PBGATE_LOG_LEVEL", &c.Log.Level)
	envStr("PBGATE_LOG_FORMAT", &c.Log.Format)
	envStr("PBGATE_OTLP_ENDPOINT", &c.Tracing.OTLPEndpoint)

	if v := os.Getenv("PBGATE_DEVICE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Driver.DeviceSeed = n
		}
	}
}

// Addr returns the admin listen address.
func (c *AdminConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
