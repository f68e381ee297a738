package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type AppConfig struct {
	OpenWeatherAPIKey  string `mapstructure:"openweather_api_key" validate:"required"`
	OpenWeatherBaseURL string `mapstructure:"openweather_base_url" validate:"required,url"`

	// HTTPTimeout bounds each outbound provider call; 0 means no deadline.
	HTTPTimeout time.Duration `mapstructure:"http_timeout" validate:"gte=0"`

	ProviderMaxRetries    int `mapstructure:"provider_max_retries" validate:"gte=0,lte=10"`
	ProviderRatePerMinute int `mapstructure:"provider_rate_per_minute" validate:"gte=0"`

	// In-memory session retention.
	SessionTTL           time.Duration `mapstructure:"session_ttl" validate:"gte=0"`
	SessionSweepInterval time.Duration `mapstructure:"session_sweep_interval" validate:"gt=0"`
	SessionMax           int           `mapstructure:"session_max" validate:"gte=0"` // 0 = unlimited

	Port string `mapstructure:"port" validate:"required,numeric"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=text json"`
}

var defaults = map[string]any{
	"openweather_api_key":      "",
	"openweather_base_url":     "https://api.openweathermap.org/data/2.5/weather",
	"http_timeout":             "0s",
	"provider_max_retries":     0,
	"provider_rate_per_minute": 60,
	"session_ttl":              "30m",
	"session_sweep_interval":   "1m",
	"session_max":              10000,
	"port":                     "8080",
	"log_level":                "info",
	"log_format":               "text",
}

// Load reads configuration from environment with sensible defaults. Keys are
// the upper-cased field names, e.g. OPENWEATHER_API_KEY.
func Load() (*AppConfig, error) {
	v := viper.New()
	for key, def := range defaults {
		v.SetDefault(key, def)
	}
	v.AutomaticEnv()

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address in the form ":port".
func (c *AppConfig) Addr() string {
	return ":" + c.Port
}

// NewLogger creates a slog.Logger from the log settings.
func (c *AppConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
