package config

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.OpenWeatherBaseURL)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Zero(t, cfg.ProviderMaxRetries)
	assert.Equal(t, 60, cfg.ProviderRatePerMinute)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, 10000, cfg.SessionMax)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("OPENWEATHER_BASE_URL", "http://localhost:9999/data/2.5/weather")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("PROVIDER_MAX_RETRIES", "2")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/data/2.5/weather", cfg.OpenWeatherBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.ProviderMaxRetries)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.NewLogger().Enabled(context.Background(), slog.LevelDebug))
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing api key", env: map[string]string{"OPENWEATHER_API_KEY": ""}},
		{name: "negative retries", env: map[string]string{"PROVIDER_MAX_RETRIES": "-1"}},
		{name: "bad base url", env: map[string]string{"OPENWEATHER_BASE_URL": "not a url"}},
		{name: "bad duration", env: map[string]string{"SESSION_TTL": "soon"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "non numeric port", env: map[string]string{"PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENWEATHER_API_KEY", "secret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
