package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the two values that have no defaults.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/sms/abc123")
	t.Setenv("ALERT_PHONE_NUMBER", "+15035551234")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.Equal(t, 45.62, cfg.Location.Latitude)
	assert.Equal(t, -122.82, cfg.Location.Longitude)
	assert.Equal(t, "America/Los_Angeles", cfg.Location.Timezone)

	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.Forecast.BaseURL)
	assert.Equal(t, 16, cfg.Forecast.Days)
	assert.Equal(t, 30*time.Second, cfg.Forecast.Timeout)

	assert.Equal(t, 160, cfg.Webhook.MaxSMSLength)
	assert.Equal(t, "StormWatch-Agent/1.0", cfg.Webhook.UserAgent)

	assert.Equal(t, 32.0, cfg.Alerts.FreezeTempF)
	assert.Equal(t, 10, cfg.Alerts.FreezeWindowDays)
	assert.Equal(t, 2, cfg.Alerts.UrgentWindowDays)
	assert.Equal(t, 7, cfg.Alerts.RainWindowDays)
	assert.Equal(t, 2.0, cfg.Alerts.HeavyRainInches)

	assert.Equal(t, "stormwatch_state.json", cfg.Store.Path)
	assert.Equal(t, 24*time.Hour, cfg.Store.Cooldown)
	assert.Equal(t, 168*time.Hour, cfg.Store.Retention)

	assert.Equal(t, "@every 6h", cfg.Schedule.Spec)
}

func TestLoadConfig_MissingWebhookURLFails(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("ALERT_PHONE_NUMBER", "+15035551234")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrValidation, cfgErr.Type)
}

func TestLoadConfig_MissingPhoneNumberFails(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/sms/abc123")
	t.Setenv("ALERT_PHONE_NUMBER", "")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrValidation, cfgErr.Type)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LATITUDE", "40.71")
	t.Setenv("FORECAST_DAYS", "12")
	t.Setenv("DEDUP_COOLDOWN", "12h")
	t.Setenv("CHECK_SCHEDULE", "@daily")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, 40.71, cfg.Location.Latitude)
	assert.Equal(t, 12, cfg.Forecast.Days)
	assert.Equal(t, 12*time.Hour, cfg.Store.Cooldown)
	assert.Equal(t, "@daily", cfg.Schedule.Spec)
}

func TestLoadConfig_InvalidEnvironmentRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "staging")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrValidation, cfgErr.Type)
}

func TestLoadConfig_ForecastDaysBelowMinimumRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FORECAST_DAYS", "5")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_UnparseableDurationRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DEDUP_COOLDOWN", "one day")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrParsing, cfgErr.Type)
}

func TestLoadConfig_SecretsAreRedacted(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "***REDACTED***", cfg.Webhook.URL.String())
	assert.Equal(t, "***REDACTED***", cfg.Webhook.PhoneNumber.String())
	assert.Equal(t, "https://hooks.example.com/sms/abc123", cfg.Webhook.URL.Unmask())
	assert.Equal(t, "+15035551234", cfg.Webhook.PhoneNumber.Unmask())
}
