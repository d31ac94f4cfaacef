// Package config defines the configuration structure for the stormwatch
// agent. Configuration is loaded once at process startup and is immutable
// thereafter. It follows 12-Factor App principles by strictly separating
// code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> Struct Defaults (Lowest)
//
// Any missing required value or invalid format fails the process
// immediately on startup (fail fast).
package config

import (
	"time"

	"stormwatch/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret
// type used in configuration to prevent accidental logging of the webhook
// URL and destination phone number.
type SecretString = types.SecretString

// Config is the top-level configuration struct for the agent. It is
// populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Domain Configurations
	Location LocationConfig
	Forecast ForecastConfig
	Webhook  WebhookConfig
	Alerts   AlertsConfig
	Store    StoreConfig
	Schedule ScheduleConfig
}

// LocationConfig identifies the fixed geographic point the agent watches.
type LocationConfig struct {
	Name      string  `envconfig:"LOCATION_NAME" default:"Portland, OR (97231)"`
	Latitude  float64 `envconfig:"LATITUDE" default:"45.62" validate:"gte=-90,lte=90"`
	Longitude float64 `envconfig:"LONGITUDE" default:"-122.82" validate:"gte=-180,lte=180"`
	Timezone  string  `envconfig:"FORECAST_TIMEZONE" default:"America/Los_Angeles" validate:"required"`
}

// ForecastConfig holds the forecast provider endpoint and request tuning.
type ForecastConfig struct {
	BaseURL string        `envconfig:"FORECAST_API_URL" default:"https://api.open-meteo.com/v1/forecast" validate:"required,url"`
	Days    int           `envconfig:"FORECAST_DAYS" default:"16" validate:"gte=10,lte=16"`
	Timeout time.Duration `envconfig:"FORECAST_TIMEOUT" default:"30s"`
}

// WebhookConfig holds settings for outbound SMS webhook delivery.
// URL and PhoneNumber have no defaults; both must come from the
// environment or a local .env file.
type WebhookConfig struct {
	URL          SecretString  `envconfig:"WEBHOOK_URL" validate:"required"`
	PhoneNumber  SecretString  `envconfig:"ALERT_PHONE_NUMBER" validate:"required"`
	Timeout      time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"15s"`
	UserAgent    string        `envconfig:"WEBHOOK_USER_AGENT" default:"StormWatch-Agent/1.0"`
	MaxSMSLength int           `envconfig:"MAX_SMS_LENGTH" default:"160" validate:"gte=40"`
}

// AlertsConfig holds the rule thresholds and look-ahead windows. The
// defaults are the rule definitions; overriding them is an operator
// escape hatch, not a supported tuning surface.
type AlertsConfig struct {
	FreezeTempF      float64 `envconfig:"FREEZE_TEMP_F" default:"32"`
	FreezeWindowDays int     `envconfig:"FREEZE_WINDOW_DAYS" default:"10" validate:"gte=1"`
	UrgentWindowDays int     `envconfig:"URGENT_FREEZE_WINDOW_DAYS" default:"2" validate:"gte=1"`
	RainWindowDays   int     `envconfig:"RAIN_WINDOW_DAYS" default:"7" validate:"gte=2"`
	HeavyRainInches  float64 `envconfig:"HEAVY_RAIN_INCHES" default:"2.0" validate:"gt=0"`
	HeavyRainDays    int     `envconfig:"HEAVY_RAIN_WINDOW_DAYS" default:"10" validate:"gte=1"`
	HighWindMph      float64 `envconfig:"HIGH_WIND_MPH" default:"30" validate:"gt=0"`
	HighWindDays     int     `envconfig:"HIGH_WIND_WINDOW_DAYS" default:"10" validate:"gte=1"`
}

// StoreConfig holds the dedup state file location and the time windows
// governing suppression and garbage collection.
type StoreConfig struct {
	Path      string        `envconfig:"STATE_FILE" default:"stormwatch_state.json" validate:"required"`
	Cooldown  time.Duration `envconfig:"DEDUP_COOLDOWN" default:"24h" validate:"gt=0"`
	Retention time.Duration `envconfig:"DEDUP_RETENTION" default:"168h" validate:"gt=0"`
}

// ScheduleConfig holds the loop-mode check cadence. The value is a
// robfig/cron spec; the default checks every six hours.
type ScheduleConfig struct {
	Spec string `envconfig:"CHECK_SCHEDULE" default:"@every 6h" validate:"required"`
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrMissingEnv indicates a required environment variable was not found.
	ErrMissingEnv ConfigErrorType = "MISSING_ENV"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable
	// values into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
