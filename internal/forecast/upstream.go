// Package forecast implements the Open-Meteo upstream forecast source.
//
// The source requests the daily forecast variables for the configured
// coordinate with units pre-normalized server-side (Fahrenheit, inches,
// mph), parses the parallel daily arrays of the response, and validates
// the result into a types.Forecast. All transport resilience (retries,
// backoff, circuit breaking) lives in the shared external.BaseClient.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stormwatch/internal/config"
	"stormwatch/internal/external"
	"stormwatch/internal/types"
)

// dailyVariables is the comma-separated list of daily series requested
// from Open-Meteo. The response carries one parallel array per variable.
const dailyVariables = "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode,windspeed_10m_max"

// Compile-time assertion that OpenMeteoSource implements types.ForecastSource.
var _ types.ForecastSource = (*OpenMeteoSource)(nil)

// OpenMeteoSource fetches the daily forecast for one fixed location from
// the Open-Meteo API.
type OpenMeteoSource struct {
	client   *external.BaseClient
	location config.LocationConfig
	baseURL  string
	days     int
	timeout  time.Duration
	logger   types.Logger
}

// NewOpenMeteoSource creates a forecast source for the configured location.
// The breaker and retry policy are owned by the source so repeated fetch
// failures across loop-mode ticks trip the circuit rather than hammering
// the provider.
func NewOpenMeteoSource(httpClient *http.Client, cfg config.ForecastConfig, loc config.LocationConfig, logger types.Logger) *OpenMeteoSource {
	base := external.NewBaseClient(
		httpClient,
		"open-meteo",
		external.DefaultRetryPolicy(),
		"StormWatch-Agent/1.0",
		external.ErrorCodes{
			Unavailable: types.ErrCodeFetchUnavailable,
			RateLimited: types.ErrCodeFetchRateLimited,
		},
	)

	return &OpenMeteoSource{
		client:   base,
		location: loc,
		baseURL:  cfg.BaseURL,
		days:     cfg.Days,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// openMeteoDaily mirrors the "daily" object of the Open-Meteo response:
// parallel arrays indexed by day.
type openMeteoDaily struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WeatherCode      []int     `json:"weathercode"`
	WindSpeedMax     []float64 `json:"windspeed_10m_max"`
}

// openMeteoResponse is the subset of the Open-Meteo forecast response the
// agent consumes.
type openMeteoResponse struct {
	Daily openMeteoDaily `json:"daily"`
}

// Fetch retrieves and validates the multi-day daily forecast.
// Failures surface as fetch_* AppErrors (transport) or data_* AppErrors
// (malformed or invalid payload); both are fatal for the cycle.
func (s *OpenMeteoSource) Fetch(ctx context.Context) (*types.Forecast, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(), nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeFetchUnavailable,
			"failed to build forecast request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, types.NewAppError(types.ErrCodeFetchBadStatus,
			fmt.Sprintf("forecast provider returned %d: %s", resp.StatusCode, body), nil)
	}

	var parsed openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, types.NewAppError(types.ErrCodeDataMalformed,
			"failed to decode forecast response", err)
	}

	fc, err := buildForecast(parsed.Daily)
	if err != nil {
		return nil, err
	}

	s.logger.Info("forecast fetched",
		"days", fc.Horizon(),
		"location", s.location.Name,
	)
	return fc, nil
}

// requestURL builds the Open-Meteo query for the configured location.
func (s *OpenMeteoSource) requestURL() string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(s.location.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(s.location.Longitude, 'f', -1, 64))
	q.Set("daily", dailyVariables)
	q.Set("temperature_unit", "fahrenheit")
	q.Set("precipitation_unit", "inch")
	q.Set("windspeed_unit", "mph")
	q.Set("timezone", s.location.Timezone)
	q.Set("forecast_days", strconv.Itoa(s.days))
	return s.baseURL + "?" + q.Encode()
}

// buildForecast zips the parallel daily arrays into DayForecast values and
// validates them. The arrays must all be present and equally long; a
// provider response violating that is malformed, not merely short.
func buildForecast(daily openMeteoDaily) (*types.Forecast, error) {
	n := len(daily.Time)
	if n == 0 {
		return nil, types.NewAppError(types.ErrCodeDataMalformed,
			"forecast response has no daily time axis", nil)
	}
	if len(daily.TemperatureMin) != n || len(daily.TemperatureMax) != n ||
		len(daily.PrecipitationSum) != n || len(daily.WeatherCode) != n ||
		len(daily.WindSpeedMax) != n {
		return nil, types.NewAppError(types.ErrCodeDataMalformed,
			"forecast daily arrays have mismatched lengths", nil)
	}

	days := make([]types.DayForecast, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse(types.DateFormat, daily.Time[i])
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeDataMalformed,
				fmt.Sprintf("unparseable forecast date %q", daily.Time[i]), err)
		}
		days = append(days, types.DayForecast{
			Date:        date,
			MinTempF:    daily.TemperatureMin[i],
			MaxTempF:    daily.TemperatureMax[i],
			PrecipIn:    daily.PrecipitationSum[i],
			WeatherCode: types.WeatherCode(daily.WeatherCode[i]),
			WindMphMax:  daily.WindSpeedMax[i],
		})
	}

	return types.NewForecast(days)
}
