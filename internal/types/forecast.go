package types

import (
	"fmt"
	"time"
)

// MinForecastDays is the shortest forecast horizon the rules accept.
// The rules look up to ten days out, so a valid forecast must cover at
// least that window starting at the current day.
const MinForecastDays = 10

// DateFormat is the calendar-date layout used in alert keys and in the
// provider's daily time axis.
const DateFormat = "2006-01-02"

// DayForecast contains the daily weather values for one calendar day.
// Units are already normalized by the provider request: Fahrenheit,
// inches, and miles per hour.
type DayForecast struct {
	Date        time.Time   `json:"date"`
	MinTempF    float64     `json:"min_temp_f"`
	MaxTempF    float64     `json:"max_temp_f"`
	PrecipIn    float64     `json:"precip_in"`
	WeatherCode WeatherCode `json:"weather_code"`
	WindMphMax  float64     `json:"wind_mph_max"`
}

// DateString returns the day's calendar date in YYYY-MM-DD form, the
// representation used inside alert keys.
func (d DayForecast) DateString() string {
	return d.Date.Format(DateFormat)
}

// DayName returns the weekday name for the day, e.g. "Saturday".
func (d DayForecast) DayName() string {
	return d.Date.Weekday().String()
}

// Forecast is an ordered multi-day daily forecast. Day 0 is the current
// day; days are consecutive with no gaps. Construct via NewForecast so
// the ordering and length invariants hold.
type Forecast struct {
	Days []DayForecast `json:"days"`
}

// NewForecast validates a daily sequence into a Forecast. It fails with
// a data_* AppError when the sequence is shorter than MinForecastDays,
// when dates are not strictly ascending consecutive calendar days, or
// when any precipitation value is negative.
func NewForecast(days []DayForecast) (*Forecast, error) {
	if len(days) < MinForecastDays {
		return nil, NewAppError(ErrCodeDataTooShort,
			fmt.Sprintf("forecast covers %d days, need at least %d", len(days), MinForecastDays), nil)
	}

	for i, d := range days {
		if d.PrecipIn < 0 {
			return nil, NewAppError(ErrCodeDataNegativePrecip,
				"negative precipitation on "+d.DateString(), nil)
		}
		if i == 0 {
			continue
		}
		prev := days[i-1].Date
		if !sameDay(d.Date, prev.AddDate(0, 0, 1)) {
			return nil, NewAppError(ErrCodeDataNonMonotonic,
				"dates not consecutive at "+d.DateString(), nil)
		}
	}

	return &Forecast{Days: days}, nil
}

// Horizon returns the number of days of data available.
func (f *Forecast) Horizon() int {
	return len(f.Days)
}

// Window returns the leading days of the forecast, clamped to the
// available horizon. Rules use it so a short forecast degrades
// gracefully instead of panicking.
func (f *Forecast) Window(n int) []DayForecast {
	if n > len(f.Days) {
		n = len(f.Days)
	}
	return f.Days[:n]
}

// Today returns day 0 of the forecast.
func (f *Forecast) Today() DayForecast {
	return f.Days[0]
}

// sameDay reports whether two timestamps fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
