package types

import "fmt"

// WeatherCode is a WMO weather interpretation code as reported by the
// Open-Meteo daily forecast (the "weathercode" variable).
type WeatherCode int

// rainCodes is the flat set of codes that count as precipitation for the
// rain rules: drizzle, freezing drizzle, rain, freezing rain, rain
// showers, and thunderstorms. Fog and snow codes are deliberately absent.
var rainCodes = map[WeatherCode]bool{
	51: true, 53: true, 55: true, // drizzle
	56: true, 57: true, // freezing drizzle
	61: true, 63: true, 65: true, // rain
	66: true, 67: true, // freezing rain
	80: true, 81: true, 82: true, // rain showers
	95: true, 96: true, 99: true, // thunderstorm
}

// IsClear reports whether the code is in the clear-to-overcast range
// (0-3), i.e. no precipitation is occurring.
func (c WeatherCode) IsClear() bool {
	return c >= 0 && c <= 3
}

// IsRain reports whether the code indicates liquid precipitation.
func (c WeatherCode) IsRain() bool {
	return rainCodes[c]
}

// codeDescriptions maps WMO codes to short human-readable conditions,
// used by the status report.
var codeDescriptions = map[WeatherCode]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Fog", 48: "Rime fog",
	51: "Light drizzle", 53: "Moderate drizzle", 55: "Dense drizzle",
	56: "Light freezing drizzle", 57: "Dense freezing drizzle",
	61: "Slight rain", 63: "Moderate rain", 65: "Heavy rain",
	66: "Light freezing rain", 67: "Heavy freezing rain",
	71: "Slight snow", 73: "Moderate snow", 75: "Heavy snow", 77: "Snow grains",
	80: "Slight rain showers", 81: "Moderate rain showers", 82: "Violent rain showers",
	85: "Slight snow showers", 86: "Heavy snow showers",
	95: "Thunderstorm", 96: "Thunderstorm w/ slight hail", 99: "Thunderstorm w/ heavy hail",
}

// Description returns a human-readable condition for the code, or
// "Unknown (N)" for codes outside the WMO table.
func (c WeatherCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown (%d)", int(c))
}
