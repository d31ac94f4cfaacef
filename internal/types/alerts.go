package types

import "time"

// AlertKind identifies one of the fixed alert rules.
type AlertKind string

const (
	KindFreezeWatch  AlertKind = "freeze_watch"
	KindUrgentFreeze AlertKind = "urgent_freeze"
	KindRainIncoming AlertKind = "rain_incoming"
	KindHeavyRain    AlertKind = "heavy_rain"
	KindHighWind     AlertKind = "high_wind"
)

// keyTags maps each kind to the prefix used when composing alert keys.
// The tags are part of the persisted state format and must not change.
var keyTags = map[AlertKind]string{
	KindFreezeWatch:  "freeze_10day",
	KindUrgentFreeze: "freeze_urgent",
	KindRainIncoming: "rain_change",
	KindHeavyRain:    "heavy_rain",
	KindHighWind:     "high_wind",
}

// IsValid reports whether the kind is one of the known alert rules.
func (k AlertKind) IsValid() bool {
	_, ok := keyTags[k]
	return ok
}

// Key composes the stable identity string for an occurrence of this kind
// driven by the given date, e.g. "freeze_10day_2026-02-10". Two
// candidates with equal keys are the same logical event; a forecast
// revision that shifts the driving date yields a new key and is allowed
// to fire again immediately.
func (k AlertKind) Key(date time.Time) string {
	return keyTags[k] + "_" + date.Format(DateFormat)
}

// AlertCandidate is one alert a rule wants to send this cycle. It is
// rebuilt fresh on every evaluation and never persisted; only its Key
// survives, inside the dedup store, after a successful send.
type AlertCandidate struct {
	Kind    AlertKind
	Key     string
	Message string
}

// DedupRecord tracks the most recent successful send for one alert key.
type DedupRecord struct {
	Key        string
	LastSentAt time.Time
}

// DeliveryResult captures the outcome of one webhook transmission.
type DeliveryResult struct {
	// ProviderMessageID is an upstream-assigned reference when the
	// webhook responder supplies one, or a synthetic ID otherwise.
	ProviderMessageID string
	// StatusCode is the HTTP status of the webhook response, 0 when the
	// request never completed.
	StatusCode int
}
