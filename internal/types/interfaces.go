package types

import (
	"context"
	"time"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }

// Logger defines the structured logging interface used throughout the agent.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}

// ForecastSource defines how we retrieve forecast data for the
// configured location.
type ForecastSource interface {
	Fetch(ctx context.Context) (*Forecast, error)
}

// Rule is one alert condition evaluated against a forecast. A rule emits
// at most one candidate per cycle; nil means the condition did not match.
// Rules must be pure: identical forecast and now yield identical output.
type Rule interface {
	Kind() AlertKind
	Evaluate(f *Forecast, now time.Time) *AlertCandidate
}

// Transport delivers one rendered alert message to its destination.
// A non-nil error means the candidate was not delivered; the caller
// decides whether to continue with remaining candidates.
type Transport interface {
	Deliver(ctx context.Context, message string) (*DeliveryResult, error)
}

// AlertStore is the persisted deduplication state. Implementations own
// the record set exclusively; callers interrogate and mutate it only
// through this interface, and persist it exactly once per cycle via Save.
type AlertStore interface {
	// MaySend reports whether no record exists for key, or the last
	// send is at least the cooldown ago.
	MaySend(key string, now time.Time) bool

	// RecordSent upserts the record for key with last_sent_at = now.
	// Called only after a successful delivery.
	RecordSent(key string, now time.Time)

	// PurgeExpired drops records older than the retention window.
	PurgeExpired(now time.Time)

	// Records returns a snapshot of the current records, most recent
	// first. Used by the status report.
	Records() []DedupRecord

	// Save persists the current mapping atomically. A failure here is
	// fatal for the run: losing dedup state risks duplicate sends.
	Save() error
}
