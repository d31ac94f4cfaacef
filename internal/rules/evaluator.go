// Package rules implements the alert rule evaluator: pure functions that
// turn a validated multi-day forecast into zero or more alert candidates.
//
// The rules are strategy values collected into a fixed ordered list, so
// evaluation output is deterministic: FreezeWatch, UrgentFreeze,
// RainIncoming, HeavyRain, HighWind. Each rule emits at most one candidate
// per cycle, keyed by its kind plus the date that drives the alert.
// Nothing in this package touches a clock, the store, or the network.
package rules

import (
	"time"

	"stormwatch/internal/types"
)

// Thresholds holds the rule cutoffs and look-ahead windows. The zero
// value is not usable; construct with DefaultThresholds or from config.
type Thresholds struct {
	// FreezeTempF is the temperature strictly below which a day counts
	// as freezing, for both freeze rules.
	FreezeTempF float64
	// FreezeWindowDays is the FreezeWatch look-ahead (day 0 inclusive).
	FreezeWindowDays int
	// UrgentWindowDays is the UrgentFreeze look-ahead (day 0 inclusive).
	UrgentWindowDays int
	// RainWindowDays is the RainIncoming look-ahead; day 0 is examined
	// for clearness but excluded from the rain scan.
	RainWindowDays int
	// HeavyRainInches is the cumulative precipitation threshold.
	HeavyRainInches float64
	// HeavyRainDays is the HeavyRain summation window (day 0 inclusive).
	HeavyRainDays int
	// HighWindMph is the daily max wind speed threshold.
	HighWindMph float64
	// HighWindDays is the HighWind look-ahead (day 0 inclusive).
	HighWindDays int
}

// DefaultThresholds returns the canonical rule definitions: freezing is
// below 32F (10-day watch, 2-day urgent), rain-incoming looks 7 days out,
// heavy rain is 2 inches over 10 days, high wind is 30 mph over 10 days.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FreezeTempF:      32,
		FreezeWindowDays: 10,
		UrgentWindowDays: 2,
		RainWindowDays:   7,
		HeavyRainInches:  2.0,
		HeavyRainDays:    10,
		HighWindMph:      30,
		HighWindDays:     10,
	}
}

// Evaluator runs the fixed ordered rule list against a forecast.
type Evaluator struct {
	thresholds Thresholds
	rules      []types.Rule
}

// NewEvaluator creates an Evaluator with the canonical rule order.
func NewEvaluator(t Thresholds) *Evaluator {
	return &Evaluator{
		thresholds: t,
		rules: []types.Rule{
			freezeWatchRule{t},
			urgentFreezeRule{t},
			rainIncomingRule{t},
			heavyRainRule{t},
			highWindRule{t},
		},
	}
}

// Thresholds returns the rule cutoffs the evaluator was built with.
// The status report uses them to annotate the forecast table.
func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate applies every rule to the forecast and collects the candidates
// in rule order. Identical inputs yield identical output: the rules are
// pure and the order is fixed.
func (e *Evaluator) Evaluate(f *types.Forecast, now time.Time) []types.AlertCandidate {
	var out []types.AlertCandidate
	for _, r := range e.rules {
		if c := r.Evaluate(f, now); c != nil {
			out = append(out, *c)
		}
	}
	return out
}
