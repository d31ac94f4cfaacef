package rules

import (
	"fmt"
	"time"

	"stormwatch/internal/types"
)

// freezeWatchRule fires when any day in the watch window dips below the
// freeze threshold. The first such day drives the key; the message names
// the weekday run of consecutive freezing days starting there, so one
// alert covers the whole episode. Later separate episodes in the window
// do not emit additional candidates.
type freezeWatchRule struct {
	t Thresholds
}

func (r freezeWatchRule) Kind() types.AlertKind { return types.KindFreezeWatch }

func (r freezeWatchRule) Evaluate(f *types.Forecast, _ time.Time) *types.AlertCandidate {
	window := f.Window(r.t.FreezeWindowDays)
	for i, d := range window {
		if d.MinTempF >= r.t.FreezeTempF {
			continue
		}
		run := freezeRun(window, i, r.t.FreezeTempF)
		return &types.AlertCandidate{
			Kind: types.KindFreezeWatch,
			Key:  types.KindFreezeWatch.Key(d.Date),
			Message: fmt.Sprintf("FREEZE WATCH: below %.0fF %s (%s)",
				r.t.FreezeTempF, daysOutPhrase(i), friendlyDayList(run)),
		}
	}
	return nil
}

// urgentFreezeRule fires only when the freeze is imminent: it scans the
// short urgent window (the next two days) and reports the exact low.
// It is independent of freezeWatchRule; an imminent freeze produces both
// candidates, under different keys.
type urgentFreezeRule struct {
	t Thresholds
}

func (r urgentFreezeRule) Kind() types.AlertKind { return types.KindUrgentFreeze }

func (r urgentFreezeRule) Evaluate(f *types.Forecast, _ time.Time) *types.AlertCandidate {
	for _, d := range f.Window(r.t.UrgentWindowDays) {
		if d.MinTempF >= r.t.FreezeTempF {
			continue
		}
		return &types.AlertCandidate{
			Kind: types.KindUrgentFreeze,
			Key:  types.KindUrgentFreeze.Key(d.Date),
			Message: fmt.Sprintf("URGENT FREEZE: low of %.0fF on %s. Protect plants!",
				d.MinTempF, d.DayName()),
		}
	}
	return nil
}

// rainIncomingRule fires when today is clear but rain is coming: day 0
// must carry a clear-to-overcast code, and the first later day in the
// window with both a rain code and measurable precipitation drives the
// alert. If today is already raining there is nothing to announce.
type rainIncomingRule struct {
	t Thresholds
}

func (r rainIncomingRule) Kind() types.AlertKind { return types.KindRainIncoming }

func (r rainIncomingRule) Evaluate(f *types.Forecast, _ time.Time) *types.AlertCandidate {
	if !f.Today().WeatherCode.IsClear() {
		return nil
	}
	window := f.Window(r.t.RainWindowDays)
	for i := 1; i < len(window); i++ {
		d := window[i]
		if !d.WeatherCode.IsRain() || d.PrecipIn <= 0 {
			continue
		}
		return &types.AlertCandidate{
			Kind: types.KindRainIncoming,
			Key:  types.KindRainIncoming.Key(d.Date),
			Message: fmt.Sprintf("RAIN INCOMING: rain expected %s, %s",
				d.DayName(), daysOutPhrase(i)),
		}
	}
	return nil
}

// heavyRainRule fires when cumulative precipitation over the summation
// window reaches the threshold. The key is driven by day 0 (the alert is
// about the period, not one day); the message reports the total and the
// wettest day, first of ties.
type heavyRainRule struct {
	t Thresholds
}

func (r heavyRainRule) Kind() types.AlertKind { return types.KindHeavyRain }

func (r heavyRainRule) Evaluate(f *types.Forecast, _ time.Time) *types.AlertCandidate {
	window := f.Window(r.t.HeavyRainDays)

	var total float64
	wettest := 0
	for i, d := range window {
		total += d.PrecipIn
		if d.PrecipIn > window[wettest].PrecipIn {
			wettest = i
		}
	}
	if total < r.t.HeavyRainInches {
		return nil
	}

	return &types.AlertCandidate{
		Kind: types.KindHeavyRain,
		Key:  types.KindHeavyRain.Key(f.Today().Date),
		Message: fmt.Sprintf("HEAVY RAIN: %.1f in over the next %d days. Heaviest %s.",
			total, len(window), window[wettest].DayName()),
	}
}

// highWindRule fires when any day in the window reaches the wind speed
// threshold; the first such day drives the alert.
type highWindRule struct {
	t Thresholds
}

func (r highWindRule) Kind() types.AlertKind { return types.KindHighWind }

func (r highWindRule) Evaluate(f *types.Forecast, _ time.Time) *types.AlertCandidate {
	for i, d := range f.Window(r.t.HighWindDays) {
		if d.WindMphMax < r.t.HighWindMph {
			continue
		}
		return &types.AlertCandidate{
			Kind: types.KindHighWind,
			Key:  types.KindHighWind.Key(d.Date),
			Message: fmt.Sprintf("HIGH WINDS: up to %.0f mph %s (%s)",
				d.WindMphMax, d.DayName(), daysOutPhrase(i)),
		}
	}
	return nil
}

// freezeRun returns the contiguous run of days at or after index start
// whose lows stay strictly below threshold.
func freezeRun(window []types.DayForecast, start int, threshold float64) []types.DayForecast {
	end := start
	for end < len(window) && window[end].MinTempF < threshold {
		end++
	}
	return window[start:end]
}
