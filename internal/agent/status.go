package agent

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"stormwatch/internal/types"
)

// CandidateStatus pairs a would-fire candidate with its dedup verdict.
type CandidateStatus struct {
	Candidate  types.AlertCandidate
	Suppressed bool
}

// StatusReport is the result of a dry run: everything a full cycle would
// have decided, with no sends and no persistence.
type StatusReport struct {
	Location      string
	Now           time.Time
	Forecast      *types.Forecast
	FreezeTempF   float64
	TotalPrecipIn float64
	Candidates    []CandidateStatus
	Recent        []types.DedupRecord
}

// Status performs the read-only half of a cycle: purge, fetch, evaluate,
// and dedup lookup. The store is never saved, so even the purge leaves
// no trace on disk. A fetch or data failure aborts with the same errors
// a full cycle would surface.
func (a *Agent) Status(ctx context.Context) (*StatusReport, error) {
	now := a.clock.Now()

	a.store.PurgeExpired(now)

	fc, err := a.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	window := fc.Window(a.evaluator.Thresholds().HeavyRainDays)
	var total float64
	for _, d := range window {
		total += d.PrecipIn
	}

	var statuses []CandidateStatus
	for _, c := range a.evaluator.Evaluate(fc, now) {
		statuses = append(statuses, CandidateStatus{
			Candidate:  c,
			Suppressed: !a.store.MaySend(c.Key, now),
		})
	}

	return &StatusReport{
		Location:      a.location,
		Now:           now,
		Forecast:      fc,
		FreezeTempF:   a.evaluator.Thresholds().FreezeTempF,
		TotalPrecipIn: total,
		Candidates:    statuses,
		Recent:        a.store.Records(),
	}, nil
}

// Render writes the report for operators: the forecast table, the alert
// analysis, and the recently sent keys.
func (r *StatusReport) Render(w io.Writer) {
	fmt.Fprintf(w, "StormWatch status for %s at %s\n\n",
		r.Location, r.Now.Format("2006-01-02 15:04:05 MST"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tLO\tHI\tRAIN\tWIND\tCONDITIONS")
	for _, d := range r.Forecast.Window(types.MinForecastDays) {
		freezeFlag := ""
		if d.MinTempF < r.FreezeTempF {
			freezeFlag = " ***"
		}
		fmt.Fprintf(tw, "%s\t%.0fF\t%.0fF\t%.2f\"\t%.0f mph\t%s%s\n",
			d.DateString(), d.MinTempF, d.MaxTempF, d.PrecipIn, d.WindMphMax,
			d.WeatherCode.Description(), freezeFlag)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTotal precipitation (10 days): %.2f inches\n", r.TotalPrecipIn)

	fmt.Fprintf(w, "\nAlert analysis:\n")
	if len(r.Candidates) == 0 {
		fmt.Fprintln(w, "  no alert conditions detected")
	}
	for _, cs := range r.Candidates {
		verdict := "WOULD SEND"
		if cs.Suppressed {
			verdict = "SUPPRESSED (already sent)"
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", verdict, cs.Candidate.Key, cs.Candidate.Message)
	}

	if len(r.Recent) > 0 {
		fmt.Fprintf(w, "\nRecently sent:\n")
		for _, rec := range r.Recent {
			fmt.Fprintf(w, "  %s  %s\n", rec.LastSentAt.Format(time.RFC3339), rec.Key)
		}
	}
}
