// Package agent implements the dispatch coordinator: the single linear
// sequence that turns one invocation into sent alerts.
//
// A full cycle is: purge expired dedup records, fetch the forecast,
// evaluate the rules, filter candidates through the dedup store, deliver
// the survivors, record successful sends, and persist the store exactly
// once at the end. One candidate's delivery failure never blocks the
// others; a forecast failure aborts the whole cycle.
package agent

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"stormwatch/internal/rules"
	"stormwatch/internal/types"
)

// Agent orchestrates one alert cycle. All collaborators are injected so
// tests can substitute an in-memory store, a canned forecast source, and
// a deterministic clock.
type Agent struct {
	source    types.ForecastSource
	evaluator *rules.Evaluator
	store     types.AlertStore
	transport types.Transport
	clock     types.Clock
	logger    types.Logger
	location  string
}

// Config carries the collaborators for New.
type Config struct {
	Source       types.ForecastSource
	Evaluator    *rules.Evaluator
	Store        types.AlertStore
	Transport    types.Transport
	Clock        types.Clock
	Logger       types.Logger
	LocationName string
}

// New creates an Agent. A nil Clock defaults to the real UTC clock.
func New(cfg Config) *Agent {
	clock := cfg.Clock
	if clock == nil {
		clock = types.RealClock{}
	}
	return &Agent{
		source:    cfg.Source,
		evaluator: cfg.Evaluator,
		store:     cfg.Store,
		transport: cfg.Transport,
		clock:     clock,
		logger:    cfg.Logger,
		location:  cfg.LocationName,
	}
}

// Run executes one full alert cycle. The returned error is nil when the
// cycle completed, even if some individual candidates failed to send;
// those are logged and summarized. Forecast and state-persist failures
// are fatal and surface as AppErrors.
func (a *Agent) Run(ctx context.Context) error {
	now := a.clock.Now()
	a.logger.Info("starting weather check", "location", a.location)

	a.store.PurgeExpired(now)

	fc, err := a.source.Fetch(ctx)
	if err != nil {
		a.logger.Error("forecast fetch failed", "error", err.Error())
		return err
	}

	candidates := a.evaluator.Evaluate(fc, now)
	if len(candidates) == 0 {
		a.logger.Info("no alert conditions detected")
		return a.persist()
	}

	attempted, sent := 0, 0
	for _, c := range candidates {
		if !a.store.MaySend(c.Key, now) {
			a.logger.Info("alert suppressed by cooldown",
				"key", c.Key,
				"kind", string(c.Kind),
			)
			continue
		}

		attempted++
		a.logger.Info("alert triggered",
			"key", c.Key,
			"kind", string(c.Kind),
			"message", c.Message,
		)

		if _, err := a.transport.Deliver(ctx, c.Message); err != nil {
			// Per-candidate failure: log and move on. The key is not
			// recorded, so the next cycle will try again.
			a.logger.Error("alert delivery failed",
				"key", c.Key,
				"error", err.Error(),
			)
			continue
		}

		a.store.RecordSent(c.Key, a.clock.Now())
		sent++
	}

	a.logger.Info(fmt.Sprintf("check complete: %d of %d alerts sent", sent, attempted),
		"sent", sent,
		"attempted", attempted,
		"suppressed", len(candidates)-attempted,
	)

	return a.persist()
}

// persist saves the dedup store once at the end of a cycle. A write
// failure is fatal: losing dedup state risks duplicate future sends.
func (a *Agent) persist() error {
	if err := a.store.Save(); err != nil {
		a.logger.Error("failed to persist dedup state", "error", err.Error())
		return err
	}
	return nil
}

// TestSend bypasses evaluation and delivers one synthetic probe message
// to verify end-to-end webhook delivery.
func (a *Agent) TestSend(ctx context.Context) error {
	msg := fmt.Sprintf("StormWatch test. SMS delivery is working! (%s)", a.location)
	a.logger.Info("sending test message")

	if _, err := a.transport.Deliver(ctx, msg); err != nil {
		a.logger.Error("test message failed", "error", err.Error())
		return err
	}

	a.logger.Info("test message sent")
	return nil
}

// Loop runs full cycles on the given cron schedule until the context is
// cancelled. Cycle errors are logged and never terminate the loop; the
// next tick gets a fresh attempt.
func (a *Agent) Loop(ctx context.Context, spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := a.Run(ctx); err != nil {
			a.logger.Error("scheduled check failed", "error", err.Error())
		}
	})
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected,
			fmt.Sprintf("invalid check schedule %q", spec), err)
	}

	a.logger.Info("starting continuous monitoring", "schedule", spec)

	// Run one cycle immediately; the schedule covers subsequent checks.
	if err := a.Run(ctx); err != nil {
		a.logger.Error("initial check failed", "error", err.Error())
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	a.logger.Info("monitoring stopped")
	return nil
}
