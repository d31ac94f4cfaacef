// Package main is the entrypoint for the stormwatch agent.
//
// The agent watches the forecast for one fixed location and sends
// deduplicated SMS alerts through an outbound webhook. Modes:
//
//	stormwatch --once     run a single check and exit (for cron)
//	stormwatch --status   show forecast and alert state, no side effects
//	stormwatch --test     send a probe SMS to verify delivery
//	stormwatch            continuous monitoring on the configured schedule
//
// This file handles dependency wiring and delegates all business logic to
// the internal/agent package.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stormwatch/internal/agent"
	"stormwatch/internal/config"
	"stormwatch/internal/dedup"
	"stormwatch/internal/forecast"
	"stormwatch/internal/notify"
	"stormwatch/internal/rules"
	"stormwatch/internal/types"
)

func main() {
	once := flag.Bool("once", false, "run a single check and exit")
	status := flag.Bool("status", false, "show current forecast and alert state without sending")
	test := flag.Bool("test", false, "send a test SMS to verify configuration")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	a := buildAgent(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *test:
		err = a.TestSend(ctx)
	case *status:
		err = runStatus(ctx, a)
	case *once:
		err = a.Run(ctx)
	default:
		err = a.Loop(ctx, cfg.Schedule.Spec)
	}

	if err != nil {
		os.Exit(types.ExitCodeOf(err))
	}
}

// buildAgent wires the coordinator from configuration.
func buildAgent(cfg *config.Config, logger types.Logger) *agent.Agent {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	source := forecast.NewOpenMeteoSource(httpClient, cfg.Forecast, cfg.Location,
		logger.With("component", "forecast"))

	transport := notify.NewWebhookTransport(httpClient, cfg.Webhook,
		logger.With("component", "notify"))

	store := dedup.Open(cfg.Store.Path, cfg.Store.Cooldown, cfg.Store.Retention,
		logger.With("component", "dedup"))

	evaluator := rules.NewEvaluator(rules.Thresholds{
		FreezeTempF:      cfg.Alerts.FreezeTempF,
		FreezeWindowDays: cfg.Alerts.FreezeWindowDays,
		UrgentWindowDays: cfg.Alerts.UrgentWindowDays,
		RainWindowDays:   cfg.Alerts.RainWindowDays,
		HeavyRainInches:  cfg.Alerts.HeavyRainInches,
		HeavyRainDays:    cfg.Alerts.HeavyRainDays,
		HighWindMph:      cfg.Alerts.HighWindMph,
		HighWindDays:     cfg.Alerts.HighWindDays,
	})

	return agent.New(agent.Config{
		Source:       source,
		Evaluator:    evaluator,
		Store:        store,
		Transport:    transport,
		Logger:       logger,
		LocationName: cfg.Location.Name,
	})
}

// runStatus renders the dry-run report to stdout.
func runStatus(ctx context.Context, a *agent.Agent) error {
	report, err := a.Status(ctx)
	if err != nil {
		return err
	}
	report.Render(os.Stdout)
	return nil
}

// newLogger builds the structured logger: human-readable text locally,
// JSON in prod where the output lands in a log collector.
func newLogger(cfg *config.Config) types.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Environment == "local" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &slogLogger{l: slog.New(handler)}
}

// slogLogger adapts *slog.Logger to the types.Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) With(args ...any) types.Logger { return &slogLogger{l: s.l.With(args...)} }
